// Package classify labels extracted string literals as Chinese, Format,
// or English. Classification is a pure function over the literal text:
// format-template markers win over CJK content, CJK content wins over
// the English default.
//
// Format takes priority because a Chinese string embedding a placeholder
// (e.g. "错误日志: %s") is a template that needs careful manual
// translation, not blind machine translation.
package classify

import (
	"regexp"
	"strings"
)

// Category is the classifier verdict for one string literal.
type Category string

const (
	// Chinese marks strings containing at least one CJK ideograph.
	Chinese Category = "Chinese"
	// Format marks strings containing a recognized template marker
	// (%s-style, {0}-style, or ${name}-style).
	Format Category = "Format"
	// English is the default when neither of the above matches.
	English Category = "English"
)

// formatPatterns are the recognized template markers, matching what
// IDE-generated code typically uses: printf verbs (with optional width),
// brace placeholders, and shell/JS interpolation.
var formatPatterns = []*regexp.Regexp{
	regexp.MustCompile(`%[0-9]*[sdifgxv]`),
	regexp.MustCompile(`\$\{[^}]*\}`),
	regexp.MustCompile(`\{[^}]*\}`),
}

// Classify categorizes a string literal. Surrounding whitespace and
// quote characters are ignored. The empty string classifies as English.
func Classify(text string) Category {
	text = Clean(text)

	if IsFormat(text) {
		return Format
	}
	if ContainsChinese(text) {
		return Chinese
	}
	return English
}

// Clean strips surrounding whitespace and quote characters from a literal.
// Cleaning an already-clean string is a no-op.
func Clean(text string) string {
	return strings.Trim(strings.TrimSpace(text), `"'`)
}

// IsFormat reports whether text contains a template marker.
func IsFormat(text string) bool {
	for _, re := range formatPatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// ContainsChinese reports whether text contains at least one code point
// in the CJK Unified Ideographs range (U+4E00..U+9FFF).
func ContainsChinese(text string) bool {
	for _, r := range text {
		if r >= 0x4E00 && r <= 0x9FFF {
			return true
		}
	}
	return false
}
