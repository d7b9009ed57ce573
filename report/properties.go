package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/ethan8996/i18nx/classify"
	"github.com/ethan8996/i18nx/inspection"
)

// WriteProperties writes a Java .properties skeleton seeded from the
// Chinese records, a starting point for replacing the literals with
// message-bundle lookups. Keys are derived from module, file stem, and
// line; values are the machine translation when one succeeded, the
// original string otherwise.
//
// Records keep input order and are grouped under a comment naming their
// source file.
func WriteProperties(records []*inspection.Record, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# Generated message skeleton. Review keys and values before use.\n")

	seen := make(map[string]int)
	lastFile := ""
	wrote := false

	for _, rec := range records {
		if rec.Category != classify.Chinese {
			continue
		}
		if rec.FilePath != lastFile {
			buf.WriteByte('\n')
			buf.WriteString("# " + rec.FilePath + "\n")
			lastFile = rec.FilePath
		}

		key := propertyKey(rec)
		if n := seen[key]; n > 0 {
			key = fmt.Sprintf("%s.%d", key, n+1)
		}
		seen[propertyKey(rec)]++

		value := rec.Original
		if rec.Status == inspection.StatusSuccess && rec.Translated != "" {
			value = rec.Translated
		}

		buf.WriteString(key)
		buf.WriteByte('=')
		buf.WriteString(escapeProperty(value))
		buf.WriteByte('\n')
		wrote = true
	}

	if !wrote {
		buf.WriteString("\n# No Chinese strings were found.\n")
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// propertyKey builds "module.filestem.lineN" from a record, lowercased
// with non-identifier runes folded to dots.
func propertyKey(rec *inspection.Record) string {
	stem := strings.TrimSuffix(filepath.Base(rec.FilePath), filepath.Ext(rec.FilePath))

	parts := []string{}
	if rec.Module != "" {
		parts = append(parts, sanitizeKeyPart(rec.Module))
	}
	if stem != "" {
		parts = append(parts, sanitizeKeyPart(stem))
	}
	parts = append(parts, fmt.Sprintf("line%d", rec.Line))
	return strings.Join(parts, ".")
}

// sanitizeKeyPart lowercases s and replaces runs of non-alphanumeric
// runes with a single dot.
func sanitizeKeyPart(s string) string {
	var sb strings.Builder
	pendingDot := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDot && sb.Len() > 0 {
				sb.WriteByte('.')
			}
			pendingDot = false
			sb.WriteRune(r)
			continue
		}
		pendingDot = true
	}
	return sb.String()
}

// escapeProperty escapes characters that would break a single-line
// key=value entry. Multi-line values are flattened.
func escapeProperty(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "")
	return s
}
