// Package inspection parses JetBrains IDEA inspection reports.
//
// An inspection report is an XML document whose root element contains
// repeated <problem> elements, each describing one hardcoded-string
// violation: the offending file, line, module, package, a human-readable
// description, the highlighted literal itself, and the source language.
//
// A document that is not well-formed XML fails as a whole (the caller
// decides whether that skips the file or aborts the run); a well-formed
// document with individual malformed <problem> elements yields what it
// can, skipping the broken elements.
package inspection

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/ethan8996/i18nx/classify"
)

// Status tracks the translation lifecycle of a record. It starts at
// StatusNotAttempted and only ever moves forward.
type Status string

const (
	StatusNotAttempted Status = "NotAttempted"
	StatusSuccess      Status = "Success"
	StatusFailed       Status = "Failed"
)

// Record is one hardcoded-string occurrence extracted from a report.
type Record struct {
	// FilePath is the source file, relative to the project root.
	FilePath string `json:"file_path"`
	// Line is the 1-based line number, 0 when unknown.
	Line int `json:"line"`
	// Package is the declaring package (may be empty).
	Package string `json:"package,omitempty"`
	// Module is the owning module (may be empty).
	Module string `json:"module,omitempty"`
	// Original is the literal with surrounding quotes stripped.
	Original string `json:"original_string"`
	// Language is the source language tag reported by the analyzer (e.g. "JAVA").
	Language string `json:"language,omitempty"`
	// Category is set once at parse time and never recomputed.
	Category classify.Category `json:"category"`
	// Translated holds the machine translation when Status is StatusSuccess.
	Translated string `json:"translated_string,omitempty"`
	// Status is the translation status.
	Status Status `json:"translation_status"`
}

// problemXML mirrors one <problem> element of the report schema.
type problemXML struct {
	File        string `xml:"file"`
	Line        string `xml:"line"`
	Module      string `xml:"module"`
	Package     string `xml:"package"`
	Description string `xml:"description"`
	Highlighted string `xml:"highlighted_element"`
	Language    string `xml:"language"`
}

// descriptionRe extracts the quoted literal out of descriptions like
// `Hardcoded string literal: "提交失败"` when no highlighted element
// is present.
var descriptionRe = regexp.MustCompile(`Hardcoded string literal:\s*(.+)$`)

// ParseFile reads and parses one inspection report.
func ParseFile(path string) ([]*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return records, nil
}

// Parse decodes an inspection report from r. Malformed <problem>
// elements are skipped individually; a document that is not well-formed
// XML returns an error.
func Parse(r io.Reader) ([]*Record, error) {
	dec := xml.NewDecoder(r)

	var records []*Record
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed XML: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "problem" {
			continue
		}

		var p problemXML
		if err := dec.DecodeElement(&p, &start); err != nil {
			// Broken child element: skip it, keep the rest.
			continue
		}

		if rec := recordFromProblem(p); rec != nil {
			records = append(records, rec)
		}
	}

	return records, nil
}

// recordFromProblem converts a decoded <problem> into a Record.
// Returns nil when no literal could be recovered.
func recordFromProblem(p problemXML) *Record {
	literal := strings.TrimSpace(p.Highlighted)
	if literal == "" {
		if m := descriptionRe.FindStringSubmatch(strings.TrimSpace(p.Description)); m != nil {
			literal = strings.TrimSpace(m[1])
		}
	}
	literal = classify.Clean(literal)
	if literal == "" {
		return nil
	}

	return &Record{
		FilePath: CleanPath(p.File),
		Line:     parseLine(p.Line),
		Package:  strings.TrimSpace(p.Package),
		Module:   strings.TrimSpace(p.Module),
		Original: literal,
		Language: strings.TrimSpace(p.Language),
		Category: classify.Classify(literal),
		Status:   StatusNotAttempted,
	}
}

// CleanPath strips the IDEA project-root URI prefix so paths are
// repository-relative. Cleaning an already-clean path is a no-op.
func CleanPath(p string) string {
	p = strings.TrimSpace(p)
	p = strings.TrimPrefix(p, "file://$PROJECT_DIR$/")
	p = strings.TrimPrefix(p, "file://")
	return p
}

// parseLine converts the line element to an int. Missing or non-numeric
// values become the 0 sentinel rather than an error.
func parseLine(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
