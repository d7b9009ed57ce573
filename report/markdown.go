// Package report renders the final record table to Markdown and Excel.
// Writers never mutate records; each writer is an independent failure
// domain so one failing sink does not cost the other report.
package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/ethan8996/i18nx/inspection"
)

// Column truncation widths for the Markdown table. The Excel report
// always carries the full values.
const (
	mdPathWidth       = 50
	mdPackageWidth    = 30
	mdLiteralWidth    = 40
	mdTranslatedWidth = 40
)

// WriteMarkdown renders the summary block and the record table to path.
func WriteMarkdown(records []*inspection.Record, stats inspection.Stats, path string) error {
	var sb strings.Builder

	sb.WriteString("# Hardcoded Strings Analysis\n\n")

	sb.WriteString("## Statistics\n\n")
	sb.WriteString(fmt.Sprintf("- Total strings: %d\n", stats.Total))
	sb.WriteString(fmt.Sprintf("- Chinese strings: %d\n", stats.Chinese))
	sb.WriteString(fmt.Sprintf("- English strings: %d\n", stats.English))
	sb.WriteString(fmt.Sprintf("- Format strings: %d\n", stats.Format))
	sb.WriteString(fmt.Sprintf("- Successfully translated: %d\n", stats.Translated))
	sb.WriteString(fmt.Sprintf("- Failed translations: %d\n", stats.Failed))
	sb.WriteString(fmt.Sprintf("- Skipped files: %d\n\n", stats.SkippedFiles))

	sb.WriteString("## Extracted Strings\n\n")
	sb.WriteString("| File Path | Package | Line | Category | Original String | Translated String | Status |\n")
	sb.WriteString("|-----------|---------|------|----------|-----------------|-------------------|--------|\n")

	for _, r := range records {
		sb.WriteString(fmt.Sprintf("| %s | %s | %d | %s | %s | %s | %s |\n",
			mdCell(r.FilePath, mdPathWidth),
			mdCell(r.Package, mdPackageWidth),
			r.Line,
			r.Category,
			mdCell(r.Original, mdLiteralWidth),
			mdCell(r.Translated, mdTranslatedWidth),
			r.Status))
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// mdCell truncates a value to the column width (in runes) and escapes
// pipes so long literals cannot break the table.
func mdCell(s string, width int) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width]) + "..."
}
