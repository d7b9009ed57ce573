package inspection

import "github.com/ethan8996/i18nx/classify"

// Stats aggregates a run's counters. Category and status counts are
// derived from the record set; SkippedFiles is maintained by the caller
// as unreadable report files are encountered.
type Stats struct {
	Total        int `json:"total_strings"`
	Chinese      int `json:"chinese_strings"`
	English      int `json:"english_strings"`
	Format       int `json:"format_strings"`
	Translated   int `json:"translated_strings"`
	Failed       int `json:"failed_translations"`
	SkippedFiles int `json:"skipped_files"`
}

// Tally derives category and status counters from records. SkippedFiles
// is left at zero; callers carrying a file-skip count should set it
// afterwards.
func Tally(records []*Record) Stats {
	var st Stats
	st.Total = len(records)
	for _, r := range records {
		switch r.Category {
		case classify.Chinese:
			st.Chinese++
		case classify.English:
			st.English++
		case classify.Format:
			st.Format++
		}
		switch r.Status {
		case StatusSuccess:
			st.Translated++
		case StatusFailed:
			st.Failed++
		}
	}
	return st
}
