package progress

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethan8996/i18nx/classify"
	"github.com/ethan8996/i18nx/inspection"
)

func sampleRecords() []*inspection.Record {
	return []*inspection.Record{
		{
			FilePath:   "src/A.java",
			Line:       3,
			Original:   "提交失败",
			Category:   classify.Chinese,
			Status:     inspection.StatusSuccess,
			Translated: "Submit failed",
		},
		{
			FilePath: "src/B.java",
			Line:     9,
			Original: "Saved successfully",
			Category: classify.English,
			Status:   inspection.StatusNotAttempted,
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	records := sampleRecords()
	stats := inspection.Tally(records)

	path, err := Save(dir, 2, 5, records, stats)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Base(path) != "translation_progress_batch_2_of_5.json" {
		t.Errorf("unexpected file name %q", filepath.Base(path))
	}

	snap, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.CompletedBatch != 2 || snap.TotalBatches != 5 {
		t.Errorf("indices = %d/%d, want 2/5", snap.CompletedBatch, snap.TotalBatches)
	}
	if snap.BatchInfo != "Batch 2 of 5" {
		t.Errorf("BatchInfo = %q", snap.BatchInfo)
	}
	if snap.Timestamp == "" {
		t.Error("missing timestamp")
	}
	if len(snap.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(snap.Records))
	}
	if snap.Records[0].Translated != "Submit failed" || snap.Records[0].Status != inspection.StatusSuccess {
		t.Errorf("first record lost translation state: %+v", snap.Records[0])
	}
	if snap.Records[1].Status != inspection.StatusNotAttempted {
		t.Errorf("second record status = %q", snap.Records[1].Status)
	}
	if snap.Stats.Translated != 1 {
		t.Errorf("stats.Translated = %d, want 1", snap.Stats.Translated)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte("{not json"), 0644)
	if _, err := Load(bad); err == nil {
		t.Error("expected error for malformed JSON")
	}

	inconsistent := filepath.Join(dir, "inconsistent.json")
	os.WriteFile(inconsistent, []byte(`{"completed_batch":9,"total_batches":2}`), 0644)
	if _, err := Load(inconsistent); err == nil {
		t.Error("expected error for inconsistent batch indices")
	}
}

func TestLatest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	got, err := Latest(dir)
	if err != nil {
		t.Fatalf("Latest on empty dir: %v", err)
	}
	if got != "" {
		t.Errorf("got %q, want empty for no snapshots", got)
	}

	records := sampleRecords()
	stats := inspection.Tally(records)
	for _, k := range []int{1, 3, 2} {
		if _, err := Save(dir, k, 3, records, stats); err != nil {
			t.Fatal(err)
		}
	}
	// Unrelated files must be ignored.
	os.WriteFile(filepath.Join(dir, "i18nx.log"), []byte("log"), 0644)

	got, err = Latest(dir)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if filepath.Base(got) != "translation_progress_batch_3_of_3.json" {
		t.Errorf("Latest = %q, want batch 3", got)
	}

	if got, err := Latest(filepath.Join(dir, "nope")); err != nil || got != "" {
		t.Errorf("Latest on missing dir = %q, %v; want empty, nil", got, err)
	}
}
