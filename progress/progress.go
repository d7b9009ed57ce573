// Package progress persists translation checkpoints. After every batch
// the orchestrator writes a snapshot of the full record set; a later run
// can load the newest snapshot and resume at the first unprocessed
// batch instead of re-translating everything.
//
// Snapshots are standalone JSON documents in the output directory, one
// per completed batch, named translation_progress_batch_<k>_of_<N>.json.
package progress

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/ethan8996/i18nx/inspection"
)

// Snapshot is one durable checkpoint of translation progress.
type Snapshot struct {
	// BatchInfo is a human-readable label ("Batch 3 of 7").
	BatchInfo string `json:"batch_info"`
	// CompletedBatch is the 1-based index of the last fully processed batch.
	CompletedBatch int `json:"completed_batch"`
	// TotalBatches is the batch count for the whole run.
	TotalBatches int `json:"total_batches"`
	// Timestamp records when the snapshot was written.
	Timestamp string `json:"timestamp"`
	// Stats are the run counters at snapshot time.
	Stats inspection.Stats `json:"statistics"`
	// Records is the full record set as processed so far.
	Records []*inspection.Record `json:"records"`
}

// fileRe matches snapshot file names and captures the batch index.
var fileRe = regexp.MustCompile(`^translation_progress_batch_(\d+)_of_(\d+)\.json$`)

// FileName returns the snapshot file name for a completed batch.
func FileName(completed, total int) string {
	return fmt.Sprintf("translation_progress_batch_%d_of_%d.json", completed, total)
}

// Save writes a checkpoint to dir and returns the file path.
func Save(dir string, completed, total int, records []*inspection.Record, stats inspection.Stats) (string, error) {
	snap := Snapshot{
		BatchInfo:      fmt.Sprintf("Batch %d of %d", completed, total),
		CompletedBatch: completed,
		TotalBatches:   total,
		Timestamp:      time.Now().Format("2006-01-02 15:04:05"),
		Stats:          stats,
		Records:        records,
	}

	data, err := json.MarshalIndent(&snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling snapshot: %w", err)
	}

	path := filepath.Join(dir, FileName(completed, total))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// Load reads one snapshot file.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if snap.CompletedBatch < 0 || snap.TotalBatches < snap.CompletedBatch {
		return nil, fmt.Errorf("%s: inconsistent batch indices %d/%d", path, snap.CompletedBatch, snap.TotalBatches)
	}
	return &snap, nil
}

// Latest finds the snapshot with the highest completed batch index in
// dir. Returns "" when the directory holds no snapshots.
func Latest(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading %s: %w", dir, err)
	}

	best := ""
	bestIdx := -1
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := fileRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if idx > bestIdx {
			bestIdx = idx
			best = filepath.Join(dir, e.Name())
		}
	}
	return best, nil
}
