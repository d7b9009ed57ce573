// Package batch drives the translation pass. Chinese-classified records
// are partitioned into fixed-size batches; each batch is translated
// record by record (a single failure never contaminates its batch),
// checkpointed to disk, and followed by a rate-limiting delay.
//
// Per run the orchestrator moves Idle → Running → Completed. Running is
// re-entrant: given the completed batch index from an earlier run's
// snapshot it reopens at the next batch and leaves earlier batches
// untouched.
package batch

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ethan8996/i18nx/classify"
	"github.com/ethan8996/i18nx/inspection"
	"github.com/ethan8996/i18nx/progress"
)

// State is the orchestrator lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Translator is the gateway contract the orchestrator depends on.
type Translator interface {
	Translate(ctx context.Context, text, from, to string) (string, error)
}

// Memory is an optional translation memory consulted before the gateway;
// hits never reach the network. See the cache package.
type Memory interface {
	Get(text, from, to string) (string, bool)
	Put(text, from, to, translated string)
}

// Options configures an orchestrator run.
type Options struct {
	// BatchSize is the number of records per batch. Default: 10.
	BatchSize int
	// Delay is the pause between batches (rate limiting). Default: 1s.
	Delay time.Duration
	// SourceLang and TargetLang are the translation pair.
	// Defaults: "zh-CN" → "en".
	SourceLang string
	TargetLang string
	// SnapshotDir receives a progress snapshot after every batch;
	// empty disables checkpointing.
	SnapshotDir string
	// StartBatch is the 0-based index of the first batch to process;
	// resume sets it to the snapshot's completed batch count.
	StartBatch int
	// OnProgress is called after every batch with completed batch and
	// record counts.
	OnProgress func(batchesDone, batchesTotal, recordsDone, recordsTotal int)
	// Memory is the translation memory; nil disables it.
	Memory Memory
}

func (o *Options) effectiveBatchSize() int {
	if o.BatchSize > 0 {
		return o.BatchSize
	}
	return 10
}

func (o *Options) langs() (string, string) {
	from, to := o.SourceLang, o.TargetLang
	if from == "" {
		from = "zh-CN"
	}
	if to == "" {
		to = "en"
	}
	return from, to
}

// Orchestrator owns one translation pass over a record set.
type Orchestrator struct {
	gateway Translator
	logger  *zap.Logger
	opts    Options
	state   State
}

// New creates an orchestrator. The gateway is required; logger may be nil.
func New(gateway Translator, logger *zap.Logger, opts Options) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		gateway: gateway,
		logger:  logger,
		opts:    opts,
		state:   StateIdle,
	}
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State { return o.state }

// Partition splits the Chinese-classified subset of records into ordered
// batches of the given size; the last batch may be smaller. Record order
// is input order, so partitioning is deterministic.
func Partition(records []*inspection.Record, size int) [][]*inspection.Record {
	var chinese []*inspection.Record
	for _, r := range records {
		if r.Category == classify.Chinese {
			chinese = append(chinese, r)
		}
	}
	if len(chinese) == 0 {
		return nil
	}
	if size <= 0 {
		size = 1
	}

	var batches [][]*inspection.Record
	for i := 0; i < len(chinese); i += size {
		end := i + size
		if end > len(chinese) {
			end = len(chinese)
		}
		batches = append(batches, chinese[i:end])
	}
	return batches
}

// Run translates every Chinese record in place, batch by batch. It
// returns the number of batches processed in this invocation. Individual
// translation failures mark the record failed and continue; only context
// cancellation aborts the pass.
func (o *Orchestrator) Run(ctx context.Context, records []*inspection.Record) (int, error) {
	batches := Partition(records, o.opts.effectiveBatchSize())
	total := len(batches)
	if total == 0 {
		o.state = StateCompleted
		o.logger.Info("no Chinese strings to translate")
		return 0, nil
	}

	totalRecords := 0
	for _, b := range batches {
		totalRecords += len(b)
	}

	from, to := o.opts.langs()
	o.state = StateRunning
	o.logger.Info("starting translation",
		zap.Int("batches", total),
		zap.Int("records", totalRecords),
		zap.Int("start_batch", o.opts.StartBatch))

	processed := 0
	recordsDone := o.opts.StartBatch * o.opts.effectiveBatchSize()
	if recordsDone > totalRecords {
		recordsDone = totalRecords
	}

	for i := o.opts.StartBatch; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return processed, err
		}

		for _, rec := range batches[i] {
			o.translateRecord(ctx, rec, from, to)
			if err := ctx.Err(); err != nil {
				// In-flight batch is lost by contract; only completed
				// batches were checkpointed.
				return processed, err
			}
			recordsDone++
		}
		processed++

		o.checkpoint(records, i+1, total)

		if o.opts.OnProgress != nil {
			o.opts.OnProgress(i+1, total, recordsDone, totalRecords)
		}

		if i < total-1 && o.opts.Delay > 0 {
			select {
			case <-ctx.Done():
				return processed, ctx.Err()
			case <-time.After(o.opts.Delay):
			}
		}
	}

	o.state = StateCompleted
	return processed, nil
}

// translateRecord translates one record in place, transitioning its
// status forward from NotAttempted.
func (o *Orchestrator) translateRecord(ctx context.Context, rec *inspection.Record, from, to string) {
	if rec.Status != inspection.StatusNotAttempted {
		return
	}

	if o.opts.Memory != nil {
		if cached, ok := o.opts.Memory.Get(rec.Original, from, to); ok {
			rec.Translated = cached
			rec.Status = inspection.StatusSuccess
			return
		}
	}

	result, err := o.gateway.Translate(ctx, rec.Original, from, to)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		rec.Status = inspection.StatusFailed
		o.logger.Warn("translation failed",
			zap.String("file", rec.FilePath),
			zap.Int("line", rec.Line),
			zap.String("original", rec.Original),
			zap.Error(err))
		return
	}

	rec.Translated = result
	rec.Status = inspection.StatusSuccess
	if o.opts.Memory != nil {
		o.opts.Memory.Put(rec.Original, from, to, result)
	}
}

// checkpoint writes a progress snapshot. Snapshot failures are logged
// and do not stop subsequent batches; they only cost the resume point.
func (o *Orchestrator) checkpoint(records []*inspection.Record, completed, total int) {
	if o.opts.SnapshotDir == "" {
		return
	}

	path, err := progress.Save(o.opts.SnapshotDir, completed, total, records, inspection.Tally(records))
	if err != nil {
		o.logger.Warn("failed to save progress snapshot",
			zap.Int("batch", completed),
			zap.Error(err))
		return
	}
	o.logger.Info("progress saved",
		zap.Int("batch", completed),
		zap.Int("total_batches", total),
		zap.String("path", path))
}
