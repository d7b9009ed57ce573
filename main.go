// i18nx — extracts hardcoded strings from IDEA inspection XML reports,
// classifies them (Chinese / Format / English), machine-translates the
// Chinese ones through free web translation services, and writes
// Markdown and Excel reports with resumable progress snapshots.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ethan8996/i18nx/batch"
	"github.com/ethan8996/i18nx/cache"
	"github.com/ethan8996/i18nx/config"
	"github.com/ethan8996/i18nx/i18n"
	"github.com/ethan8996/i18nx/inspection"
	"github.com/ethan8996/i18nx/progress"
	"github.com/ethan8996/i18nx/report"
	"github.com/ethan8996/i18nx/translate"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Run options (flags merged with .i18nx.yaml)
// ---------------------------------------------------------------------------

type runOptions struct {
	noTranslate    bool
	batchSize      int
	delay          float64 // seconds between batches
	outputDir      string
	markdownOutput string
	excelOutput    string
	propertiesOut  string
	noCache        bool
	resume         string
	configPath     string
	timeout        time.Duration
	maxRetries     int
	verbose        bool

	sourceLang   string
	targetLang   string
	offlineAfter int
	providers    []config.ProviderSpec
}

// merge overlays file values onto flag defaults. Explicitly set flags
// always win; the file only fills in what the user left at default.
func (o *runOptions) merge(cmd *cobra.Command, cfg *config.File) {
	if cfg == nil {
		return
	}
	flags := cmd.Flags()
	if cfg.BatchSize > 0 && !flags.Changed("batch-size") {
		o.batchSize = cfg.BatchSize
	}
	if cfg.Delay > 0 && !flags.Changed("delay") {
		o.delay = cfg.Delay
	}
	if cfg.OutputDir != "" && !flags.Changed("output-dir") {
		o.outputDir = cfg.OutputDir
	}
	if cfg.MaxRetries > 0 && !flags.Changed("max-retries") {
		o.maxRetries = cfg.MaxRetries
	}
	if cfg.SourceLang != "" {
		o.sourceLang = cfg.SourceLang
	}
	if cfg.TargetLang != "" {
		o.targetLang = cfg.TargetLang
	}
	if cfg.OfflineAfter > 0 {
		o.offlineAfter = cfg.OfflineAfter
	}
	o.providers = cfg.Providers
}

// buildProviders turns the configured chain into adapters, falling back
// to the built-in chain when the configuration names none.
func (o *runOptions) buildProviders() ([]translate.Provider, error) {
	if len(o.providers) == 0 {
		return translate.DefaultProviders(o.timeout), nil
	}
	providers := make([]translate.Provider, 0, len(o.providers))
	for _, spec := range o.providers {
		timeout := time.Duration(spec.Timeout)
		if timeout <= 0 {
			timeout = o.timeout
		}
		p, err := translate.NewProvider(spec.Name, spec.BaseURL, timeout)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, nil
}

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	opts := &runOptions{}

	root := &cobra.Command{
		Use:   "i18nx [flags] <inspection.xml>...",
		Short: "Extract and translate hardcoded strings from IDEA inspection reports",
		Long: `i18nx — hardcoded string extractor for i18n conversion.

Parses JetBrains IDEA inspection XML files (i18n "hardcoded string
literal" inspections), categorizes every literal as Chinese, Format, or
English, machine-translates the Chinese ones through free web services
(Google web endpoint, MyMemory, Lingva) with fallback and retry, and
writes Markdown and Excel reports.

Translation progress is checkpointed after every batch; an interrupted
run can be resumed with --resume.`,
		Example: `  i18nx inspection.xml
  i18nx file1.xml file2.xml --no-translate
  i18nx inspection.xml --batch-size 5 --delay 2.0
  i18nx --resume output/translation_progress_batch_3_of_7.json`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && opts.resume == "" {
				return fmt.Errorf("at least one inspection XML file is required (or --resume)")
			}
			return runExtract(cmd, opts, args)
		},
	}

	flags := root.Flags()
	flags.BoolVar(&opts.noTranslate, "no-translate", false, "Skip translation of Chinese strings")
	flags.IntVar(&opts.batchSize, "batch-size", 10, "Number of strings to translate per batch")
	flags.Float64Var(&opts.delay, "delay", 1.0, "Delay between translation batches in seconds")
	flags.StringVar(&opts.outputDir, "output-dir", "output", "Output directory for results")
	flags.StringVar(&opts.markdownOutput, "markdown-output", "hardcoded_strings.md", "Markdown output filename")
	flags.StringVar(&opts.excelOutput, "excel-output", "hardcoded_strings.xlsx", "Excel output filename")
	flags.StringVar(&opts.propertiesOut, "properties-output", "", "Also write a Java .properties message skeleton with this filename")
	flags.BoolVar(&opts.noCache, "no-cache", false, "Disable the persistent translation cache")
	flags.StringVar(&opts.resume, "resume", "", "Resume translation from a progress snapshot (file or output directory)")
	flags.StringVar(&opts.configPath, "config", config.FileName, "Configuration file path")
	flags.DurationVar(&opts.timeout, "timeout", translate.DefaultTimeout, "Per-request timeout for translation services")
	flags.IntVar(&opts.maxRetries, "max-retries", 2, "Retries per provider call on transient failures")
	flags.BoolVar(&opts.verbose, "verbose", false, "Enable detailed logging")

	root.AddCommand(newVersionCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("i18nx version %s\n", version)
			fmt.Printf("  commit:    %s\n", commit)
			fmt.Printf("  built:     %s\n", date)
		},
	}
}

func main() {
	i18n.Init("")
	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// Run controller
// ---------------------------------------------------------------------------

// runExtract wires one invocation: parse inputs, classify, translate,
// export. Only setup failures return an error (non-zero exit); per-file
// and per-record problems are contained and reported in the summary.
func runExtract(cmd *cobra.Command, opts *runOptions, args []string) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	opts.merge(cmd, cfg)

	if err := os.MkdirAll(opts.outputDir, 0755); err != nil {
		return fmt.Errorf("cannot create output directory %s: %w", opts.outputDir, err)
	}

	logger, closeLogger, err := newLogger(opts.outputDir, opts.verbose)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	defer closeLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Gather records: either a fresh parse of the input files, or the
	// record set of an earlier run's snapshot.
	var (
		records    []*inspection.Record
		startBatch int
		skipped    int
	)
	if opts.resume != "" {
		records, startBatch, err = loadResume(opts, logger, args)
		if err != nil {
			return err
		}
	} else {
		records, skipped, err = parseInputs(args, logger)
		if err != nil {
			return err
		}
	}

	if len(records) == 0 {
		logWarning("No hardcoded strings were extracted from the input files")
		return nil
	}

	stats := inspection.Tally(records)
	stats.SkippedFiles = skipped
	logInfo("Extracted %d strings: %d Chinese, %d English, %d Format",
		stats.Total, stats.Chinese, stats.English, stats.Format)

	// Translation pass.
	if opts.noTranslate {
		logInfo("%s", i18n.T("Translation skipped (--no-translate)"))
	} else {
		if err := runTranslation(ctx, opts, logger, records, startBatch); err != nil {
			// Interruption is not a failure: completed batches are
			// checkpointed and the reports below still get written.
			logWarning("Translation interrupted: %v", err)
			logger.Warn("translation interrupted", zap.Error(err))
		}
		stats = inspection.Tally(records)
		stats.SkippedFiles = skipped
	}

	writeReports(opts, logger, records, stats)
	printSummary(stats, opts)

	logger.Info("run completed", zap.Int("total", stats.Total),
		zap.Int("translated", stats.Translated), zap.Int("failed", stats.Failed))
	return nil
}

// parseInputs parses every input file, skipping unparsable ones with a
// warning. Zero readable files is a setup error.
func parseInputs(args []string, logger *zap.Logger) ([]*inspection.Record, int, error) {
	var records []*inspection.Record
	readable := 0
	skipped := 0

	for _, path := range args {
		if _, err := os.Stat(path); err != nil {
			logWarning("Input file not found: %s", path)
			logger.Warn("input file not found", zap.String("path", path))
			skipped++
			continue
		}
		readable++

		recs, err := inspection.ParseFile(path)
		if err != nil {
			logWarning("Skipping malformed report %s: %v", path, err)
			logger.Warn("skipping malformed report", zap.String("path", path), zap.Error(err))
			skipped++
			continue
		}
		logger.Info("parsed report", zap.String("path", path), zap.Int("records", len(recs)))
		records = append(records, recs...)
	}

	if readable == 0 {
		return nil, 0, fmt.Errorf("no readable input files")
	}
	return records, skipped, nil
}

// loadResume restores the record set and resume point from a snapshot.
// The --resume value may be a snapshot file or a directory, in which
// case the snapshot with the highest batch index is picked.
func loadResume(opts *runOptions, logger *zap.Logger, args []string) ([]*inspection.Record, int, error) {
	path := opts.resume
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		latest, err := progress.Latest(path)
		if err != nil {
			return nil, 0, err
		}
		if latest == "" {
			return nil, 0, fmt.Errorf("no progress snapshots in %s", path)
		}
		path = latest
	}

	snap, err := progress.Load(path)
	if err != nil {
		return nil, 0, err
	}
	if len(args) > 0 {
		logWarning("Resuming from snapshot; ignoring %d input file(s)", len(args))
	}

	total := len(batch.Partition(snap.Records, opts.batchSize))
	if total != snap.TotalBatches {
		logWarning("Batch size differs from the interrupted run (%d batches now, %d then); resume point may repeat or skip records",
			total, snap.TotalBatches)
	}

	logInfo("Resuming at batch %d of %d", snap.CompletedBatch+1, total)
	logger.Info("resuming from snapshot",
		zap.String("path", path),
		zap.Int("completed_batch", snap.CompletedBatch),
		zap.Int("records", len(snap.Records)))
	return snap.Records, snap.CompletedBatch, nil
}

// runTranslation drives the gateway and orchestrator over the record set.
func runTranslation(ctx context.Context, opts *runOptions, logger *zap.Logger, records []*inspection.Record, startBatch int) error {
	providers, err := opts.buildProviders()
	if err != nil {
		return err
	}

	gateway := translate.NewGateway(providers, logger, translate.Options{
		MaxRetries:   opts.maxRetries,
		OfflineAfter: opts.offlineAfter,
	})

	var memory batch.Memory
	var store *cache.Cache
	if !opts.noCache {
		store, err = cache.Load(opts.outputDir)
		if err != nil {
			logWarning("Translation cache unavailable: %v", err)
			logger.Warn("translation cache unavailable", zap.Error(err))
		} else {
			memory = store
			logger.Info("translation cache loaded", zap.Int("entries", store.Len()))
		}
	}

	orch := batch.New(gateway, logger, batch.Options{
		BatchSize:   opts.batchSize,
		Delay:       time.Duration(opts.delay * float64(time.Second)),
		SourceLang:  opts.sourceLang,
		TargetLang:  opts.targetLang,
		SnapshotDir: opts.outputDir,
		StartBatch:  startBatch,
		OnProgress: func(batchesDone, batchesTotal, recordsDone, recordsTotal int) {
			logInfo("Translated batch %d/%d (%d/%d strings)",
				batchesDone, batchesTotal, recordsDone, recordsTotal)
		},
		Memory: memory,
	})

	_, runErr := orch.Run(ctx, records)
	if store != nil {
		if err := store.Save(); err != nil {
			logWarning("Failed to save translation cache: %v", err)
			logger.Warn("failed to save translation cache", zap.Error(err))
		}
	}
	if gateway.Offline() {
		logWarning("Network was unavailable; remaining strings were marked failed")
	}
	return runErr
}

// writeReports attempts both writers independently: one failing sink
// must not cost the other report.
func writeReports(opts *runOptions, logger *zap.Logger, records []*inspection.Record, stats inspection.Stats) {
	mdPath := filepath.Join(opts.outputDir, opts.markdownOutput)
	if err := report.WriteMarkdown(records, stats, mdPath); err != nil {
		logError("Failed to write Markdown report: %v", err)
		logger.Error("markdown export failed", zap.Error(err))
	} else {
		logSuccess("%s: %s", i18n.T("Markdown report"), mdPath)
		logger.Info("markdown report written", zap.String("path", mdPath))
	}

	xlsxPath := filepath.Join(opts.outputDir, opts.excelOutput)
	if err := report.WriteExcel(records, stats, xlsxPath); err != nil {
		logError("Failed to write Excel report: %v", err)
		logger.Error("excel export failed", zap.Error(err))
	} else {
		logSuccess("%s: %s", i18n.T("Excel report"), xlsxPath)
		logger.Info("excel report written", zap.String("path", xlsxPath))
	}

	if opts.propertiesOut != "" {
		propPath := filepath.Join(opts.outputDir, opts.propertiesOut)
		if err := report.WriteProperties(records, propPath); err != nil {
			logError("Failed to write properties skeleton: %v", err)
			logger.Error("properties export failed", zap.Error(err))
		} else {
			logSuccess("%s: %s", i18n.T("Properties skeleton"), propPath)
			logger.Info("properties skeleton written", zap.String("path", propPath))
		}
	}
}

// printSummary prints the final run counters.
func printSummary(stats inspection.Stats, opts *runOptions) {
	fmt.Fprintf(os.Stderr, "\n%s%s%s\n", colorBlue, i18n.T("Run Summary"), colorReset)
	fmt.Fprintf(os.Stderr, "  %s: %d\n", i18n.T("Total strings"), stats.Total)
	fmt.Fprintf(os.Stderr, "  %s: %d\n", i18n.T("Chinese strings"), stats.Chinese)
	fmt.Fprintf(os.Stderr, "  %s: %d\n", i18n.T("English strings"), stats.English)
	fmt.Fprintf(os.Stderr, "  %s: %d\n", i18n.T("Format strings"), stats.Format)
	if !opts.noTranslate {
		fmt.Fprintf(os.Stderr, "  %s: %d\n", i18n.T("Successfully translated"), stats.Translated)
		fmt.Fprintf(os.Stderr, "  %s: %d\n", i18n.T("Failed translations"), stats.Failed)
	}
	fmt.Fprintf(os.Stderr, "  %s: %d\n\n", i18n.T("Skipped files"), stats.SkippedFiles)
}

// ---------------------------------------------------------------------------
// Logging
// ---------------------------------------------------------------------------

// newLogger builds a zap logger writing human-readable lines to stderr
// and structured JSON to <outputDir>/i18nx.log.
func newLogger(outputDir string, verbose bool) (*zap.Logger, func(), error) {
	logFile, err := os.OpenFile(filepath.Join(outputDir, "i18nx.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}

	consoleLevel := zapcore.WarnLevel
	if verbose {
		consoleLevel = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleEnc := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(logFile), zapcore.DebugLevel),
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEnc), zapcore.AddSync(os.Stderr), consoleLevel),
	)

	logger := zap.New(core)
	closeFn := func() {
		_ = logger.Sync()
		_ = logFile.Close()
	}
	return logger, closeFn, nil
}
