package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/ca-facilities/custodial-command/internal/common"
	"github.com/ca-facilities/custodial-command/internal/extract"
	"github.com/ca-facilities/custodial-command/internal/feedback"
	"github.com/ca-facilities/custodial-command/internal/importer"
	"github.com/ca-facilities/custodial-command/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func usage() {
	fmt.Println(`Usage: feedback-import [flags] FILE [FILE...]

Imports monthly feedback documents: extracts text, parses scores and
location notes, and creates one custodial note per location.

School, month, and year are derived from each filename (e.g. "LCA Dec
2025.pdf") unless all three of --school, --month, and --year are given.

Flags:`)
	flag.PrintDefaults()
}

func main() {
	var (
		inmem        = flag.Bool("inmem", false, "use in-memory SQLite database")
		school       = flag.String("school", "", "school code for every file (overrides filename)")
		month        = flag.String("month", "", "month name for every file (overrides filename)")
		year         = flag.Int("year", 0, "year for every file (overrides filename)")
		fileDelay    = flag.Duration("file-delay", -1, "delay between files (default from IMPORT_FILE_DELAY)")
		previewDelay = flag.Duration("preview-delay", -1, "delay after the location preview (default from IMPORT_PREVIEW_DELAY)")
	)
	flag.Usage = usage
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		usage()
		os.Exit(1)
	}

	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var (
		db  *repository.DB
		err error
	)
	if *inmem {
		db, err = repository.OpenSQLite("file::memory:?cache=shared")
	} else {
		if verr := cfg.Validate(); verr != nil {
			printError("Error: %v\n", verr)
			os.Exit(2)
		}
		db, err = repository.Open(ctx, cfg.Database, logger)
	}
	if err != nil {
		printError("Error: opening database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := repository.Migrate(ctx, db); err != nil {
		printError("Error: running migrations: %v\n", err)
		os.Exit(1)
	}

	extractor := extract.NewPDFExtractor(extract.Config{
		Pdftotext: cfg.Extract.Pdftotext,
		Timeout:   cfg.Extract.Timeout,
	}, logger)

	im := importer.New(
		extractor,
		repository.NewMonthlyFeedbackRepository(db, logger),
		repository.NewCustodialNoteRepository(db, logger),
		logger,
	)
	im.InterFileDelay = cfg.Import.InterFileDelay
	im.PreviewDelay = cfg.Import.PreviewDelay
	if *fileDelay >= 0 {
		im.InterFileDelay = *fileDelay
	}
	if *previewDelay >= 0 {
		im.PreviewDelay = *previewDelay
	}
	if *school != "" && *month != "" && *year != 0 {
		im.Meta = &feedback.Metadata{School: *school, Month: *month, Year: *year}
	} else if *school != "" || *month != "" || *year != 0 {
		printError("Error: --school, --month, and --year must be given together\n")
		os.Exit(1)
	}

	start := time.Now()
	summary, err := im.ImportMany(ctx, paths)
	printSummary(summary, time.Since(start))
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
}

func printSummary(s importer.Summary, elapsed time.Duration) {
	fmt.Println("\n=== Import Summary ===")
	for _, r := range s.Results {
		if r.Success {
			fmt.Printf("  OK   %s (feedback id %d, %d notes)\n", r.File, r.MonthlyFeedbackID, r.NotesCount)
		} else {
			fmt.Printf("  FAIL %s: %s\n", r.File, r.Error)
		}
	}
	fmt.Printf("Succeeded: %d  Failed: %d  Notes created: %d  Elapsed: %s\n",
		s.Succeeded, s.Failed, s.TotalNotes, elapsed.Round(time.Millisecond))
}
