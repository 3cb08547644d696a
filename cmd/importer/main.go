// Command importer batch-loads slip-audit workbooks into the database.
//
// Workbooks are discovered in the input directory and must be named
// <chapter>_YYYY-MM.xls (underscores stand in for spaces in the
// chapter name). Each file fully replaces the chapter's records and
// matrices for its period, so re-running the importer is safe.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bnitrack/internal/config"
	"bnitrack/internal/exporter"
	"bnitrack/internal/extract"
	"bnitrack/internal/files"
	"bnitrack/internal/infrastructure"
	"bnitrack/internal/services"
	"bnitrack/internal/store"
	"bnitrack/internal/validation"
	"bnitrack/pkg/contracts/domain"
)

func main() {
	inDir := flag.String("in", "inbox", "Directory containing slip-audit workbooks")
	dbPath := flag.String("db", "", "SQLite database path (default: from configuration)")
	exportDir := flag.String("export", "", "Write matrix and summary CSVs into this directory")
	archive := flag.Bool("archive", false, "Move imported workbooks into processed/")
	createChapters := flag.Bool("create-chapters", false, "Create chapters that do not exist yet")
	flag.Parse()

	if err := run(*inDir, *dbPath, *exportDir, *archive, *createChapters); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// importer bundles everything one import run needs.
type importer struct {
	db        *store.DB
	ingestion *services.IngestionService
	reports   *services.ReportService
	matrices  *exporter.MatrixExporter
	summaries *exporter.SummaryExporter
	manager   *files.Manager
	validator *validation.FileValidator

	createChapters bool
}

func run(inDir, dbPath, exportDir string, archive, createChapters bool) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := infrastructure.InitializeLogger(cfg.Logging)

	if dbPath == "" {
		dbPath = cfg.Storage.DatabasePath()
	}
	db, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	extractor := extract.New(logger, extract.Config{Currency: cfg.Ingest.Currency})
	validator := validation.NewFileValidator(logger)

	if err := validator.ValidateInputDirectory(inDir); err != nil {
		return err
	}

	imp := &importer{
		db:             db,
		ingestion:      services.NewIngestionService(db, nil, extractor, logger),
		reports:        services.NewReportService(db, logger),
		validator:      validator,
		createChapters: createChapters,
	}
	if exportDir != "" {
		if err := validator.ValidateOutputDirectory(exportDir); err != nil {
			return err
		}
		imp.matrices = exporter.NewMatrixExporter(exportDir)
		imp.summaries = exporter.NewSummaryExporter(exportDir)
	}
	if archive {
		imp.manager = files.NewManager(filepath.Join(inDir, "processed"))
	}

	discovery := files.NewDiscovery(".")
	reports, skipped, err := discovery.FindReportFiles(inDir)
	if err != nil {
		return err
	}
	for _, name := range skipped {
		fmt.Printf("Skipping %s: cannot parse chapter and period from the name\n", name)
	}
	if len(reports) == 0 {
		fmt.Println("No slip-audit workbooks found")
		return nil
	}

	fmt.Printf("Found %d workbook(s) in %s, database %s\n", len(reports), inDir, dbPath)

	imported, failed := 0, 0
	for i, report := range reports {
		fmt.Printf("[%d/%d] %s (%s, %s)\n", i+1, len(reports), report.Name, report.Chapter, report.Period)

		if err := imp.importOne(ctx, report); err != nil {
			fmt.Printf("  FAILED: %v\n", err)
			failed++
			continue
		}
		imported++
	}

	fmt.Printf("\nImported %d workbook(s), %d failed\n", imported, failed)
	if failed > 0 {
		return fmt.Errorf("%d workbook(s) failed to import", failed)
	}
	return nil
}

// importOne ingests a single workbook, then exports and archives it if
// those options are on.
func (imp *importer) importOne(ctx context.Context, report files.ReportFile) error {
	if err := imp.validator.ValidateWorkbookFile(report.Path); err != nil {
		return err
	}

	chapter, err := imp.resolveChapter(ctx, report.Chapter)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(report.Path)
	if err != nil {
		return fmt.Errorf("failed to read workbook: %w", err)
	}

	result, err := imp.ingestion.Ingest(ctx, chapter.ID, report.Period, data)
	if err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("ingest failed: %s", strings.Join(result.Errors, "; "))
	}

	fmt.Printf("  %d referrals, %d one-to-ones, %d TYFCBs from %d row(s)\n",
		result.ReferralsCreated, result.OneToOnesCreated, result.TYFCBsCreated, result.TotalProcessed)
	for _, warning := range result.Warnings {
		fmt.Printf("  warning: %s\n", warning)
	}

	if imp.matrices != nil {
		if err := imp.export(ctx, chapter.ID, report.Period); err != nil {
			return err
		}
	}

	if imp.manager != nil {
		archived, err := imp.manager.Archive(report.Path)
		if err != nil {
			return fmt.Errorf("failed to archive: %w", err)
		}
		fmt.Printf("  archived to %s\n", archived)
	}

	return nil
}

// resolveChapter finds the chapter by name, creating it when allowed.
func (imp *importer) resolveChapter(ctx context.Context, name string) (domain.Chapter, error) {
	chapter, err := imp.db.GetChapterByName(ctx, name)
	if err == nil {
		return chapter, nil
	}
	if !imp.createChapters {
		return domain.Chapter{}, fmt.Errorf("unknown chapter %q (use -create-chapters to add it)", name)
	}

	chapter, created, err := imp.db.GetOrCreateChapter(ctx, name, "")
	if err != nil {
		return domain.Chapter{}, err
	}
	if created {
		fmt.Printf("  created chapter %q\n", name)
	}
	return chapter, nil
}

// export writes the period's matrices and roll-ups as CSV files.
func (imp *importer) export(ctx context.Context, chapterID int64, period string) error {
	periodReport, err := imp.reports.PeriodReport(ctx, chapterID, period)
	if err != nil {
		return fmt.Errorf("failed to build period report: %w", err)
	}

	written, err := imp.matrices.ExportPeriodMatrices(periodReport, ".")
	if err != nil {
		return fmt.Errorf("failed to export matrices: %w", err)
	}
	more, err := imp.summaries.ExportPeriodSummaries(periodReport, ".")
	if err != nil {
		return fmt.Errorf("failed to export summaries: %w", err)
	}

	fmt.Printf("  wrote %d CSV file(s)\n", len(written)+len(more))
	return nil
}
