// Command export publishes the dashboard snapshot (summary.json) without
// starting the API server, and optionally writes a CSV, XLSX or PDF report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/chenmq77/duckiki/internal/catalog"
	"github.com/chenmq77/duckiki/internal/config"
	"github.com/chenmq77/duckiki/internal/database"
	"github.com/chenmq77/duckiki/internal/jobs"
	"github.com/chenmq77/duckiki/internal/repository"
	"github.com/chenmq77/duckiki/internal/services"
	"github.com/chenmq77/duckiki/internal/storage"
	"github.com/chenmq77/duckiki/pkg/logger"
)

func main() {
	format := flag.String("format", "", "also write a report: csv, xlsx or pdf")
	out := flag.String("out", ".", "directory for the report file")
	settle := flag.Bool("settle", false, "settle due charges before exporting")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Setup(cfg.Environment, cfg.LogLevel)

	if err := run(cfg, *format, *out, *settle); err != nil {
		logger.Error("export failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, format, out string, settle bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return err
	}
	db, err := database.Connect(cfg.DatabaseURL, cfg.Environment)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}
	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		return err
	}

	worker := jobs.NewWorker(1)
	defer worker.Shutdown()

	// Publishing happens below, synchronously
	cfg.AutoPublishSnapshot = false
	svcs := services.NewServices(repository.NewRepositories(db), worker, store, cfg, cat)

	if settle {
		n, asOf, err := svcs.Job.SettleNow(ctx)
		if err != nil {
			return err
		}
		logger.Info("settled due charges", "count", n, "as_of", asOf.Format("2006-01-02"))
	}

	res, err := svcs.Export.PublishJSON(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("published %s (%d expenses, %d activities, paid ROI %.2f%%)\n",
		store.GetFullPath(services.SnapshotFile), res.ExpensesCount, res.ActivitiesCount, res.ROIPercentage)

	if format == "" {
		return nil
	}

	var (
		data     []byte
		filename string
	)
	switch format {
	case "csv":
		data, filename, err = svcs.Export.ExportCSV(ctx)
	case "xlsx":
		data, filename, err = svcs.Export.ExportXLSX(ctx)
	case "pdf":
		data, filename, err = svcs.Export.ExportPDF(ctx)
	default:
		return fmt.Errorf("unknown format %q (csv, xlsx, pdf)", format)
	}
	if err != nil {
		return err
	}

	path := filepath.Join(out, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
