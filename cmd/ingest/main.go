package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"dealpulse/internal/config"
	"dealpulse/internal/infrastructure"
	"dealpulse/internal/ingest"
	"dealpulse/internal/loader"
	"dealpulse/internal/repository"
	"dealpulse/pkg/contracts/domain"
)

func main() {
	sourceFlag := flag.String("source", "", "source type of the file (mergermarket, preqin, sec_filing, index_constituent, press_release)")
	fileFlag := flag.String("file", "", "path to the CSV or XLSX file to ingest")
	dbFlag := flag.String("db", "", "path to the SQLite database (defaults to the configured path)")
	flag.Parse()

	if *sourceFlag == "" || *fileFlag == "" {
		flag.Usage()
		os.Exit(2)
	}

	source := domain.SourceType(*sourceFlag)
	if !source.Valid() {
		slog.Error("unknown source type", slog.String("source", *sourceFlag))
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if *dbFlag != "" {
		cfg.Database.Path = *dbFlag
	}

	logger, err := infrastructure.NewLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", slog.String("error", err.Error()))
		logger = slog.Default()
	}

	rows, err := loader.Load(*fileFlag)
	if err != nil {
		logger.Error("failed to load file",
			slog.String("file", *fileFlag),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	store, err := repository.NewSQLiteStore(cfg.Database.Path, logger)
	if err != nil {
		logger.Error("failed to open store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	metrics := infrastructure.NewMetrics(prometheus.NewRegistry())
	orchestrator := ingest.NewOrchestrator(store, nil, metrics, logger)

	report, err := orchestrator.IngestBatch(context.Background(), source, rows)
	if err != nil {
		logger.Error("ingest failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		logger.Error("failed to encode report", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
