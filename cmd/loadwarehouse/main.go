package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"orderetl/internal/config"
	"orderetl/internal/infrastructure"
	"orderetl/internal/warehouse"
)

func main() {
	input := flag.String("input", "", "path to the summary report CSV")
	dbPath := flag.String("db", "", "path to the SQLite database file")
	table := flag.String("table", "", "destination table name")
	flag.Parse()

	if *input == "" || *dbPath == "" || *table == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -input <report_csv> -db <sqlite_db> -table <table>\n", os.Args[0])
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	inserted, err := warehouse.NewLoader(logger).Load(context.Background(), *input, *dbPath, *table)
	if err != nil {
		logger.Error("Warehouse load failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("loaded table=%s rows=%d db=%s\n", *table, inserted, *dbPath)
}
