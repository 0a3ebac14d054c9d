package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"orderetl/internal/config"
	"orderetl/internal/dataprocessing"
	"orderetl/internal/infrastructure"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s <events_csv> <product_dim_csv> <country_dim_csv> <output_csv>\n", os.Args[0])
	}
	flag.Parse()

	args := flag.Args()
	if len(args) != 4 {
		flag.Usage()
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

	loc := dataprocessing.Locations{
		Events:    args[0],
		Products:  args[1],
		Countries: args[2],
		Output:    args[3],
	}

	stats, err := dataprocessing.NewProcessor(logger).Run(context.Background(), loc)
	if err != nil {
		logger.Error("Transform failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("transform completed | raw_rows=%d filtered_rows=%d dedup_rows=%d output=%s\n",
		stats.RawRows, stats.FilteredRows, stats.DedupRows, loc.Output)
}
