package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"orderetl/internal/config"
	"orderetl/internal/generator"
	"orderetl/internal/infrastructure"
)

func main() {
	rows := flag.Int("rows", 200_000, "number of event rows")
	seed := flag.Int64("seed", 42, "random seed")
	products := flag.Int("products", 5_000, "product dimension cardinality")
	outDir := flag.String("out", "", "directory for generated CSV files (defaults to the configured raw data dir)")
	flag.Parse()

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

	if *outDir == "" {
		*outDir = cfg.Data.RawDir
	}

	gen, err := generator.New(logger, generator.Options{
		Rows:     *rows,
		Products: *products,
		Seed:     *seed,
		OutDir:   *outDir,
	})
	if err != nil {
		logger.Error("Invalid generator options", slog.String("error", err.Error()))
		os.Exit(1)
	}

	paths, err := gen.Run()
	if err != nil {
		logger.Error("Generation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("Generated %d event rows -> %s\n", *rows, paths.Events)
	fmt.Printf("Generated %d product dimension rows -> %s\n", *products, paths.Products)
	fmt.Printf("Generated country dimension rows -> %s\n", paths.Countries)
}
