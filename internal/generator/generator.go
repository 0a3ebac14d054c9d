// Package generator produces deterministic dummy input data for the
// transform: an event feed plus the product and country dimension tables,
// with a controlled rate of malformed cells so the loaders' drop and default
// paths stay exercised.
package generator

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"orderetl/internal/errors"
)

var categories = []string{
	"electronics",
	"apparel",
	"home",
	"grocery",
	"sports",
	"books",
	"beauty",
	"toys",
}

type countryFactor struct {
	code    string
	fxPpm   int64
	riskBps int64
	taxBps  int64
}

// countryFactors is sorted by code so the dimension file is stable across
// runs with the same seed.
var countryFactors = []countryFactor{
	{"AU", 660_000, 10_250, 1_000},
	{"CA", 740_000, 10_150, 500},
	{"DE", 1_080_000, 9_950, 1_900},
	{"FR", 1_090_000, 10_050, 2_000},
	{"GB", 1_260_000, 10_200, 2_000},
	{"IN", 12_000, 10_800, 1_800},
	{"SG", 740_000, 9_900, 900},
	{"US", 1_000_000, 10_000, 850},
}

var (
	customerTiers  = []string{"bronze", "silver", "gold", "platinum"}
	tierWeights    = []float64{0.45, 0.30, 0.18, 0.07}
	paymentMethods = []string{"card", "bank_transfer", "wallet", "upi", "cod"}
	paymentWeights = []float64{0.58, 0.12, 0.16, 0.10, 0.04}
	statuses       = []string{"COMPLETE", "PENDING", "CANCELLED"}
	statusWeights  = []float64{0.74, 0.17, 0.09}
)

// Options configures one generation run.
type Options struct {
	Rows     int
	Products int
	Seed     int64
	OutDir   string
}

// Paths names the three files a run produced.
type Paths struct {
	Events    string
	Products  string
	Countries string
}

// Generator writes seeded dummy data files.
type Generator struct {
	logger *slog.Logger
	opts   Options
}

// New validates the options and creates a generator.
func New(logger *slog.Logger, opts Options) (*Generator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Rows <= 0 {
		return nil, errors.NewValidationError("rows must be > 0")
	}
	if opts.Products <= 0 {
		return nil, errors.NewValidationError("products must be > 0")
	}
	return &Generator{logger: logger, opts: opts}, nil
}

// Run generates the three input files. The same seed always yields the same
// bytes: a single rng drives the product table, the country table and the
// event feed in that order.
func (g *Generator) Run() (Paths, error) {
	paths := Paths{
		Events:    filepath.Join(g.opts.OutDir, "events.csv"),
		Products:  filepath.Join(g.opts.OutDir, "dim_products.csv"),
		Countries: filepath.Join(g.opts.OutDir, "dim_countries.csv"),
	}

	if err := os.MkdirAll(g.opts.OutDir, 0755); err != nil {
		return Paths{}, errors.NewStorageError("failed to create output directory", err).WithContext("dir", g.opts.OutDir)
	}

	rng := rand.New(rand.NewSource(g.opts.Seed))

	if err := g.writeProductDim(paths.Products, rng); err != nil {
		return Paths{}, err
	}
	if err := g.writeCountryDim(paths.Countries); err != nil {
		return Paths{}, err
	}
	if err := g.writeEvents(paths.Events, rng); err != nil {
		return Paths{}, err
	}

	g.logger.Info("dummy data generated",
		slog.Int("event_rows", g.opts.Rows),
		slog.Int("product_rows", g.opts.Products),
		slog.Int("country_rows", len(countryFactors)),
		slog.String("out_dir", g.opts.OutDir))

	return paths, nil
}

func (g *Generator) writeProductDim(path string, rng *rand.Rand) error {
	return writeCSV(path, func(w *csv.Writer) error {
		if err := w.Write([]string{"product_id", "category", "margin_bps", "weight_grams"}); err != nil {
			return err
		}
		for id := 1; id <= g.opts.Products; id++ {
			row := []string{
				strconv.Itoa(id),
				categories[rng.Intn(len(categories))],
				strconv.Itoa(1_600 + rng.Intn(7_200-1_600+1)),
				strconv.Itoa(120 + rng.Intn(4_500-120+1)),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

func (g *Generator) writeCountryDim(path string) error {
	return writeCSV(path, func(w *csv.Writer) error {
		if err := w.Write([]string{"country", "fx_to_usd_ppm", "risk_bps", "tax_bps"}); err != nil {
			return err
		}
		for _, cf := range countryFactors {
			row := []string{
				cf.code,
				strconv.FormatInt(cf.fxPpm, 10),
				strconv.FormatInt(cf.riskBps, 10),
				strconv.FormatInt(cf.taxBps, 10),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

func (g *Generator) writeEvents(path string, rng *rand.Rand) error {
	startDate := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	return writeCSV(path, func(w *csv.Writer) error {
		header := []string{
			"event_id", "event_version", "event_ts", "event_date",
			"customer_id", "product_id", "amount_cents", "quantity",
			"discount_bps", "shipping_cents", "status", "country",
			"customer_tier", "payment_method",
		}
		if err := w.Write(header); err != nil {
			return err
		}

		for i := 0; i < g.opts.Rows; i++ {
			eventID := fmt.Sprintf("E%012d", i)
			eventVersion := 1
			// ~8% of rows re-emit an earlier id with a new version to feed
			// the deduplicator.
			if i > 0 && rng.Float64() < 0.08 {
				eventID = fmt.Sprintf("E%012d", rng.Intn(i))
				eventVersion = 1 + rng.Intn(8)
			}

			eventDate := startDate.AddDate(0, 0, rng.Intn(90)).Format("2006-01-02")
			eventTS := fmt.Sprintf("%sT%02d:%02d:%02d", eventDate, rng.Intn(24), rng.Intn(60), rng.Intn(60))

			row := []string{
				eventID,
				strconv.Itoa(eventVersion),
				maybeBadEventTS(rng, eventTS),
				eventDate,
				strconv.Itoa(1 + rng.Intn(120_000)),
				strconv.Itoa(1 + rng.Intn(g.opts.Products)),
				maybeBadInt(rng, int64(100+rng.Intn(49_901)), 0.01, 0.005),
				maybeBadInt(rng, int64(1+rng.Intn(10)), 0.01, 0.005),
				maybeBadInt(rng, int64(rng.Intn(3_501)), 0.01, 0.005),
				maybeBadInt(rng, int64(rng.Intn(2_501)), 0.008, 0.004),
				maybeBadStatus(rng, weightedChoice(rng, statuses, statusWeights)),
				maybeBadCountry(rng, countryFactors[rng.Intn(len(countryFactors))].code),
				maybeBadTier(rng, weightedChoice(rng, customerTiers, tierWeights)),
				weightedChoice(rng, paymentMethods, paymentWeights),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeCSV creates path and hands a csv.Writer to fill.
func writeCSV(path string, fill func(*csv.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create file", err).WithContext("path", path)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := fill(writer); err != nil {
		return errors.NewStorageError("failed to write rows", err).WithContext("path", path)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.NewStorageError("failed to flush file", err).WithContext("path", path)
	}
	return nil
}

// weightedChoice picks one value by relative weight.
func weightedChoice(rng *rand.Rand, values []string, weights []float64) string {
	r := rng.Float64()
	var acc float64
	for i, w := range weights {
		acc += w
		if r < acc {
			return values[i]
		}
	}
	return values[len(values)-1]
}

// maybeBadInt renders v as text, occasionally replacing it with an empty or
// unparseable cell.
func maybeBadInt(rng *rand.Rand, v int64, emptyRate, badRate float64) string {
	r := rng.Float64()
	if r < emptyRate {
		return ""
	}
	if r < emptyRate+badRate {
		return "bad"
	}
	return strconv.FormatInt(v, 10)
}

func maybeBadStatus(rng *rand.Rand, status string) string {
	r := rng.Float64()
	if r < 0.008 {
		return ""
	}
	if r < 0.012 {
		return "INVALID"
	}
	return status
}

func maybeBadCountry(rng *rand.Rand, country string) string {
	r := rng.Float64()
	if r < 0.004 {
		return ""
	}
	if r < 0.008 {
		return "ZZ"
	}
	return country
}

func maybeBadTier(rng *rand.Rand, tier string) string {
	r := rng.Float64()
	if r < 0.008 {
		return ""
	}
	if r < 0.012 {
		return "diamond"
	}
	return tier
}

func maybeBadEventTS(rng *rand.Rand, eventTS string) string {
	r := rng.Float64()
	if r < 0.004 {
		return ""
	}
	if r < 0.008 {
		return eventTS[:10] + " " + eventTS[11:]
	}
	return eventTS
}
