package dataprocessing

import (
	"strings"

	"orderetl/pkg/contracts/domain"
)

// LoadProductDim parses the product dimension table into a lookup keyed by
// product id. Header, blank and short rows are skipped, as are rows with a
// non-positive product id. Numeric cells parse permissively and are clamped
// to their domain ranges; later rows with a duplicate id overwrite earlier
// ones.
func LoadProductDim(path string) (map[int64]domain.ProductDim, error) {
	rows, err := readTable(path)
	if err != nil {
		return nil, err
	}

	products := make(map[int64]domain.ProductDim)
	for i, row := range rows {
		if i == 0 || isBlankRow(row) || len(row) < 4 {
			continue
		}

		productID := parseOrZero(row[0])
		if productID <= 0 {
			continue
		}

		category := strings.ToLower(strings.TrimSpace(row[1]))
		if category == "" {
			category = "unknown"
		}

		products[productID] = domain.ProductDim{
			Category:    category,
			MarginBps:   domain.Clamp(parseOrZero(row[2]), 0, 9500),
			WeightGrams: domain.Clamp(parseOrZero(row[3]), 1, 20_000),
		}
	}

	return products, nil
}

// LoadCountryDim parses the country dimension table into a lookup keyed by
// upper-cased country code. Rows with an empty code after normalization are
// skipped.
func LoadCountryDim(path string) (map[string]domain.CountryDim, error) {
	rows, err := readTable(path)
	if err != nil {
		return nil, err
	}

	countries := make(map[string]domain.CountryDim)
	for i, row := range rows {
		if i == 0 || isBlankRow(row) || len(row) < 4 {
			continue
		}

		country := strings.ToUpper(strings.TrimSpace(row[0]))
		if country == "" {
			continue
		}

		countries[country] = domain.CountryDim{
			FXToUSDPpm: domain.Clamp(parseOrZero(row[1]), 1, 2_500_000),
			RiskBps:    domain.Clamp(parseOrZero(row[2]), 1, 20_000),
			TaxBps:     domain.Clamp(parseOrZero(row[3]), 0, 5_000),
		}
	}

	return countries, nil
}
