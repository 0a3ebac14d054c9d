package domain

// ProductDim holds the product reference attributes joined against events.
// Values are immutable once loaded; numeric fields arrive pre-clamped by the
// loader so downstream arithmetic always receives bounded inputs.
type ProductDim struct {
	Category    string `json:"category"`
	MarginBps   int64  `json:"margin_bps"`
	WeightGrams int64  `json:"weight_grams"`
}

// CountryDim holds the country reference attributes joined against events,
// keyed by upper-cased country code.
type CountryDim struct {
	FXToUSDPpm int64 `json:"fx_to_usd_ppm"`
	RiskBps    int64 `json:"risk_bps"`
	TaxBps     int64 `json:"tax_bps"`
}

// FallbackProduct is the dimension applied when an event references a product
// id absent from the product table. Joins never fail on a missing key.
func FallbackProduct() ProductDim {
	return ProductDim{Category: "unknown", MarginBps: 2500, WeightGrams: 500}
}

// FallbackCountry is the dimension applied when an event references a country
// code absent from the country table.
func FallbackCountry() CountryDim {
	return CountryDim{FXToUSDPpm: 1_000_000, RiskBps: 10_000, TaxBps: 0}
}
