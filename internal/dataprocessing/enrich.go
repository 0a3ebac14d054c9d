package dataprocessing

import (
	"orderetl/pkg/contracts/domain"
)

// An order is flagged heavy when weight_grams * quantity reaches this many
// grams.
const heavyItemThresholdGrams = 5_000

// Enrichment is the output of the enrichment stage: one derived record per
// surviving event plus the completed customer-day spend index. The index is
// read-only once Enrich returns; the aggregator uses it for VIP
// classification.
type Enrichment struct {
	Records []domain.DerivedRecord
	Spend   map[domain.CustomerDay]int64
}

// Enrich joins each surviving event against the dimension lookups, computes
// the derived financial metrics and categorical buckets, and accumulates the
// per-customer-per-day net spend. Missing dimension keys fall back to the
// domain fallback structs and never fail the run. Enumeration order of the
// dedup map does not matter: spend accumulation is commutative and each event
// yields exactly one record.
func Enrich(
	events map[string]domain.EventRecord,
	products map[int64]domain.ProductDim,
	countries map[string]domain.CountryDim,
) Enrichment {
	enr := Enrichment{
		Records: make([]domain.DerivedRecord, 0, len(events)),
		Spend:   make(map[domain.CustomerDay]int64),
	}

	for _, event := range events {
		product, ok := products[event.ProductID]
		if !ok {
			product = domain.FallbackProduct()
		}
		country, ok := countries[event.Country]
		if !ok {
			country = domain.FallbackCountry()
		}

		rec := derive(event, product, country)

		enr.Spend[domain.CustomerDay{EventDate: rec.EventDate, CustomerID: rec.CustomerID}] += rec.NetUSDCents
		enr.Records = append(enr.Records, rec)
	}

	return enr
}

// derive computes one DerivedRecord using fixed-point integer arithmetic.
// Every division point goes through domain.RoundDiv.
func derive(event domain.EventRecord, product domain.ProductDim, country domain.CountryDim) domain.DerivedRecord {
	gross := event.AmountCents*event.Quantity + event.ShippingCents
	discount := domain.RoundDiv(gross*event.DiscountBps, 10_000)
	taxable := gross - discount
	if taxable < 0 {
		taxable = 0
	}
	tax := domain.RoundDiv(taxable*country.TaxBps, 10_000)
	netLocal := taxable + tax

	netUSD := domain.RoundDiv(netLocal*country.FXToUSDPpm, 1_000_000)
	costUSD := domain.RoundDiv(netUSD*(10_000-product.MarginBps), 10_000)
	profitUSD := netUSD - costUSD
	riskAdjustedUSD := domain.RoundDiv(netUSD*country.RiskBps, 10_000)

	var heavy int64
	if product.WeightGrams*event.Quantity >= heavyItemThresholdGrams {
		heavy = 1
	}

	return domain.DerivedRecord{
		EventDate:            event.EventDate,
		CustomerID:           event.CustomerID,
		CustomerTier:         event.CustomerTier,
		Category:             product.Category,
		Country:              event.Country,
		TimeBucket:           timeBucketFromHour(parseEventHour(event.EventTS)),
		OrderSizeBucket:      orderSizeBucket(event.Quantity),
		Quantity:             event.Quantity,
		NetUSDCents:          netUSD,
		ProfitUSDCents:       profitUSD,
		RiskAdjustedUSDCents: riskAdjustedUSD,
		HeavyItemOrder:       heavy,
	}
}

// parseEventHour extracts the hour from a timestamp of the shape
// YYYY-MM-DDTHH:MM:SS. A string too short to carry an hour, or one without
// the 'T' separator at position 10, yields -1. The two hour characters parse
// permissively; values outside [0,23] yield -1.
func parseEventHour(eventTS string) int64 {
	if len(eventTS) < 13 {
		return -1
	}
	if eventTS[10] != 'T' {
		return -1
	}

	hour := parseOrZero(eventTS[11:13])
	if hour < 0 || hour > 23 {
		return -1
	}
	return hour
}

func timeBucketFromHour(hour int64) string {
	switch {
	case hour >= 0 && hour < 6:
		return "night"
	case hour >= 6 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 18:
		return "afternoon"
	case hour >= 18 && hour < 24:
		return "evening"
	default:
		return "unknown"
	}
}

func orderSizeBucket(quantity int64) string {
	switch {
	case quantity <= 1:
		return "single"
	case quantity <= 3:
		return "small_multi"
	default:
		return "bulk"
	}
}
