package dataprocessing

import (
	"orderetl/pkg/contracts/domain"
)

// A record counts as a VIP order when its customer's same-day cumulative net
// spend reaches this many common-currency minor units.
const vipSpendThresholdUSDCents = 50_000

// Aggregate groups the enriched records by the six-part categorical key and
// accumulates counters and sums. VIP classification reads the completed spend
// index, so every record of a qualifying (date, customer) pair receives a VIP
// increment regardless of the order records were enriched in.
func Aggregate(enr Enrichment) map[domain.AggregateKey]domain.AggregateRecord {
	aggregated := make(map[domain.AggregateKey]domain.AggregateRecord)

	for _, rec := range enr.Records {
		var vip int64
		if enr.Spend[domain.CustomerDay{EventDate: rec.EventDate, CustomerID: rec.CustomerID}] >= vipSpendThresholdUSDCents {
			vip = 1
		}

		key := domain.AggregateKey{
			EventDate:       rec.EventDate,
			CustomerTier:    rec.CustomerTier,
			Category:        rec.Category,
			Country:         rec.Country,
			TimeBucket:      rec.TimeBucket,
			OrderSizeBucket: rec.OrderSizeBucket,
		}

		agg := aggregated[key]
		agg.Merge(rec, vip)
		aggregated[key] = agg
	}

	return aggregated
}
