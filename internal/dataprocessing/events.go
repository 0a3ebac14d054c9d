package dataprocessing

import (
	"strings"

	"orderetl/pkg/contracts/domain"
)

// Number of columns a raw event row must carry; columns beyond these are
// ignored.
const minEventColumns = 14

// validTiers is the closed set of customer tiers; anything else normalizes to
// "unknown". This is a substitution, not a drop.
var validTiers = map[string]bool{
	"bronze":   true,
	"silver":   true,
	"gold":     true,
	"platinum": true,
}

// LoadEvents parses the raw event feed into a deduplicated mapping from event
// identifier to the winning record, along with the raw/filtered row counters.
//
// A row is dropped silently (counted in RawRows, not FilteredRows) when it
// has fewer than 14 columns, an empty event id, a status other than COMPLETE,
// a non-positive amount, quantity, customer id or product id, or an empty
// date or timestamp. Discount and shipping are clamped rather than rejected.
func LoadEvents(path string) (map[string]domain.EventRecord, domain.RowStats, error) {
	rows, err := readTable(path)
	if err != nil {
		return nil, domain.RowStats{}, err
	}

	dedup := make(map[string]domain.EventRecord)
	var stats domain.RowStats

	for i, row := range rows {
		if i == 0 || isBlankRow(row) {
			continue
		}

		stats.RawRows++
		if len(row) < minEventColumns {
			continue
		}

		eventID := strings.TrimSpace(row[0])
		if eventID == "" {
			continue
		}

		status := strings.ToUpper(strings.TrimSpace(row[10]))

		tier := strings.ToLower(strings.TrimSpace(row[12]))
		if !validTiers[tier] {
			tier = "unknown"
		}

		candidate := domain.EventRecord{
			EventVersion:  parseOrZero(row[1]),
			EventTS:       strings.TrimSpace(row[2]),
			EventDate:     strings.TrimSpace(row[3]),
			CustomerID:    parseOrZero(row[4]),
			ProductID:     parseOrZero(row[5]),
			AmountCents:   parseOrZero(row[6]),
			Quantity:      parseOrZero(row[7]),
			DiscountBps:   domain.Clamp(parseOrZero(row[8]), 0, 5_000),
			ShippingCents: domain.Clamp(parseOrZero(row[9]), 0, 25_000),
			Country:       strings.ToUpper(strings.TrimSpace(row[11])),
			CustomerTier:  tier,
		}

		if status != "COMPLETE" || candidate.AmountCents <= 0 || candidate.Quantity <= 0 {
			continue
		}
		if candidate.CustomerID <= 0 || candidate.ProductID <= 0 ||
			candidate.EventDate == "" || candidate.EventTS == "" {
			continue
		}

		stats.FilteredRows++

		if current, exists := dedup[eventID]; !exists || candidate.Supersedes(current) {
			dedup[eventID] = candidate
		}
	}

	return dedup, stats, nil
}
