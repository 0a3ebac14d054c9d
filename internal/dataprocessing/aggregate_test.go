package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderetl/pkg/contracts/domain"
)

func TestAggregate_GroupsBySixPartKey(t *testing.T) {
	shared := domain.DerivedRecord{
		EventDate: "2025-01-01", CustomerTier: "gold", Category: "books",
		Country: "US", TimeBucket: "morning", OrderSizeBucket: "single",
		Quantity: 1, NetUSDCents: 100, ProfitUSDCents: 10, RiskAdjustedUSDCents: 5,
	}
	other := shared
	other.Country = "CA"

	enr := Enrichment{
		Records: []domain.DerivedRecord{shared, shared, other},
		Spend:   map[domain.CustomerDay]int64{},
	}

	aggregated := Aggregate(enr)
	require.Len(t, aggregated, 2)

	usKey := domain.AggregateKey{
		EventDate: "2025-01-01", CustomerTier: "gold", Category: "books",
		Country: "US", TimeBucket: "morning", OrderSizeBucket: "single",
	}
	caKey := usKey
	caKey.Country = "CA"

	assert.Equal(t, int64(2), aggregated[usKey].OrderCount)
	assert.Equal(t, int64(200), aggregated[usKey].TotalNetUSDCents)
	assert.Equal(t, int64(2), aggregated[usKey].TotalItems)
	assert.Equal(t, int64(1), aggregated[caKey].OrderCount)
}

func TestAggregate_VIPClassification(t *testing.T) {
	day := domain.CustomerDay{EventDate: "2025-01-01", CustomerID: 7}

	rec := func(net int64, bucket string) domain.DerivedRecord {
		return domain.DerivedRecord{
			EventDate: "2025-01-01", CustomerID: 7, CustomerTier: "gold",
			Category: "books", Country: "US", TimeBucket: bucket,
			OrderSizeBucket: "single", Quantity: 1, NetUSDCents: net,
		}
	}

	tests := []struct {
		name       string
		spendTotal int64
		wantVIP    int64
	}{
		{"below threshold", 49_999, 0},
		{"at threshold", 50_000, 1},
		{"above threshold", 80_000, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enr := Enrichment{
				// Two records in different buckets, same customer-day.
				Records: []domain.DerivedRecord{rec(tt.spendTotal / 2, "morning"), rec(tt.spendTotal/2+tt.spendTotal%2, "evening")},
				Spend:   map[domain.CustomerDay]int64{day: tt.spendTotal},
			}

			aggregated := Aggregate(enr)
			require.Len(t, aggregated, 2)

			// VIP classification depends on the indexed customer-day total,
			// so every contributing record's bucket gets the increment.
			for key, agg := range aggregated {
				assert.Equal(t, tt.wantVIP, agg.VIPCustomerOrders, "bucket %s", key.TimeBucket)
			}
		})
	}
}

func TestAggregate_Empty(t *testing.T) {
	aggregated := Aggregate(Enrichment{Spend: map[domain.CustomerDay]int64{}})
	assert.Empty(t, aggregated)
}
