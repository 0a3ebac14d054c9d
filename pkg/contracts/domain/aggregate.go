package domain

// AggregateKey is the six-part categorical grouping key for the summary
// report. The report is sorted ascending by its components in declaration
// order using plain string comparison.
type AggregateKey struct {
	EventDate       string `json:"event_date"`
	CustomerTier    string `json:"customer_tier"`
	Category        string `json:"category"`
	Country         string `json:"country"`
	TimeBucket      string `json:"time_bucket"`
	OrderSizeBucket string `json:"order_size_bucket"`
}

// Less orders keys lexicographically by component, in fixed priority:
// date, tier, category, country, time bucket, size bucket.
func (k AggregateKey) Less(other AggregateKey) bool {
	if k.EventDate != other.EventDate {
		return k.EventDate < other.EventDate
	}
	if k.CustomerTier != other.CustomerTier {
		return k.CustomerTier < other.CustomerTier
	}
	if k.Category != other.Category {
		return k.Category < other.Category
	}
	if k.Country != other.Country {
		return k.Country < other.Country
	}
	if k.TimeBucket != other.TimeBucket {
		return k.TimeBucket < other.TimeBucket
	}
	return k.OrderSizeBucket < other.OrderSizeBucket
}

// AggregateRecord is one summary row built by repeated merge of
// DerivedRecords sharing an AggregateKey. Every field is a running sum or
// count, so the result does not depend on visitation order.
type AggregateRecord struct {
	OrderCount                int64 `json:"order_count"`
	VIPCustomerOrders         int64 `json:"vip_customer_orders"`
	TotalQuantity             int64 `json:"total_quantity"`
	TotalNetUSDCents          int64 `json:"total_net_usd_cents"`
	TotalProfitUSDCents       int64 `json:"total_profit_usd_cents"`
	TotalRiskAdjustedUSDCents int64 `json:"total_risk_adjusted_usd_cents"`
	TotalItems                int64 `json:"total_items"`
	HeavyItemOrders           int64 `json:"heavy_item_orders"`
}

// Merge accumulates one derived record into the aggregate. vip is 1 when the
// record's customer-day spend met the VIP threshold, otherwise 0.
func (a *AggregateRecord) Merge(rec DerivedRecord, vip int64) {
	a.OrderCount++
	a.VIPCustomerOrders += vip
	a.TotalQuantity += rec.Quantity
	a.TotalNetUSDCents += rec.NetUSDCents
	a.TotalProfitUSDCents += rec.ProfitUSDCents
	a.TotalRiskAdjustedUSDCents += rec.RiskAdjustedUSDCents
	a.TotalItems += rec.Quantity
	a.HeavyItemOrders += rec.HeavyItemOrder
}
