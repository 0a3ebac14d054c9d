package domain

// EventRecord represents one logical business event after column parsing and
// normalization. The external event identifier is not stored here; it is only
// used as the deduplication key by the loader.
type EventRecord struct {
	EventVersion  int64  `json:"event_version"`
	EventTS       string `json:"event_ts"`
	EventDate     string `json:"event_date"`
	CustomerID    int64  `json:"customer_id"`
	ProductID     int64  `json:"product_id"`
	AmountCents   int64  `json:"amount_cents"`
	Quantity      int64  `json:"quantity"`
	DiscountBps   int64  `json:"discount_bps"`
	ShippingCents int64  `json:"shipping_cents"`
	Country       string `json:"country"`
	CustomerTier  string `json:"customer_tier"`
}

// Supersedes reports whether the record should replace current for the same
// event identifier: strictly greater version wins, equal versions fall back to
// the lexicographically greater raw timestamp string. The timestamp comparison
// is a plain string comparison over the raw text, not a parsed-time
// comparison.
func (e EventRecord) Supersedes(current EventRecord) bool {
	if e.EventVersion != current.EventVersion {
		return e.EventVersion > current.EventVersion
	}
	return e.EventTS > current.EventTS
}

// DerivedRecord is one enriched event produced by the enricher and consumed
// only by the aggregator. It is never mutated after creation.
type DerivedRecord struct {
	EventDate            string `json:"event_date"`
	CustomerID           int64  `json:"customer_id"`
	CustomerTier         string `json:"customer_tier"`
	Category             string `json:"category"`
	Country              string `json:"country"`
	TimeBucket           string `json:"time_bucket"`
	OrderSizeBucket      string `json:"order_size_bucket"`
	Quantity             int64  `json:"quantity"`
	NetUSDCents          int64  `json:"net_usd_cents"`
	ProfitUSDCents       int64  `json:"profit_usd_cents"`
	RiskAdjustedUSDCents int64  `json:"risk_adjusted_usd_cents"`
	HeavyItemOrder       int64  `json:"heavy_item_order"`
}

// CustomerDay identifies a customer's activity on a single event date. It is
// the key of the spend index used for VIP classification.
type CustomerDay struct {
	EventDate  string
	CustomerID int64
}

// RowStats carries the loader counters reported at the end of a run. RawRows
// counts every non-header, non-blank row regardless of validity; FilteredRows
// counts rows that passed validation.
type RowStats struct {
	RawRows      int64 `json:"raw_rows"`
	FilteredRows int64 `json:"filtered_rows"`
}
