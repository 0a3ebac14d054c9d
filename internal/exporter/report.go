// Package exporter serializes the aggregated summary into the deterministic
// tabular report.
package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"orderetl/internal/errors"
	"orderetl/pkg/contracts/domain"
)

// reportHeader is the fixed column order of the output report.
var reportHeader = []string{
	"event_date",
	"customer_tier",
	"category",
	"country",
	"time_bucket",
	"order_size_bucket",
	"order_count",
	"vip_customer_orders",
	"total_quantity",
	"total_net_usd_cents",
	"total_profit_usd_cents",
	"total_risk_adjusted_usd_cents",
	"avg_item_price_usd_cents",
	"heavy_item_orders",
}

// Row pairs an aggregate with its grouping key for ordered serialization.
type Row struct {
	Key domain.AggregateKey
	Agg domain.AggregateRecord
}

// SortedRows flattens the aggregate map into rows sorted ascending by the six
// key components in fixed lexicographic priority.
func SortedRows(aggregated map[domain.AggregateKey]domain.AggregateRecord) []Row {
	rows := make([]Row, 0, len(aggregated))
	for key, agg := range aggregated {
		rows = append(rows, Row{Key: key, Agg: agg})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Key.Less(rows[j].Key)
	})

	return rows
}

// WriteReport writes the header and one line per group to path, creating the
// parent directory if absent. The file is fully rewritten on every run. The
// average item price is derived at write time and never stored in the
// aggregate.
func WriteReport(path string, rows []Row) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.NewStorageError("failed to create report directory", err).WithContext("path", path)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create report file", err).WithContext("path", path)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(reportHeader); err != nil {
		return errors.NewStorageError("failed to write report header", err)
	}

	for _, row := range rows {
		if err := writer.Write(formatRow(row)); err != nil {
			return errors.NewStorageError("failed to write report row", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.NewStorageError("failed to flush report", err)
	}
	return nil
}

// formatRow renders one report line. Every field is a pipeline-controlled
// enumeration or integer, so no quoting is ever needed.
func formatRow(row Row) []string {
	avgItemPrice := domain.RoundDiv(row.Agg.TotalNetUSDCents, row.Agg.TotalItems)

	return []string{
		row.Key.EventDate,
		row.Key.CustomerTier,
		row.Key.Category,
		row.Key.Country,
		row.Key.TimeBucket,
		row.Key.OrderSizeBucket,
		strconv.FormatInt(row.Agg.OrderCount, 10),
		strconv.FormatInt(row.Agg.VIPCustomerOrders, 10),
		strconv.FormatInt(row.Agg.TotalQuantity, 10),
		strconv.FormatInt(row.Agg.TotalNetUSDCents, 10),
		strconv.FormatInt(row.Agg.TotalProfitUSDCents, 10),
		strconv.FormatInt(row.Agg.TotalRiskAdjustedUSDCents, 10),
		strconv.FormatInt(avgItemPrice, 10),
		strconv.FormatInt(row.Agg.HeavyItemOrders, 10),
	}
}
