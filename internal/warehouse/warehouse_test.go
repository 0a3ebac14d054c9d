package warehouse

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReport = "event_date,customer_tier,category,country,time_bucket,order_size_bucket," +
	"order_count,vip_customer_orders,total_quantity,total_net_usd_cents," +
	"total_profit_usd_cents,total_risk_adjusted_usd_cents,avg_item_price_usd_cents,heavy_item_orders\n" +
	"2025-01-01,gold,books,US,morning,single,2,1,3,4500,900,450,1500,0\n" +
	"2025-01-02,silver,toys,CA,evening,bulk,1,0,5,9000,1800,900,1800,1\n"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeReport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoader_Load(t *testing.T) {
	input := writeReport(t, sampleReport)
	dbPath := filepath.Join(t.TempDir(), "warehouse", "etl.db")

	inserted, err := NewLoader(testLogger()).Load(context.Background(), input, dbPath, "daily_summary")
	require.NoError(t, err)
	assert.Equal(t, int64(2), inserted)

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()

	var count int64
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM daily_summary").Scan(&count))
	assert.Equal(t, int64(2), count)

	var tier string
	var net int64
	require.NoError(t, db.QueryRow(
		"SELECT customer_tier, total_net_usd_cents FROM daily_summary WHERE event_date = '2025-01-01'",
	).Scan(&tier, &net))
	assert.Equal(t, "gold", tier)
	assert.Equal(t, int64(4500), net)
}

func TestLoader_Load_ReplacesExistingTable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "etl.db")
	ctx := context.Background()
	loader := NewLoader(testLogger())

	_, err := loader.Load(ctx, writeReport(t, sampleReport), dbPath, "daily_summary")
	require.NoError(t, err)

	// Reload with a single-row report: the table is dropped and recreated,
	// not appended to.
	oneRow := sampleReport[:len(sampleReport)-len("2025-01-02,silver,toys,CA,evening,bulk,1,0,5,9000,1800,900,1800,1\n")]
	inserted, err := loader.Load(ctx, writeReport(t, oneRow), dbPath, "daily_summary")
	require.NoError(t, err)
	assert.Equal(t, int64(1), inserted)

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()

	var count int64
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM daily_summary").Scan(&count))
	assert.Equal(t, int64(1), count)
}

func TestLoader_Load_InvalidTableName(t *testing.T) {
	loader := NewLoader(testLogger())
	ctx := context.Background()

	for _, table := range []string{"", "1table", "summary;drop", "a-b", "x y"} {
		_, err := loader.Load(ctx, "ignored.csv", "ignored.db", table)
		assert.Error(t, err, "table %q", table)
	}
}

func TestLoader_Load_MissingReport(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "etl.db")
	_, err := NewLoader(testLogger()).Load(context.Background(), "does/not/exist.csv", dbPath, "daily_summary")
	assert.Error(t, err)
}

func TestLoader_Load_HeaderOnly(t *testing.T) {
	input := writeReport(t, "event_date,customer_tier,category,country,time_bucket,order_size_bucket,"+
		"order_count,vip_customer_orders,total_quantity,total_net_usd_cents,"+
		"total_profit_usd_cents,total_risk_adjusted_usd_cents,avg_item_price_usd_cents,heavy_item_orders\n")
	dbPath := filepath.Join(t.TempDir(), "etl.db")

	inserted, err := NewLoader(testLogger()).Load(context.Background(), input, dbPath, "daily_summary")
	require.NoError(t, err)
	assert.Equal(t, int64(0), inserted)
}
