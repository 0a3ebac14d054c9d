// Package warehouse loads the finished summary report into a SQLite table
// for downstream querying.
package warehouse

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"

	"orderetl/internal/errors"
)

// insertBatchSize is the progress reporting interval during bulk insert.
const insertBatchSize = 10_000

var tableNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// reportColumns is the report's column order; the first six are the grouping
// key, the rest are integer measures.
var reportColumns = []string{
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

const keyColumns = 6

// Loader loads report CSVs into SQLite.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a warehouse loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load drops and recreates table in the SQLite database at dbPath, then
// inserts every data row of the report at inputPath. It returns the number of
// rows inserted. Integer cells parse permissively; unparseable text loads as
// zero.
func (l *Loader) Load(ctx context.Context, inputPath, dbPath, table string) (int64, error) {
	if !tableNameRe.MatchString(table) {
		return 0, errors.NewValidationError(fmt.Sprintf("invalid table name: %s", table))
	}

	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return 0, errors.NewStorageError("failed to create database directory", err).WithContext("path", dbPath)
		}
	}

	file, err := os.Open(inputPath)
	if err != nil {
		return 0, errors.NewStorageError("failed to open report", err).WithContext("path", inputPath)
	}
	defer file.Close()

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return 0, errors.NewStorageError("failed to open database", err).WithContext("path", dbPath)
	}
	defer db.Close()

	if err := recreateTable(ctx, db, table); err != nil {
		return 0, err
	}

	inserted, err := l.insertRows(ctx, db, table, file)
	if err != nil {
		return 0, err
	}

	l.logger.InfoContext(ctx, "report loaded into warehouse",
		slog.String("table", table),
		slog.Int64("rows", inserted),
		slog.String("db", dbPath))

	return inserted, nil
}

func recreateTable(ctx context.Context, db *sql.DB, table string) error {
	if _, err := db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
		return errors.NewStorageError("failed to drop table", err).WithContext("table", table)
	}

	var cols []string
	for i, col := range reportColumns {
		typ := "INTEGER"
		if i < keyColumns {
			typ = "TEXT"
		}
		cols = append(cols, fmt.Sprintf("%s %s NOT NULL", col, typ))
	}

	create := fmt.Sprintf("CREATE TABLE %s (%s)", table, strings.Join(cols, ", "))
	if _, err := db.ExecContext(ctx, create); err != nil {
		return errors.NewStorageError("failed to create table", err).WithContext("table", table)
	}
	return nil
}

func (l *Loader) insertRows(ctx context.Context, db *sql.DB, table string, r io.Reader) (int64, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	// Skip the header.
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return 0, nil
		}
		return 0, errors.NewParsingError("failed to read report header", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.NewStorageError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(reportColumns)), ", ")
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(reportColumns, ", "), placeholders)

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return 0, errors.NewStorageError("failed to prepare insert", err)
	}
	defer stmt.Close()

	var inserted int64
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, errors.NewParsingError("failed to read report row", err)
		}

		args := make([]interface{}, len(reportColumns))
		for i := range reportColumns {
			var cell string
			if i < len(row) {
				cell = strings.TrimSpace(row[i])
			}
			if i < keyColumns {
				args[i] = cell
			} else {
				n, _ := strconv.ParseInt(cell, 10, 64)
				args[i] = n
			}
		}

		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, errors.NewStorageError("failed to insert row", err).WithContext("row", inserted+1)
		}

		inserted++
		if inserted%insertBatchSize == 0 {
			l.logger.DebugContext(ctx, "insert progress", slog.Int64("rows", inserted))
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.NewStorageError("failed to commit transaction", err)
	}
	return inserted, nil
}
