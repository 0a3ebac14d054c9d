package dataprocessing

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"orderetl/internal/errors"
)

// parseOrZero parses a single integer cell permissively: surrounding
// whitespace is ignored and unparseable text yields zero. Callers clamp the
// result to their domain range.
func parseOrZero(value string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// readTable reads a whole tabular resource into rows of cells. CSV is the
// primary format; .xlsx workbooks are accepted for dimension tables since
// those arrive from the same finance workbooks the rest of the tooling
// consumes. The first row is the header and is returned as-is; callers skip
// it.
func readTable(path string) ([][]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readWorkbook(path)
	}
	return readCSV(path)
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewStorageError("failed to open table", err).WithContext("path", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewParsingError("failed to read table", err).WithContext("path", path)
	}
	return rows, nil
}

func readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewStorageError("failed to open workbook", err).WithContext("path", path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewParsingError("workbook has no sheets", nil).WithContext("path", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.NewParsingError("failed to read workbook sheet", err).WithContext("path", path)
	}
	return rows, nil
}

// isBlankRow reports whether the row came from a blank or whitespace-only
// line: no cells, or a single cell that trims to empty. A row of empty
// cells separated by commas is not blank; it reaches the loaders' row rules
// and their counters.
func isBlankRow(row []string) bool {
	if len(row) == 0 {
		return true
	}
	return len(row) == 1 && strings.TrimSpace(row[0]) == ""
}
