// Package ingest loads observation tables from XLSX and CSV files.
package ingest

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"hypotest/domain/core"
	"hypotest/domain/sample"
)

// DataReader reads a tabular file into a sample.Table. The first row
// is the header; cells that do not parse as numbers become NaN and are
// filtered by the column accessors.
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a reader for the given path, inferring the
// format from the extension.
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// Read loads the file into a table.
func (r *DataReader) Read() (*sample.Table, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var (
		rows [][]string
		err  error
	)
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}

	return buildTable(filepath.Base(r.filePath), rows)
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets: %s", r.filePath)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	return rows, nil
}

// buildTable turns raw string rows into a columnar table. Header names
// are deduplicated against emptiness; short rows are padded as missing.
func buildTable(name string, rows [][]string) (*sample.Table, error) {
	if len(rows) < 2 {
		return nil, core.NewInsufficientDataError("rows", len(rows), 2)
	}

	header := rows[0]
	if len(header) == 0 {
		return nil, core.NewInsufficientDataError("columns", 0, 1)
	}

	cols := make([]sample.Column, len(header))
	for i, h := range header {
		key := strings.TrimSpace(h)
		if key == "" {
			key = fmt.Sprintf("column_%d", i+1)
		}
		cols[i] = sample.Column{
			Key:    core.VariableKey(key),
			Values: make(sample.Sample, 0, len(rows)-1),
		}
	}

	for _, row := range rows[1:] {
		for i := range cols {
			if i >= len(row) {
				cols[i].Values = append(cols[i].Values, math.NaN())
				continue
			}
			cols[i].Values = append(cols[i].Values, parseCell(row[i]))
		}
	}

	return &sample.Table{
		ID:      core.DatasetID(core.NewID()),
		Name:    name,
		Columns: cols,
		Rows:    len(rows) - 1,
	}, nil
}

// parseCell coerces a cell to a number, tolerating currency and
// thousands formatting. Anything else is missing.
func parseCell(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return math.NaN()
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSuffix(s, "%")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
