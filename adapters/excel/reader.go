// Package excel loads Excel and CSV files into analysis tables. It is the
// file-loading collaborator: it guarantees every table it hands out has
// string-typed column names, and it never returns an empty table.
package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"datasight/domain/dataset"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// ReadTable reads the file into a typed analysis table. The table name is
// the file's base name without extension.
func (r *DataReader) ReadTable() (*dataset.Table, error) {
	log.Printf("[DataReader] Reading %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var rows [][]string
	var err error
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

	if len(rows) < 2 {
		return nil, fmt.Errorf("file must have at least a header row and one data row")
	}

	name := strings.TrimSuffix(filepath.Base(r.filePath), filepath.Ext(r.filePath))
	return buildTable(name, rows)
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	start := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	// Prefer Sheet1 like most exports, otherwise the first sheet.
	sheet := "Sheet1"
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets")
	}
	found := false
	for _, s := range sheets {
		if s == sheet {
			found = true
			break
		}
	}
	if !found {
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	log.Printf("[DataReader] Sheet %s read in %.2fms (%d rows)", sheet,
		float64(time.Since(start).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV rows: %w", err)
	}
	return rows, nil
}

// buildTable infers a column kind from the raw cells and assembles the
// typed table. A column is numeric when every non-empty cell parses as a
// number, datetime when every non-empty cell parses as a date, otherwise
// categorical. Empty cells become nulls.
func buildTable(name string, rows [][]string) (*dataset.Table, error) {
	headers := rows[0]
	dataRows := rows[1:]

	tbl := dataset.NewTable(name)
	for colIdx, header := range headers {
		header = strings.TrimSpace(header)
		if header == "" {
			header = fmt.Sprintf("column_%d", colIdx+1)
		}

		cells := make([]string, len(dataRows))
		null := make([]bool, len(dataRows))
		for rowIdx, row := range dataRows {
			if colIdx >= len(row) || strings.TrimSpace(row[colIdx]) == "" {
				null[rowIdx] = true
				continue
			}
			cells[rowIdx] = strings.TrimSpace(row[colIdx])
		}

		if err := addTypedColumn(tbl, header, cells, null); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}

func addTypedColumn(tbl *dataset.Table, header string, cells []string, null []bool) error {
	allNumeric := false
	allDates := false
	sawValue := false

	floats := make([]float64, len(cells))
	times := make([]time.Time, len(cells))
	numericOK := true
	dateOK := true
	for i, cell := range cells {
		if null[i] {
			continue
		}
		sawValue = true
		if numericOK {
			v, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
			if err != nil {
				numericOK = false
			} else {
				floats[i] = v
			}
		}
		if dateOK {
			ts, ok := dataset.ParseTime(cell)
			if !ok {
				dateOK = false
			} else {
				times[i] = ts
			}
		}
	}
	allNumeric = sawValue && numericOK
	allDates = sawValue && dateOK

	switch {
	case allNumeric:
		return tbl.AddNumeric(header, floats, null)
	case allDates:
		return tbl.AddDatetime(header, times, null)
	default:
		return tbl.AddCategorical(header, cells, null)
	}
}
