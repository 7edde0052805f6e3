// Package testkit provides deterministic synthetic tables for tests.
package testkit

import (
	"fmt"
	"time"

	"datasight/domain/dataset"
)

var regions = []string{"North", "South", "East", "West"}

// NewSalesTable builds a deterministic sales-style table with a near-unique
// id column, a product name, a grouping region, two correlated metrics and a
// date column. Values are arithmetic, not random, so expectations in tests
// stay computable. Use at least ~20 rows when metric columns must not trip
// the identifier cardinality threshold.
func NewSalesTable(rows int) *dataset.Table {
	ids := make([]float64, rows)
	names := make([]string, rows)
	regionVals := make([]string, rows)
	revenue := make([]float64, rows)
	units := make([]float64, rows)
	dates := make([]time.Time, rows)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < rows; i++ {
		ids[i] = float64(i + 1)
		names[i] = fmt.Sprintf("Product %d", i+1)
		regionVals[i] = regions[i%len(regions)]
		units[i] = float64(10 + (i*7)%15)
		revenue[i] = units[i]*12.5 + float64(i%5)
		dates[i] = start.AddDate(0, 0, i)
	}

	tbl := dataset.NewTable("sales")
	mustAdd(tbl.AddNumeric("order_id", ids, nil))
	mustAdd(tbl.AddCategorical("product_name", names, nil))
	mustAdd(tbl.AddCategorical("region", regionVals, nil))
	mustAdd(tbl.AddNumeric("revenue", revenue, nil))
	mustAdd(tbl.AddNumeric("units", units, nil))
	mustAdd(tbl.AddDatetime("order_date", dates, nil))
	return tbl
}

// NewSalesTableWithNulls is a small sales table with every fifth revenue
// cell missing, for missing-data paths.
func NewSalesTableWithNulls(rows int) *dataset.Table {
	names := make([]string, rows)
	regionVals := make([]string, rows)
	revenue := make([]float64, rows)
	null := make([]bool, rows)

	for i := 0; i < rows; i++ {
		names[i] = fmt.Sprintf("Product %d", i+1)
		regionVals[i] = regions[i%len(regions)]
		revenue[i] = float64(100 + (i*11)%40)
		if i%5 == 0 {
			null[i] = true
		}
	}

	tbl := dataset.NewTable("sales_with_nulls")
	mustAdd(tbl.AddCategorical("product_name", names, nil))
	mustAdd(tbl.AddCategorical("region", regionVals, nil))
	mustAdd(tbl.AddNumeric("revenue", revenue, null))
	return tbl
}

// NewEmptyTable builds a table with columns but zero rows.
func NewEmptyTable() *dataset.Table {
	tbl := dataset.NewTable("empty")
	mustAdd(tbl.AddNumeric("value", []float64{}, nil))
	mustAdd(tbl.AddCategorical("label", []string{}, nil))
	return tbl
}

func mustAdd(err error) {
	if err != nil {
		panic(err)
	}
}
