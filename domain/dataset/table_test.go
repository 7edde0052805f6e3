package dataset

import (
	"testing"
	"time"
)

func TestTable_RejectsMismatchedColumnLengths(t *testing.T) {
	tbl := NewTable("t")
	if err := tbl.AddNumeric("a", []float64{1, 2, 3}, nil); err != nil {
		t.Fatal(err)
	}
	if err := tbl.AddNumeric("b", []float64{1, 2}, nil); err == nil {
		t.Error("Expected an error for a column with a different row count")
	}
	if tbl.ColumnCount() != 1 {
		t.Errorf("Rejected column must not be added, have %d columns", tbl.ColumnCount())
	}
}

func TestColumn_NilNullMaskMeansNoMissing(t *testing.T) {
	tbl := NewTable("t")
	if err := tbl.AddCategorical("c", []string{"x", "y"}, nil); err != nil {
		t.Fatal(err)
	}
	col, _ := tbl.Column("c")
	if col.NullCount() != 0 {
		t.Errorf("Expected 0 nulls, got %d", col.NullCount())
	}
	if col.Len() != 2 {
		t.Errorf("Expected length 2, got %d", col.Len())
	}
}

func TestColumn_DistinctCountIgnoresNulls(t *testing.T) {
	tbl := NewTable("t")
	null := []bool{false, false, true, false}
	if err := tbl.AddNumeric("v", []float64{1, 1, 99, 2}, null); err != nil {
		t.Fatal(err)
	}
	col, _ := tbl.Column("v")
	if got := col.DistinctCount(); got != 2 {
		t.Errorf("Expected 2 distinct non-null values, got %d", got)
	}
}

func TestColumn_DisplayValue(t *testing.T) {
	tbl := NewTable("t")
	if err := tbl.AddNumeric("n", []float64{1.5}, nil); err != nil {
		t.Fatal(err)
	}
	if err := tbl.AddCategorical("s", []string{"hello"}, nil); err != nil {
		t.Fatal(err)
	}
	if err := tbl.AddDatetime("d", []time.Time{time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)}, nil); err != nil {
		t.Fatal(err)
	}

	n, _ := tbl.Column("n")
	if got := n.DisplayValue(0); got != "1.5" {
		t.Errorf("Numeric display = %q", got)
	}
	s, _ := tbl.Column("s")
	if got := s.DisplayValue(0); got != "hello" {
		t.Errorf("String display = %q", got)
	}
	d, _ := tbl.Column("d")
	if got := d.DisplayValue(0); got != "2024-03-15" {
		t.Errorf("Date display = %q", got)
	}
	if got := n.DisplayValue(5); got != "" {
		t.Errorf("Out-of-range display must be empty, got %q", got)
	}
}

func TestValueCounts_SortsByCountThenFirstSeen(t *testing.T) {
	tbl := NewTable("t")
	if err := tbl.AddCategorical("c",
		[]string{"b", "a", "b", "a", "c"}, nil); err != nil {
		t.Fatal(err)
	}
	col, _ := tbl.Column("c")

	counts := ValueCounts(col)

	want := []ValueCount{{Value: "b", Count: 2}, {Value: "a", Count: 2}, {Value: "c", Count: 1}}
	if len(counts) != len(want) {
		t.Fatalf("Expected %d entries, got %d", len(want), len(counts))
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("Entry %d: got %+v, want %+v", i, counts[i], want[i])
		}
	}
}

func TestCoerceTimes_CategoricalConversion(t *testing.T) {
	tbl := NewTable("t")
	if err := tbl.AddCategorical("d",
		[]string{"2024-01-01", "2024/01/02", ""},
		[]bool{false, false, true}); err != nil {
		t.Fatal(err)
	}
	col, _ := tbl.Column("d")

	times, null, ok := col.CoerceTimes()
	if !ok {
		t.Fatal("Expected an all-date string column to coerce")
	}
	if !null[2] {
		t.Error("Null mask must mirror missing cells")
	}
	if times[0].Format("2006-01-02") != "2024-01-01" {
		t.Errorf("First date = %v", times[0])
	}
}

func TestCoerceTimes_MixedStringsRefuse(t *testing.T) {
	tbl := NewTable("t")
	if err := tbl.AddCategorical("d", []string{"2024-01-01", "notadate"}, nil); err != nil {
		t.Fatal(err)
	}
	col, _ := tbl.Column("d")

	if _, _, ok := col.CoerceTimes(); ok {
		t.Error("A partially parsing column must not coerce")
	}
	if col.Strings[1] != "notadate" {
		t.Error("Coercion must not mutate the column")
	}
}

func TestParseTime_AcceptedLayouts(t *testing.T) {
	accepted := []string{
		"2024-01-15",
		"2024/01/15",
		"01/15/2024",
		"2024-01-15 10:30:00",
		"2024-01",
	}
	for _, s := range accepted {
		if _, ok := ParseTime(s); !ok {
			t.Errorf("Expected %q to parse", s)
		}
	}
	if _, ok := ParseTime("15th of January"); ok {
		t.Error("Free-text dates must not parse")
	}
}
