package excel

import (
	"os"
	"path/filepath"
	"testing"

	"datasight/domain/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadTable_InfersColumnKinds(t *testing.T) {
	path := writeTempCSV(t, "orders.csv",
		"order_date,region,revenue\n"+
			"2024-01-01,North,100.5\n"+
			"2024-01-02,South,\"1,200\"\n"+
			"2024-01-03,East,75\n")

	tbl, err := NewDataReader(path).ReadTable()
	require.NoError(t, err)

	assert.Equal(t, "orders", tbl.Name)
	assert.Equal(t, 3, tbl.RowCount())
	assert.Equal(t, 3, tbl.ColumnCount())

	dateCol, ok := tbl.Column("order_date")
	require.True(t, ok)
	assert.Equal(t, dataset.KindDatetime, dateCol.Kind)

	regionCol, ok := tbl.Column("region")
	require.True(t, ok)
	assert.Equal(t, dataset.KindCategorical, regionCol.Kind)

	// Thousands separators strip before numeric parsing.
	revenueCol, ok := tbl.Column("revenue")
	require.True(t, ok)
	assert.Equal(t, dataset.KindNumeric, revenueCol.Kind)
	assert.Equal(t, []float64{100.5, 1200, 75}, revenueCol.Floats)
}

func TestReadTable_EmptyCellsBecomeNulls(t *testing.T) {
	path := writeTempCSV(t, "sparse.csv",
		"a,b\n"+
			"1,x\n"+
			",y\n"+
			"3,\n")

	tbl, err := NewDataReader(path).ReadTable()
	require.NoError(t, err)

	aCol, _ := tbl.Column("a")
	assert.Equal(t, dataset.KindNumeric, aCol.Kind)
	assert.Equal(t, 1, aCol.NullCount())

	bCol, _ := tbl.Column("b")
	assert.Equal(t, 1, bCol.NullCount())
}

func TestReadTable_MixedColumnFallsBackToCategorical(t *testing.T) {
	path := writeTempCSV(t, "mixed.csv",
		"value\n"+
			"12\n"+
			"abc\n")

	tbl, err := NewDataReader(path).ReadTable()
	require.NoError(t, err)

	col, _ := tbl.Column("value")
	assert.Equal(t, dataset.KindCategorical, col.Kind)
}

func TestReadTable_BlankHeadersGetPlaceholders(t *testing.T) {
	path := writeTempCSV(t, "headers.csv",
		"a,,c\n"+
			"1,2,3\n")

	tbl, err := NewDataReader(path).ReadTable()
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "column_2", "c"}, tbl.ColumnNames())
}

func TestReadTable_HeaderOnlyIsAnError(t *testing.T) {
	path := writeTempCSV(t, "empty.csv", "a,b,c\n")

	_, err := NewDataReader(path).ReadTable()
	assert.Error(t, err)
}

func TestReadTable_MissingFileIsAnError(t *testing.T) {
	_, err := NewDataReader("/nonexistent/file.csv").ReadTable()
	assert.Error(t, err)
}

func TestNewDataReader_SniffsFileType(t *testing.T) {
	assert.Equal(t, "csv", NewDataReader("data.CSV").fileType)
	assert.Equal(t, "xlsx", NewDataReader("data.xlsx").fileType)
	assert.Equal(t, "xlsx", NewDataReader("data.unknown").fileType)
}
