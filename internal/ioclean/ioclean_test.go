package ioclean_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/orgsdb/internal/ioabn"
	"github.com/gnames/orgsdb/internal/ioclean"
	"github.com/gnames/orgsdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, rows [][]string) string {
	path := filepath.Join(t.TempDir(), "abn_register_results_20250802_1336.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	w := csv.NewWriter(f)
	require.NoError(t, w.WriteAll(rows))
	return path
}

func abnRow(abn string) []string {
	res := make([]string, len(ioabn.Columns))
	res[0] = abn
	res[1] = "Y"
	res[2] = "0001-01-01"
	res[3] = "ACT"
	res[4] = "2001-07-01"
	res[5] = "0001-01-01"
	res[12] = ""
	res[13] = `{"effectiveFrom":"2001-07-01"}`
	return res
}

func readOutput(t *testing.T, path string) [][]string {
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestClean(t *testing.T) {
	in := writeInput(t, [][]string{
		ioabn.Columns,
		abnRow("11111111111"),
		abnRow("22222222222"),
		abnRow("11111111111"),
		abnRow("33333333333"),
		abnRow("22222222222"),
		abnRow("11111111111"),
	})
	out := filepath.Join(t.TempDir(), "cleaned.csv")

	rep, err := ioclean.New().Clean(in, out)
	require.NoError(t, err)
	assert.Equal(t, 6, rep.Rows, "rows are never dropped")
	assert.Equal(t,
		map[string]int{"11111111111": 3, "22222222222": 2}, rep.Duplicates)
	assert.Equal(t,
		[]string{"11111111111: 3", "22222222222: 2"},
		ioclean.Duplicates(rep.Duplicates))

	rows := readOutput(t, out)
	require.Len(t, rows, 7)
	assert.Equal(t, []string{
		"abn", "is_current", "replaced_from", "entity_status",
		"effective_from", "effective_to", "entity_type_code",
		"entity_description", "acnc_status", "acnc_status_from",
		"acnc_status_to", "record_last_updated", "gst", "dgr",
		"main_trading_names", "other_trading_names",
		"main_business_physical_address", "tax_concession_endorsements",
	}, rows[0])

	row := rows[1]
	assert.Equal(t, "11111111111", row[0])
	assert.Equal(t, "", row[2], "placeholder date removed")
	assert.Equal(t, "2001-07-01", row[4])
	assert.Equal(t, "", row[5])
	assert.Equal(t, `{"effectiveFrom":"2001-07-01"}`, row[13])
}

func TestCleanInPlace(t *testing.T) {
	in := writeInput(t, [][]string{
		ioabn.Columns,
		abnRow("11111111111"),
		abnRow("22222222222"),
	})

	rep, err := ioclean.New().Clean(in, in)
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Rows)

	rows := readOutput(t, in)
	require.Len(t, rows, 3)
	assert.Equal(t, "is_current", rows[0][1])
	assert.Equal(t, "22222222222", rows[2][0])
	assert.Equal(t, "", rows[2][2])

	entries, err := os.ReadDir(filepath.Dir(in))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left")
}

func TestCleanMissingColumns(t *testing.T) {
	in := writeInput(t, [][]string{
		{"abn", "isCurrent", "gst"},
		{"11111111111", "Y", ""},
	})
	_, err := ioclean.New().Clean(in, filepath.Join(t.TempDir(), "out.csv"))

	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.CleanMissingColumnsError, gnErr.Code)
	assert.True(t, strings.Contains(gnErr.Err.Error(), "replacedFrom"))
}

func TestRename(t *testing.T) {
	tests := []struct {
		col, res string
	}{
		{"isCurrent", "is_current"},
		{"entityDescription", "entity_description"},
		{"acnc_status", "acnc_status"},
		{"abn", "abn"},
	}
	for _, v := range tests {
		assert.Equal(t, v.res, ioclean.Rename(v.col), v.col)
	}
}

func TestCleanFailureKeepsOutput(t *testing.T) {
	in := writeInput(t, [][]string{
		{"abn", "isCurrent", "gst"},
		{"11111111111", "Y", ""},
	})
	dir := t.TempDir()
	out := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(out, []byte("old"), 0644))

	_, err := ioclean.New().Clean(in, out)
	require.Error(t, err)

	bs, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "old", string(bs))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
