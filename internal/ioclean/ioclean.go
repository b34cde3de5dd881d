// Package ioclean prepares ABN register CSV files for loading.
package ioclean

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/orgsdb/internal/ioabn"
	"github.com/gnames/orgsdb/internal/iofs"
	"github.com/gnames/orgsdb/pkg/lifecycle"
)

// NullDate is the placeholder the ABN service uses for absent dates.
const NullDate = "0001-01-01"

var dateColumns = []string{
	"replacedFrom",
	"effectiveFrom",
	"effectiveTo",
	"acnc_status_from",
	"acnc_status_to",
	"record_last_updated",
}

// snake renames camelCase columns, the rest keep their names.
var snake = map[string]string{
	"isCurrent":         "is_current",
	"replacedFrom":      "replaced_from",
	"entityStatus":      "entity_status",
	"effectiveFrom":     "effective_from",
	"effectiveTo":       "effective_to",
	"entityTypeCode":    "entity_type_code",
	"entityDescription": "entity_description",
}

type ioclean struct{}

// New creates a Cleaner.
func New() lifecycle.Cleaner {
	return ioclean{}
}

// Clean copies the input to the output with placeholder dates and empty
// JSON values removed and columns renamed to snake_case. Rows are never
// dropped, duplicate ABNs are only reported.
func (ioclean) Clean(input, output string) (lifecycle.CleanReport, error) {
	var res lifecycle.CleanReport

	in, err := os.Open(input)
	if err != nil {
		return res, iofs.ReadFileError(input, err)
	}
	defer in.Close()

	// the output may be the input itself, it is replaced only after
	// the whole input is read
	out, err := os.CreateTemp(filepath.Dir(output), ".orgsdb-clean-*.csv")
	if err != nil {
		return res, iofs.WriteFileError(output, err)
	}
	defer os.Remove(out.Name())
	defer out.Close()

	res, err = clean(input, in, out)
	if err != nil {
		return res, err
	}
	if err = out.Chmod(0644); err != nil {
		return res, iofs.WriteFileError(output, err)
	}
	if err = out.Close(); err != nil {
		return res, iofs.WriteFileError(output, err)
	}
	if err = os.Rename(out.Name(), output); err != nil {
		return res, iofs.WriteFileError(output, err)
	}
	report(res)
	return res, nil
}

func clean(name string, r io.Reader, w io.Writer) (lifecycle.CleanReport, error) {
	res := lifecycle.CleanReport{Duplicates: make(map[string]int)}
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return res, iofs.ReadFileError(name, err)
	}

	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.TrimSpace(col)] = i
	}
	var missing []string
	for _, col := range ioabn.Columns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return res, MissingColumnsError(name, missing)
	}

	blank := make(map[int]string)
	for _, col := range dateColumns {
		blank[idx[col]] = NullDate
	}
	for _, col := range ioabn.JSONColumns {
		blank[idx[col]] = ""
	}

	cw := csv.NewWriter(w)
	outHeader := make([]string, len(header))
	for i, col := range header {
		outHeader[i] = Rename(strings.TrimSpace(col))
	}
	if err = cw.Write(outHeader); err != nil {
		return res, iofs.WriteFileError(name, err)
	}

	counts := make(map[string]int)
	abnIdx := idx["abn"]
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, iofs.ReadFileError(name, err)
		}

		for i, v := range row {
			if ph, ok := blank[i]; ok && strings.TrimSpace(v) == ph {
				row[i] = ""
			}
		}
		if abnIdx < len(row) {
			counts[strings.TrimSpace(row[abnIdx])]++
		}
		if err = cw.Write(row); err != nil {
			return res, iofs.WriteFileError(name, err)
		}
		res.Rows++
	}
	cw.Flush()
	if err = cw.Error(); err != nil {
		return res, iofs.WriteFileError(name, err)
	}

	for abn, n := range counts {
		if n > 1 {
			res.Duplicates[abn] = n
		}
	}
	return res, nil
}

// Rename returns the snake_case name of a column.
func Rename(col string) string {
	if res, ok := snake[col]; ok {
		return res
	}
	return col
}

// Duplicates formats duplicate counts as "abn: count" sorted by ABN.
func Duplicates(dups map[string]int) []string {
	res := make([]string, 0, len(dups))
	for _, abn := range slices.Sorted(maps.Keys(dups)) {
		res = append(res, fmt.Sprintf("%s: %d", abn, dups[abn]))
	}
	return res
}

func report(r lifecycle.CleanReport) {
	dups := Duplicates(r.Duplicates)
	slog.Info("ABN register file cleaned",
		"rows", r.Rows,
		"duplicates", len(dups),
	)
	gn.Info("Found <em>%d</em> duplicate abn values:", len(dups))
	if len(dups) > 0 {
		gn.Info("%s", strings.Join(dups, ", "))
	}
}
