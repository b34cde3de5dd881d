// Package transform maps source records onto the columns of the
// organisation tables.
//
// Every table has a set of source fields, each converted to its target
// column by a named coercion (Kind), and a set of default columns that
// are left for the database to fill. A coercion failure never aborts a
// record: it is logged and the column becomes nil.
package transform

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
)

// Source is a record keyed by source field names.
type Source map[string]any

// Row is a record keyed by target column names. Nil values mean either
// absence of data or a column filled by the database.
type Row map[string]any

// Field describes how one source field becomes a target column.
type Field struct {
	// Source is the key in the Source record.
	Source string
	// Target is the column name.
	Target string
	Kind   Kind
	// Max is the length limit for TrimMax and TrimLowerMax.
	Max int
	// Allowed are the values accepted by Enum.
	Allowed []string
	// Default is used for an absent value when a new row is inserted.
	// Existing rows are never overwritten with a default.
	Default any
}

// Table is the mapping of one target table.
type Table struct {
	Name   string
	Fields []Field
	// Defaults are columns filled by the database (generated ids and
	// timestamps). They are always present in a Row with nil value.
	Defaults []string
}

// Targets returns target columns in the order of fields.
func (t Table) Targets() []string {
	res := make([]string, 0, len(t.Fields))
	for _, f := range t.Fields {
		res = append(res, f.Target)
	}
	return res
}

// IsDefault returns true if the column is filled by the database.
func (t Table) IsDefault(col string) bool {
	return slices.Contains(t.Defaults, col)
}

// WithDefaults returns a copy of the row where absent values are replaced
// by field defaults. It is used for inserts only.
func (t Table) WithDefaults(row Row) Row {
	res := maps.Clone(row)
	for _, f := range t.Fields {
		if f.Default != nil && res[f.Target] == nil {
			res[f.Target] = f.Default
		}
	}
	return res
}

// Registry maps table names to their Table mappings.
type Registry map[string]Table

// Transform converts a source record into a row of the table.
// Every target column is present in the result; absent or invalid values
// are nil. Default columns are present with nil value.
func (r Registry) Transform(table string, src Source) (Row, error) {
	t, ok := r[table]
	if !ok {
		return nil, fmt.Errorf("unknown table '%s'", table)
	}

	res := make(Row, len(t.Fields)+len(t.Defaults))
	for _, f := range t.Fields {
		v, err := f.Coerce(src[f.Source])
		if err != nil {
			slog.Warn("Cannot transform field",
				"table", table,
				"field", f.Source,
				"kind", f.Kind.String(),
				"error", err,
			)
			v = nil
		}
		// several source fields must not erase a value already set
		if v == nil {
			if _, ok := res[f.Target]; ok {
				continue
			}
		}
		res[f.Target] = v
	}

	for _, col := range t.Defaults {
		res[col] = nil
	}
	return res, nil
}

// TransformAll converts a batch of source records.
func (r Registry) TransformAll(table string, srcs []Source) ([]Row, error) {
	res := make([]Row, 0, len(srcs))
	for _, src := range srcs {
		row, err := r.Transform(table, src)
		if err != nil {
			return nil, err
		}
		res = append(res, row)
	}
	return res, nil
}
