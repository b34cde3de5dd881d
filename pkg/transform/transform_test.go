package transform_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/gnames/orgsdb/pkg/transform"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const editor = "123e4567-e89b-12d3-a456-426614174000"

func TestCoerce(t *testing.T) {
	tests := []struct {
		name  string
		field transform.Field
		input any
		res   any
	}{
		{"trim", transform.Field{Kind: transform.Trim}, "  Club  ", "Club"},
		{"trim blank", transform.Field{Kind: transform.Trim}, "   ", nil},
		{"trim max", transform.Field{Kind: transform.TrimMax, Max: 3},
			" abcdef ", "abc"},
		{"trim max runes", transform.Field{Kind: transform.TrimMax, Max: 2},
			"ñañ", "ña"},
		{"email", transform.Field{Kind: transform.TrimLowerMax, Max: 255},
			" Info@Club.ORG ", "info@club.org"},
		{"slug", transform.Field{Kind: transform.Slug},
			" Community Group A ", "community-group-a"},
		{"date", transform.Field{Kind: transform.Date}, "2020-01-15",
			time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"bool true text", transform.Field{Kind: transform.Bool}, "Y", true},
		{"bool false text", transform.Field{Kind: transform.Bool}, "False", false},
		{"bool zero", transform.Field{Kind: transform.Bool}, "0", false},
		{"bool native", transform.Field{Kind: transform.Bool}, false, false},
		{"uuid", transform.Field{Kind: transform.UUID}, editor,
			uuid.MustParse(editor)},
		{"json", transform.Field{Kind: transform.JSON}, `{"a": [1, 2]}`,
			json.RawMessage(`{"a":[1,2]}`)},
		{"json from value", transform.Field{Kind: transform.JSON},
			map[string]any{"a": "b"}, json.RawMessage(`{"a":"b"}`)},
		{"json list text", transform.Field{Kind: transform.JSONList},
			`["Batlow", "Tumut"]`, []string{"Batlow", "Tumut"}},
		{"json list native", transform.Field{Kind: transform.JSONList},
			[]any{"a", 2.0}, []string{"a", "2"}},
		{"int list", transform.Field{Kind: transform.IntList},
			`[1, "2", -3, "x", 4.5]`, []int64{1, 2}},
		{"int", transform.Field{Kind: transform.Int}, " 12 ", int64(12)},
		{"int from float", transform.Field{Kind: transform.Int}, 7.0, int64(7)},
		{"decimal", transform.Field{Kind: transform.Decimal}, "12.50", 12.5},
		{"enum", transform.Field{Kind: transform.Enum,
			Allowed: []string{"admin", "member"}}, " admin ", "admin"},
		{"passthrough", transform.Field{Kind: transform.Passthrough}, 42, 42},
		{"absent", transform.Field{Kind: transform.Date}, nil, nil},
		{"empty is absent", transform.Field{Kind: transform.Bool}, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.field.Coerce(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.res, res)
		})
	}
}

func TestCoerceErrors(t *testing.T) {
	tests := []struct {
		name  string
		field transform.Field
		input any
	}{
		{"bad date", transform.Field{Kind: transform.Date}, "15/01/2020"},
		{"bad uuid", transform.Field{Kind: transform.UUID}, "123"},
		{"bad json", transform.Field{Kind: transform.JSON}, "{a:"},
		{"bad list", transform.Field{Kind: transform.JSONList}, "Batlow"},
		{"bad int", transform.Field{Kind: transform.Int}, "twelve"},
		{"fractional int", transform.Field{Kind: transform.Int}, 1.5},
		{"bad decimal", transform.Field{Kind: transform.Decimal}, "$12"},
		{"enum", transform.Field{Kind: transform.Enum,
			Allowed: []string{"admin"}}, "owner"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.field.Coerce(tt.input)
			assert.Error(t, err)
		})
	}
}

// Coercing an already coerced value gives the same value.
func TestCoerceIdempotent(t *testing.T) {
	inputs := map[transform.Kind]any{
		transform.Passthrough:  "as is",
		transform.Trim:         "  text ",
		transform.TrimMax:      " long text ",
		transform.TrimLowerMax: " MiXeD@Case.Org ",
		transform.Slug:         "Charity B",
		transform.Date:         "2020-01-15",
		transform.Bool:         "yes",
		transform.UUID:         editor,
		transform.JSON:         `{ "a" : 1 }`,
		transform.JSONList:     `["x", "y"]`,
		transform.IntList:      `[1, "2", "z"]`,
		transform.Int:          "42",
		transform.Decimal:      "3.25",
		transform.Enum:         " public ",
	}

	for _, k := range transform.Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			f := transform.Field{
				Kind:    k,
				Max:     6,
				Allowed: []string{"public", "limited"},
			}
			in, ok := inputs[k]
			require.True(t, ok, "no input for kind %s", k)

			once, err := f.Coerce(in)
			require.NoError(t, err)
			require.NotNil(t, once)
			twice, err := f.Coerce(once)
			require.NoError(t, err)
			assert.Equal(t, once, twice)
		})
	}
}

func TestTransformOrganisation(t *testing.T) {
	reg := transform.Mappings()

	t.Run("full record", func(t *testing.T) {
		row, err := reg.Transform(transform.Organisations, transform.Source{
			"name":              "Community Group A",
			"established_date":  "2020-01-15",
			"description_text":  "A community organization focused on education.",
			"public_status":     true,
			"slug_value":        "community-group-a",
			"inserted_by_id":    editor,
			"last_edited_by_id": editor,
		})
		require.NoError(t, err)
		assert.Equal(t, "Community Group A", row["entity_name"])
		assert.Equal(t, "community-group-a", row["slug"])
		assert.Equal(t, true, row["is_public"])
		assert.Equal(t, uuid.MustParse(editor), row["inserted_by"])
		assert.Equal(t,
			time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC),
			row["date_established"])
	})

	t.Run("absent targets are explicit nil", func(t *testing.T) {
		row, err := reg.Transform(transform.Organisations, transform.Source{
			"name":          "Charity B",
			"public_status": false,
			"slug_value":    "charity-b",
		})
		require.NoError(t, err)
		for _, col := range []string{
			"date_established", "description", "inserted_by",
			"last_edited_by", "org_id", "created_at", "inserted_at",
			"last_edited_at",
		} {
			v, ok := row[col]
			assert.True(t, ok, col)
			assert.Nil(t, v, col)
		}
		assert.Equal(t, false, row["is_public"])
		assert.Len(t, row, 11)
	})

	t.Run("bad field does not abort record", func(t *testing.T) {
		row, err := reg.Transform(transform.Organisations, transform.Source{
			"name":             "Club",
			"established_date": "not a date",
			"slug_value":       "club",
		})
		require.NoError(t, err)
		assert.Nil(t, row["date_established"])
		assert.Equal(t, "club", row["slug"])
	})

	t.Run("unknown table", func(t *testing.T) {
		_, err := reg.Transform("members", transform.Source{})
		assert.Error(t, err)
	})
}

func TestWithDefaults(t *testing.T) {
	reg := transform.Mappings()
	tbl := reg[transform.Organisations]

	row, err := reg.Transform(transform.Organisations, transform.Source{
		"name": "Club", "slug_value": "club",
	})
	require.NoError(t, err)
	assert.Nil(t, row["is_public"])

	ins := tbl.WithDefaults(row)
	assert.Equal(t, true, ins["is_public"])
	assert.Nil(t, row["is_public"], "original row is unchanged")
}

func TestEnumFields(t *testing.T) {
	reg := transform.Mappings()

	tests := []struct {
		table string
		col   string
		input string
		res   any
	}{
		{transform.OrgMembers, "role", "viewer", "viewer"},
		{transform.OrgMembers, "role", "owner", nil},
		{transform.OrgVisibility, "visibility_type", " limited ", "limited"},
		{transform.OrgVisibility, "visibility_type", "secret", nil},
		{transform.Aliases, "alias_type", "former_name", "former_name"},
	}

	for _, tt := range tests {
		t.Run(tt.table+"/"+tt.input, func(t *testing.T) {
			row, err := reg.Transform(tt.table, transform.Source{tt.col: tt.input})
			require.NoError(t, err)
			assert.Equal(t, tt.res, row[tt.col])
		})
	}
}

func TestMappings(t *testing.T) {
	reg := transform.Mappings()
	assert.Len(t, reg, 16)

	for name, tbl := range reg {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, name, tbl.Name)
			assert.NotEmpty(t, tbl.Defaults)
			targets := tbl.Targets()
			assert.Contains(t, targets, "inserted_by")
			assert.Contains(t, targets, "last_edited_by")
			for _, d := range tbl.Defaults {
				assert.NotContains(t, targets, d)
				assert.True(t, tbl.IsDefault(d))
			}
		})
	}
}
