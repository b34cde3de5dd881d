package transform

import "fmt"

// Kind is the name of a coercion applied to a source value.
type Kind int

const (
	// Passthrough keeps the value unchanged.
	Passthrough Kind = iota
	// Trim removes surrounding whitespace.
	Trim
	// TrimMax trims and truncates to Field.Max runes.
	TrimMax
	// TrimLowerMax trims, truncates to Field.Max runes and lowercases.
	TrimLowerMax
	// Slug trims, lowercases and replaces spaces with hyphens.
	Slug
	// Date parses an ISO date (2006-01-02).
	Date
	// Bool casts a value by its truthiness.
	Bool
	// UUID parses a UUID.
	UUID
	// JSON parses JSON text.
	JSON
	// JSONList accepts a list or JSON text of a list and returns strings.
	JSONList
	// IntList accepts a list or JSON text of a list and keeps only
	// non-negative integers.
	IntList
	// Int parses an integer.
	Int
	// Decimal parses a floating point number.
	Decimal
	// Enum keeps a trimmed value only if it is in Field.Allowed.
	Enum
)

var kindNames = map[Kind]string{
	Passthrough:  "passthrough",
	Trim:         "trim",
	TrimMax:      "trim_max",
	TrimLowerMax: "trim_lower_max",
	Slug:         "slug",
	Date:         "date",
	Bool:         "bool",
	UUID:         "uuid",
	JSON:         "json",
	JSONList:     "json_list",
	IntList:      "int_list",
	Int:          "int",
	Decimal:      "decimal",
	Enum:         "enum",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Kinds returns all known coercions.
func Kinds() []Kind {
	res := make([]Kind, 0, len(kindNames))
	for k := Passthrough; k <= Enum; k++ {
		res = append(res, k)
	}
	return res
}
