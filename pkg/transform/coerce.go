package transform

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the layout of dates accepted and produced by Date.
const DateLayout = "2006-01-02"

var (
	// ErrType is returned when a value of unsupported type is given.
	ErrType = errors.New("unsupported value type")
	// ErrEnum is returned when a value is not one of allowed values.
	ErrEnum = errors.New("value is not allowed")
)

// falsy are the textual values that cast to false.
var falsy = []string{"0", "false", "no", "n", "f", "off"}

// Coerce converts a value according to the field's Kind.
//
// A nil value and an empty string are treated as absent and give nil
// without an error. Every Kind accepts its own output, so applying Coerce
// twice gives the same result as applying it once.
func (f Field) Coerce(v any) (any, error) {
	if isAbsent(v) {
		return nil, nil
	}

	switch f.Kind {
	case Passthrough:
		return v, nil
	case Trim:
		return trimmed(v, 0, false)
	case TrimMax:
		return trimmed(v, f.Max, false)
	case TrimLowerMax:
		return trimmed(v, f.Max, true)
	case Slug:
		return toSlug(v)
	case Date:
		return toDate(v)
	case Bool:
		return toBool(v)
	case UUID:
		return toUUID(v)
	case JSON:
		return toJSON(v)
	case JSONList:
		return toStringList(v)
	case IntList:
		return toIntList(v)
	case Int:
		return toInt(v)
	case Decimal:
		return toDecimal(v)
	case Enum:
		return toEnum(v, f.Allowed)
	}
	return nil, fmt.Errorf("unknown coercion %s", f.Kind)
}

func isAbsent(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	}
	return false
}

func text(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case []byte:
		return string(t), nil
	case fmt.Stringer:
		return t.String(), nil
	case bool:
		return strconv.FormatBool(t), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	}
	return "", fmt.Errorf("%w: %T", ErrType, v)
}

func trimmed(v any, limit int, lower bool) (any, error) {
	s, err := text(v)
	if err != nil {
		return nil, err
	}
	s = strings.TrimSpace(s)
	if limit > 0 {
		rs := []rune(s)
		if len(rs) > limit {
			s = string(rs[:limit])
		}
	}
	if lower {
		s = strings.ToLower(s)
	}
	if s == "" {
		return nil, nil
	}
	return s, nil
}

func toSlug(v any) (any, error) {
	s, err := text(v)
	if err != nil {
		return nil, err
	}
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, " ", "-"), nil
}

func toDate(v any) (any, error) {
	if t, ok := v.(time.Time); ok {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	s, err := text(v)
	if err != nil {
		return nil, err
	}
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

func toBool(v any) (any, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case float64:
		return t != 0, nil
	case int:
		return t != 0, nil
	case int64:
		return t != 0, nil
	}
	s, err := text(v)
	if err != nil {
		return nil, err
	}
	s = strings.ToLower(strings.TrimSpace(s))
	return !slices.Contains(falsy, s), nil
}

func toUUID(v any) (any, error) {
	switch t := v.(type) {
	case uuid.UUID:
		return t, nil
	case [16]byte:
		return uuid.UUID(t), nil
	}
	s, err := text(v)
	if err != nil {
		return nil, err
	}
	return uuid.Parse(strings.TrimSpace(s))
}

func toJSON(v any) (any, error) {
	var raw []byte
	switch t := v.(type) {
	case json.RawMessage:
		raw = t
	case string:
		raw = []byte(t)
	case []byte:
		raw = t
	default:
		bs, err := json.Marshal(t)
		if err != nil {
			return nil, err
		}
		return json.RawMessage(bs), nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, err
	}
	return json.RawMessage(buf.Bytes()), nil
}

func listItems(v any) ([]any, error) {
	switch t := v.(type) {
	case []any:
		return t, nil
	case []string:
		res := make([]any, len(t))
		for i := range t {
			res[i] = t[i]
		}
		return res, nil
	case []int64:
		res := make([]any, len(t))
		for i := range t {
			res[i] = t[i]
		}
		return res, nil
	}
	s, err := text(v)
	if err != nil {
		return nil, err
	}
	var res []any
	if err = json.Unmarshal([]byte(s), &res); err != nil {
		return nil, err
	}
	return res, nil
}

func toStringList(v any) (any, error) {
	if t, ok := v.([]string); ok {
		return t, nil
	}
	items, err := listItems(v)
	if err != nil {
		return nil, err
	}
	res := make([]string, 0, len(items))
	for _, item := range items {
		s, err := text(item)
		if err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, nil
}

func toIntList(v any) (any, error) {
	if t, ok := v.([]int64); ok {
		return t, nil
	}
	items, err := listItems(v)
	if err != nil {
		return nil, err
	}
	res := make([]int64, 0, len(items))
	for _, item := range items {
		s, err := text(item)
		if err != nil || !isDigits(s) {
			continue
		}
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			continue
		}
		res = append(res, i)
	}
	return res, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func toInt(v any) (any, error) {
	switch t := v.(type) {
	case int64:
		return t, nil
	case int:
		return int64(t), nil
	case float64:
		if t != float64(int64(t)) {
			return nil, fmt.Errorf("%v is not an integer", t)
		}
		return int64(t), nil
	}
	s, err := text(v)
	if err != nil {
		return nil, err
	}
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

func toDecimal(v any) (any, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case int64:
		return float64(t), nil
	case int:
		return float64(t), nil
	}
	s, err := text(v)
	if err != nil {
		return nil, err
	}
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func toEnum(v any, allowed []string) (any, error) {
	s, err := text(v)
	if err != nil {
		return nil, err
	}
	s = strings.TrimSpace(s)
	if !slices.Contains(allowed, s) {
		return nil, fmt.Errorf("%w: '%s' (allowed: %s)",
			ErrEnum, s, strings.Join(allowed, ", "))
	}
	return s, nil
}
