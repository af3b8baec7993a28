// Package model defines the core domain models used throughout the application.
package model

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// RawRecord is one row exactly as the backend returned it.
type RawRecord map[string]any

// Record is a normalized row of transaction, agent, or account data.
// Screens interpret specific fields; the core never assumes a fixed schema.
type Record map[string]any

// KeyFunc derives the identity key of a record.
type KeyFunc func(Record) string

// KeyFields returns a KeyFunc joining the text of the named fields with "|".
// A single field yields that field's text unchanged.
func KeyFields(fields ...string) KeyFunc {
	return func(r Record) string {
		if len(fields) == 1 {
			return r.Text(fields[0])
		}
		parts := make([]string, len(fields))
		for i, f := range fields {
			parts[i] = r.Text(f)
		}
		return strings.Join(parts, "|")
	}
}

// Get returns the raw value of a field, or nil when absent.
func (r Record) Get(field string) any {
	if r == nil {
		return nil
	}
	return r[field]
}

// Text returns the field coerced to a display string. Absent and nil values are "".
func (r Record) Text(field string) string {
	return Stringify(r.Get(field))
}

// Number returns the field as a number for aggregation. Values that cannot be
// parsed count as 0.
func (r Record) Number(field string) float64 {
	n, ok := ToNumber(r.Get(field))
	if !ok {
		return 0
	}
	return n
}

// Stringify converts a field value to the string form used for display and
// filter matching.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return formatFloat(val)
	case float32:
		return formatFloat(float64(val))
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// ToNumber coerces a value the way the backend's web client did with Number():
// surrounding whitespace is ignored, an empty string is zero and strings may
// be plain decimals or 0x, 0o and 0b integers. Digit separators, NaN and
// values that are not finite are rejected.
func ToNumber(v any) (float64, bool) {
	switch val := v.(type) {
	case nil:
		return 0, false
	case float64:
		return finite(val)
	case float32:
		return finite(float64(val))
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case json.Number:
		return parseNumber(val.String())
	case bool:
		if val {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0, true
		}
		return parseNumber(s)
	default:
		return 0, false
	}
}

var decimalLiteral = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

var radixPrefixes = map[string]int{"0x": 16, "0o": 8, "0b": 2}

func parseNumber(s string) (float64, bool) {
	if len(s) > 2 {
		if base, ok := radixPrefixes[strings.ToLower(s[:2])]; ok {
			n, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return 0, false
			}
			return float64(n), true
		}
	}
	if !decimalLiteral.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return finite(f)
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// IsNumeric reports whether v holds a Go numeric type.
func IsNumeric(v any) bool {
	switch v.(type) {
	case float64, float32, int, int64, json.Number:
		return true
	}
	return false
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
