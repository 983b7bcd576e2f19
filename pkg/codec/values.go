package codec

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

var numericPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

const trimCutset = " \t\n\r\x00\x0B"

// IsNumeric reports whether v is a number or a string that reads as a decimal
// number. Hex, inf and nan spellings are not numeric.
func IsNumeric(v any) bool {
	_, ok := toFloat(v)
	return ok
}

// StringForm returns the textual form of a scalar value. Non-scalars (sets,
// maps) report false.
func StringForm(v any) (string, bool) {
	switch value := v.(type) {
	case nil:
		return "", true
	case string:
		return value, true
	case json.Number:
		return value.String(), true
	case bool:
		if value {
			return "1", true
		}
		return "", true
	case float64:
		return formatFloat(value), true
	case float32:
		return formatFloat(float64(value)), true
	case int:
		return strconv.Itoa(value), true
	case int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(value).Int(), 10), true
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(value).Uint(), 10), true
	case fmt.Stringer:
		return value.String(), true
	default:
		return "", false
	}
}

// StrictEqual reports whether two scalars share both dynamic type and value.
func StrictEqual(a, b any) bool {
	if !isScalar(a) || !isScalar(b) {
		return false
	}
	typ := reflect.TypeOf(a)
	if typ != reflect.TypeOf(b) {
		return false
	}
	if typ != nil && !typ.Comparable() {
		return false
	}
	return a == b
}

// EqualLoose compares a stored value with an option key. When both look
// numeric the stored value's string form must equal the key, so 1 matches
// "1" but "01" and "1.0" stay distinct keys. Otherwise only a string equal
// to the key matches.
func EqualLoose(stored any, key string) bool {
	if IsNumeric(stored) && IsNumeric(key) {
		text, _ := StringForm(stored)
		return text == key
	}
	text, ok := stored.(string)
	if !ok {
		return false
	}
	return text == key
}

// IsEmpty reports whether v carries no value: nil, "", or an empty set/map.
func IsEmpty(v any) bool {
	switch value := v.(type) {
	case nil:
		return true
	case string:
		return value == ""
	case []string:
		return len(value) == 0
	case []any:
		return len(value) == 0
	case map[string]any:
		return len(value) == 0
	default:
		return false
	}
}

// AsSet converts a stored or submitted multi-value into string keys.
func AsSet(v any) ([]string, bool) {
	switch value := v.(type) {
	case []string:
		return append([]string{}, value...), true
	case []any:
		out := make([]string, 0, len(value))
		for _, item := range value {
			text, ok := StringForm(item)
			if !ok {
				continue
			}
			out = append(out, text)
		}
		return out, true
	default:
		return nil, false
	}
}

// Trim strips surrounding whitespace from strings; other values pass through.
func Trim(v any) any {
	if text, ok := v.(string); ok {
		return strings.Trim(text, trimCutset)
	}
	return v
}

func isScalar(v any) bool {
	_, ok := StringForm(v)
	return ok
}

func toFloat(v any) (float64, bool) {
	switch value := v.(type) {
	case float64:
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return 0, false
		}
		return value, true
	case float32:
		return toFloat(float64(value))
	case int, int8, int16, int32, int64:
		return float64(reflect.ValueOf(value).Int()), true
	case uint, uint8, uint16, uint32, uint64:
		return float64(reflect.ValueOf(value).Uint()), true
	case json.Number:
		return toFloat(value.String())
	case string:
		trimmed := strings.TrimSpace(value)
		if !numericPattern.MatchString(trimmed) {
			return 0, false
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
