package patch

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/rutea-api/internal/domain"
)

// Values come from encoding/json decoding into map[string]any, so numbers
// arrive as float64 (or json.Number when the decoder uses UseNumber).

// Int coerces a whole JSON number within the 32-bit range.
func Int(v any) (int, error) {
	n, err := Int64(v)
	if err != nil {
		return 0, err
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, fmt.Errorf("integer %d out of range", n)
	}
	return int(n), nil
}

// Int64 coerces a whole JSON number. Fractions are rejected, not truncated.
func Int64(v any) (int64, error) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.IsNaN(n) {
			return 0, fmt.Errorf("%v is not an integer", n)
		}
		if n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, fmt.Errorf("%v out of range", n)
		}
		return int64(n), nil
	case json.Number:
		return strconv.ParseInt(n.String(), 10, 64)
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	}
	return 0, fmt.Errorf("expected an integer, got %s", typeName(v))
}

// Float64 coerces any JSON number.
func Float64(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case json.Number:
		return n.Float64()
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}
	return 0, fmt.Errorf("expected a number, got %s", typeName(v))
}

// Float32 is Float64 narrowed, rejecting values beyond float32 range.
func Float32(v any) (float32, error) {
	f, err := Float64(v)
	if err != nil {
		return 0, err
	}
	if math.Abs(f) > math.MaxFloat32 {
		return 0, fmt.Errorf("%v out of range", f)
	}
	return float32(f), nil
}

// Bool accepts only JSON booleans.
func Bool(v any) (bool, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	return false, fmt.Errorf("expected a boolean, got %s", typeName(v))
}

// String treats null as the empty string, leaving the decision to validation.
func String(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case nil:
		return "", nil
	}
	return "", fmt.Errorf("expected a string, got %s", typeName(v))
}

// NullableString maps null to nil.
func NullableString(v any) (*string, error) {
	if v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("expected a string or null, got %s", typeName(v))
	}
	return &s, nil
}

// Date parses a yyyy-MM-dd string.
func Date(v any) (domain.Date, error) {
	s, ok := v.(string)
	if !ok {
		return domain.Date{}, fmt.Errorf("expected a date string, got %s", typeName(v))
	}
	return domain.ParseDate(s)
}

// DateTime parses a yyyy-MM-ddTHH:mm:ss string.
func DateTime(v any) (domain.DateTime, error) {
	s, ok := v.(string)
	if !ok {
		return domain.DateTime{}, fmt.Errorf("expected a date-time string, got %s", typeName(v))
	}
	return domain.ParseDateTime(s)
}

// Int64Slice accepts a JSON array of integers; null is an empty list.
func Int64Slice(v any) ([]int64, error) {
	if v == nil {
		return []int64{}, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected an array, got %s", typeName(v))
	}
	out := make([]int64, 0, len(items))
	for i, item := range items {
		n, err := Int64(item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, n)
	}
	return out, nil
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, json.Number, int, int64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
