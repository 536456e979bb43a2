package gauge

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Datum is one category of a segment gauge.
type Datum struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ExtractError reports a record that does not fit the datum schema.
type ExtractError struct {
	Index  int
	Key    string
	Reason string
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("record %d: key %q: %s", e.Index, e.Key, e.Reason)
}

type float64er interface {
	Float64() (float64, error)
}

// Extract reads the category label and numeric value of each record under
// the given keys, preserving record order.
func Extract(records []map[string]any, categoryKey, valueKey string) ([]Datum, error) {
	out := make([]Datum, 0, len(records))
	for i, rec := range records {
		rawName, ok := rec[categoryKey]
		if !ok || rawName == nil {
			return nil, &ExtractError{Index: i, Key: categoryKey, Reason: "missing"}
		}
		rawValue, ok := rec[valueKey]
		if !ok || rawValue == nil {
			return nil, &ExtractError{Index: i, Key: valueKey, Reason: "missing"}
		}
		v, err := toFloat(rawValue)
		if err != nil {
			return nil, &ExtractError{Index: i, Key: valueKey, Reason: err.Error()}
		}
		out = append(out, Datum{Name: fmt.Sprint(rawName), Value: v})
	}
	return out, nil
}

func toFloat(v any) (float64, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case float64er:
		parsed, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("not a number: %w", err)
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", n)
		}
		f = parsed
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number")
	}
	return f, nil
}

// Fractions converts data values into each datum's share of the total.
// Negative values count as zero; an all-zero data set yields all zeros.
func Fractions(data []Datum) []float64 {
	var total float64
	for _, d := range data {
		total += max(d.Value, 0)
	}
	out := make([]float64, len(data))
	if total == 0 {
		return out
	}
	for i, d := range data {
		out[i] = max(d.Value, 0) / total
	}
	return out
}

func Names(data []Datum) []string {
	names := make([]string, len(data))
	for i, d := range data {
		names[i] = d.Name
	}
	return names
}
