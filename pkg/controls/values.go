package controls

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Values maps control IDs to their current values, as decoded from JSON.
type Values map[string]any

// GetString is a helper to extract a string value with a default value
func (v Values) GetString(key, defaultValue string) string {
	if val, ok := v[key]; ok {
		if str, ok := val.(string); ok && str != "" {
			return str
		}
	}
	return defaultValue
}

// GetRange extracts a [low, high] pair. Values that are not a two element
// numeric array yield the default.
func (v Values) GetRange(key string, defaultValue [2]float64) [2]float64 {
	val, ok := v[key]
	if !ok {
		return defaultValue
	}

	switch r := val.(type) {
	case []any:
		if len(r) != 2 {
			return defaultValue
		}
		low, okLow := toFloat(r[0])
		high, okHigh := toFloat(r[1])
		if !okLow || !okHigh {
			return defaultValue
		}
		return [2]float64{low, high}
	case []float64:
		if len(r) != 2 {
			return defaultValue
		}
		return [2]float64{r[0], r[1]}
	case [2]float64:
		return r
	}
	return defaultValue
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// ParseQueryValue converts the textual form of a control value, as found in
// a URL query, into its JSON representation. Range sliders use "low,high".
func ParseQueryValue(def ControlDef, raw string) (any, error) {
	switch def.Type {
	case ControlTypeRangeSlider:
		lowRaw, highRaw, found := strings.Cut(raw, ",")
		if !found {
			return nil, fmt.Errorf("%s must be formatted as low,high", def.ID)
		}
		low, err := parseFinite(lowRaw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s low bound: %w", def.ID, err)
		}
		high, err := parseFinite(highRaw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s high bound: %w", def.ID, err)
		}
		return []any{low, high}, nil
	default:
		return raw, nil
	}
}

func parseFinite(raw string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a finite number", raw)
	}
	return f, nil
}
