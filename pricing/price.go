// Package pricing normalizes the heterogeneous price shapes returned by the
// search providers: plain numbers, currency-prefixed strings with grouping
// separators, or nested rate objects. Unparseable input never errors; it
// degrades to zero with an "estimated" flag so the response can warn the user.
package pricing

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Keys tried, in order, when the raw value is a nested rate object.
var nestedPriceKeys = []string{"extracted_lowest", "lowest", "extracted_before_taxes_fees", "price"}

// Normalize parses a raw upstream price value into a non-negative amount.
// The second return value is true when the price had to be estimated, i.e.
// the input was absent or unparseable.
func Normalize(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case nil:
		return 0, true
	case float64:
		return clamp(v)
	case float32:
		return clamp(float64(v))
	case int:
		return clamp(float64(v))
	case int64:
		return clamp(float64(v))
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, true
		}
		return clamp(f)
	case string:
		return parseString(v)
	case map[string]interface{}:
		for _, key := range nestedPriceKeys {
			if inner, ok := v[key]; ok {
				if amount, estimated := Normalize(inner); !estimated {
					return amount, false
				}
			}
		}
		return 0, true
	default:
		return 0, true
	}
}

// parseString strips currency symbols and grouping separators before parsing.
// Handles values like "₹8,500", "$ 350.00" and "INR 6200".
func parseString(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == ',', r == ' ':
			// grouping separators
		}
	}

	cleaned := b.String()
	if cleaned == "" {
		return 0, true
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, true
	}
	return clamp(f)
}

func clamp(f float64) (float64, bool) {
	if f <= 0 {
		return 0, true
	}
	return f, false
}
