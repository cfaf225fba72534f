package utils

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ToInt converts query values and loosely typed JSON numbers to int.
// Unparseable input yields fallback.
func ToInt(val any, fallback int) int {
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i)
		}
		if f, err := v.Float64(); err == nil {
			return int(f)
		}
		return fallback
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fallback
		}
		return i
	case []byte:
		return ToInt(string(v), fallback)
	default:
		return fallback
	}
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Ratio divides num by den. A zero denominator returns num.
func Ratio(num, den float64) float64 {
	if den == 0 {
		return num
	}
	return num / den
}

// Round rounds v to the given number of decimals.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
