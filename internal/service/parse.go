package service

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber reads a decimal, returning 0 for anything unparseable.
func ParseNumber(value string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseInt reads a whole number, truncating decimals and returning 0 for
// anything unparseable.
func ParseInt(value string) int {
	value = strings.TrimSpace(value)
	if v, err := strconv.Atoi(value); err == nil {
		return v
	}
	return int(ParseNumber(value))
}

func parseOptional(value string) *float64 {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	v := ParseNumber(value)
	return &v
}
