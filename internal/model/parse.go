package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseValue parses a measurement value.
func ParseValue(input string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid value %q", input)
	}
	return v, nil
}

// ParseDate parses a YYYY-MM-DD calendar day.
func ParseDate(input string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(input))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format %q (use YYYY-MM-DD)", input)
	}
	return d, nil
}

// ParseBound parses an optional normal-range bound. Empty input yields nil.
func ParseBound(input string) (*float64, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}
	v, err := ParseValue(input)
	if err != nil {
		return nil, fmt.Errorf("invalid range bound %q", input)
	}
	return &v, nil
}

// Day truncates t to its calendar day in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatValue renders a value for editing without trailing zeros.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatBound renders an optional bound, empty when absent.
func FormatBound(v *float64) string {
	if v == nil {
		return ""
	}
	return FormatValue(*v)
}
