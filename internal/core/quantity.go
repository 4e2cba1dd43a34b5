package core

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ParseQuantity normalizes a transfer quantity from a decoded JSON body.
// Clients send either a number or a numeric string; both are accepted, but
// the result must be finite and strictly positive.
func ParseQuantity(field string, v any) (float64, error) {
	q, err := toFloat(field, v)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return 0, &ValidationError{Field: field, Message: "must be a finite number"}
	}
	if q <= 0 {
		return 0, &ValidationError{Field: field, Message: "must be greater than zero"}
	}
	return q, nil
}

// ParseMetric is ParseQuantity's optional cousin for yield/quality figures:
// nil stays nil, anything else must be finite and non-negative.
func ParseMetric(field string, v any) (*float64, error) {
	if v == nil {
		return nil, nil
	}
	m, err := toFloat(field, v)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(m) || math.IsInf(m, 0) || m < 0 {
		return nil, &ValidationError{Field: field, Message: "must be a finite non-negative number"}
	}
	return &m, nil
}

func toFloat(field string, v any) (float64, error) {
	switch q := v.(type) {
	case float64:
		return q, nil
	case int:
		return float64(q), nil
	case json.Number:
		f, err := q.Float64()
		if err != nil {
			return 0, &ValidationError{Field: field, Message: "must be numeric"}
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(q), 64)
		if err != nil {
			return 0, &ValidationError{Field: field, Message: "must be numeric"}
		}
		return f, nil
	case nil:
		return 0, &ValidationError{Field: field, Message: "is required"}
	}
	return 0, &ValidationError{Field: field, Message: "must be numeric"}
}
