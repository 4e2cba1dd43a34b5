// Package reports is the read side: pure transforms over rows that the
// database has already aggregated into views. Nothing in here mutates state.
package reports

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// InDateRange reports whether a row's date value falls inside [from, to],
// inclusive on both ends. An unparsable value or bound does not exclude the
// row; filtering is a convenience, not a gate.
func InDateRange(value, from, to string) bool {
	v, ok := parseDay(value)
	if !ok {
		return true
	}
	if f, ok := parseDay(from); ok && v.Before(f) {
		return false
	}
	if t, ok := parseDay(to); ok && v.After(t) {
		return false
	}
	return true
}

func parseDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", "2006-01"} {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// Percentile interpolates linearly over sorted values; p is 0..100.
// A single value answers every percentile with itself.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[n-1]
	}

	rank := p / 100 * float64(n-1)
	lo := int(rank)
	frac := rank - float64(lo)
	if lo+1 >= n {
		return sorted[n-1]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// Percentiles sorts a copy of values and answers each requested percentile.
func Percentiles(values []float64, ps ...float64) map[string]float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	out := make(map[string]float64, len(ps))
	for _, p := range ps {
		out[fmt.Sprintf("p%g", p)] = Percentile(sorted, p)
	}
	return out
}

// CSVField renders one value for a delimited export. Nil (including typed
// nil pointers) becomes an empty field; quoting is applied only when the
// content demands it, with embedded quotes doubled.
func CSVField(v any) string {
	var s string
	switch x := v.(type) {
	case nil:
		return ""
	case *float64:
		if x == nil {
			return ""
		}
		s = strconv.FormatFloat(*x, 'f', -1, 64)
	case float64:
		s = strconv.FormatFloat(x, 'f', -1, 64)
	case *string:
		if x == nil {
			return ""
		}
		s = *x
	case int:
		s = strconv.Itoa(x)
	case int64:
		s = strconv.FormatInt(x, 10)
	case uint:
		s = strconv.FormatUint(uint64(x), 10)
	case string:
		s = x
	default:
		s = fmt.Sprint(x)
	}

	if strings.ContainsAny(s, ",\"\n\r") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

// WriteCSV renders a header row plus data rows, CRLF line endings.
func WriteCSV(headers []string, rows [][]any) string {
	var sb strings.Builder

	for i, h := range headers {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(CSVField(h))
	}
	sb.WriteString("\r\n")

	for _, row := range rows {
		for i, v := range row {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(CSVField(v))
		}
		sb.WriteString("\r\n")
	}

	return sb.String()
}
