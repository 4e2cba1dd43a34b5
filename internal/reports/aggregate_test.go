package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentileLinearInterpolation(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}

	assert.InDelta(t, 3.0, Percentile(values, 50), 1e-9)
	assert.InDelta(t, 4.6, Percentile(values, 90), 1e-9)
	assert.InDelta(t, 1.0, Percentile(values, 0), 1e-9)
	assert.InDelta(t, 5.0, Percentile(values, 100), 1e-9)
}

func TestPercentileSingleValue(t *testing.T) {
	assert.Equal(t, 7.0, Percentile([]float64{7}, 50))
	assert.Equal(t, 7.0, Percentile([]float64{7}, 90))
}

func TestPercentileEmpty(t *testing.T) {
	assert.Equal(t, 0.0, Percentile(nil, 50))
}

func TestPercentilesSortsItsInput(t *testing.T) {
	out := Percentiles([]float64{5, 1, 4, 2, 3}, 50, 90)
	assert.InDelta(t, 3.0, out["p50"], 1e-9)
	assert.InDelta(t, 4.6, out["p90"], 1e-9)
}

func TestCSVFieldQuoting(t *testing.T) {
	assert.Equal(t, "plain", CSVField("plain"))
	assert.Equal(t, `"a,b"`, CSVField("a,b"))
	assert.Equal(t, `"say ""hi"""`, CSVField(`say "hi"`))
	assert.Equal(t, "\"line\nbreak\"", CSVField("line\nbreak"))
}

func TestCSVFieldNil(t *testing.T) {
	assert.Equal(t, "", CSVField(nil))

	var f *float64
	assert.Equal(t, "", CSVField(f))

	var s *string
	assert.Equal(t, "", CSVField(s))
}

func TestCSVFieldNumbers(t *testing.T) {
	assert.Equal(t, "12.5", CSVField(12.5))
	assert.Equal(t, "42", CSVField(int64(42)))

	v := 3.25
	assert.Equal(t, "3.25", CSVField(&v))
}

func TestWriteCSV(t *testing.T) {
	got := WriteCSV(
		[]string{"period", "note"},
		[][]any{
			{"2026-08", "all good"},
			{"2026-07", `bad, very "bad"`},
			{"2026-06", nil},
		},
	)
	want := "period,note\r\n" +
		"2026-08,all good\r\n" +
		"2026-07,\"bad, very \"\"bad\"\"\"\r\n" +
		"2026-06,\r\n"
	assert.Equal(t, want, got)
}

func TestInDateRangeInclusive(t *testing.T) {
	assert.True(t, InDateRange("2026-08-15", "2026-08-01", "2026-08-31"))
	assert.True(t, InDateRange("2026-08-01", "2026-08-01", "2026-08-31"))
	assert.True(t, InDateRange("2026-08-31", "2026-08-01", "2026-08-31"))
	assert.False(t, InDateRange("2026-09-01", "2026-08-01", "2026-08-31"))
	assert.False(t, InDateRange("2026-07-31", "2026-08-01", "2026-08-31"))
}

func TestInDateRangeMonthPeriods(t *testing.T) {
	assert.True(t, InDateRange("2026-08", "2026-01", "2026-12"))
	assert.False(t, InDateRange("2026-08", "2026-09", ""))
}

func TestInDateRangeTolerantOfGarbage(t *testing.T) {
	// unparsable row value never excludes the row
	assert.True(t, InDateRange("not-a-date", "2026-08-01", "2026-08-31"))
	// unparsable bounds do not constrain
	assert.True(t, InDateRange("2026-08-15", "garbage", "garbage"))
	assert.True(t, InDateRange("2026-08-15", "", ""))
}
