package core

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuantityAcceptsNumbersAndNumericStrings(t *testing.T) {
	for _, v := range []any{12.5, "12.5", " 12.5 ", json.Number("12.5"), 12} {
		q, err := ParseQuantity("quantity", v)
		require.NoError(t, err, "value %v", v)
		assert.InDelta(t, 12.0, q, 0.5)
	}
}

func TestParseQuantityRejectsBadInput(t *testing.T) {
	cases := []any{
		nil,
		"",
		"abc",
		0.0,
		-5.0,
		"-5",
		math.NaN(),
		math.Inf(1),
		math.Inf(-1),
		true,
	}
	for _, v := range cases {
		_, err := ParseQuantity("quantity", v)
		require.Error(t, err, "value %v", v)

		var ve *ValidationError
		assert.ErrorAs(t, err, &ve, "value %v", v)
	}
}

func TestParseMetricOptional(t *testing.T) {
	m, err := ParseMetric("quality_pct", nil)
	require.NoError(t, err)
	assert.Nil(t, m)

	m, err = ParseMetric("quality_pct", "93.5")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, 93.5, *m)

	// zero is a legal metric even though it is not a legal quantity
	m, err = ParseMetric("output_tonnes", 0.0)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, 0.0, *m)

	_, err = ParseMetric("quality_pct", -1.0)
	assert.Error(t, err)
	_, err = ParseMetric("quality_pct", math.NaN())
	assert.Error(t, err)
}
