package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmericanToDecimal(t *testing.T) {
	tests := []struct {
		name string
		odds float64
		want float64
	}{
		{"underdog", 140, 2.40},
		{"favorite", -110, 100.0/110.0 + 1},
		{"even money", 100, 2.0},
		{"zero defaults to 1", 0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, AmericanToDecimal(tt.odds), 1e-9)
		})
	}
}

func TestAmericanToDecimalAlwaysAboveOne(t *testing.T) {
	for _, odds := range []float64{1, 50, 100, 250, 10000, -1, -50, -110, -500, -10000} {
		assert.Greater(t, AmericanToDecimal(odds), 1.0, "odds %v", odds)
	}
}

func TestAmericanToDecimalNonFiniteInput(t *testing.T) {
	assert.Equal(t, 1.0, AmericanToDecimal(math.NaN()))
	assert.Equal(t, 1.0, AmericanToDecimal(math.Inf(1)))
	assert.Equal(t, 1.0, AmericanToDecimal(math.Inf(-1)))
}

func TestParseQuote(t *testing.T) {
	tests := []struct {
		name     string
		cell     string
		wantLine float64
		wantOdds float64
		wantOK   bool
	}{
		{"plain quote", "27.5/-110", 27.5, -110, true},
		{"plus odds", "30/+142", 30, 142, true},
		{"ladder style", "25+/-188", 25, -188, true},
		{"whitespace noise", " 9.5 / -115 ", 9.5, -115, true},
		{"no separator", "27.5 -110", 0, 0, false},
		{"no numeric tokens", "abc/xyz", 0, 0, false},
		{"one side numeric", "27.5/over", 0, 0, false},
		{"empty cell", "", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, ok := ParseQuote(tt.cell)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantLine, quote.Line)
				assert.Equal(t, tt.wantOdds, quote.AmericanOdds)
			}
		})
	}
}

func TestNormalCDF(t *testing.T) {
	assert.InDelta(t, 0.5, normalCDF(0), 1e-12)
	assert.InDelta(t, 0.8413, normalCDF(1), 1e-4)
	assert.InDelta(t, 0.1587, normalCDF(-1), 1e-4)
}
