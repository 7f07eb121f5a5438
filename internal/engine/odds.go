package engine

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/yourusername/prop-hammer/internal/models"
)

// numericToken matches a signed decimal number inside a quote cell.
var numericToken = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// AmericanToDecimal converts an American odds quotation to decimal odds.
// Zero or non-finite input returns 1.0, a defensive default rather than a
// real price.
func AmericanToDecimal(odds float64) float64 {
	if odds == 0 || math.IsNaN(odds) || math.IsInf(odds, 0) {
		return 1.0
	}
	if odds > 0 {
		return odds/100 + 1
	}
	return 100/math.Abs(odds) + 1
}

// ParseQuote extracts a line/odds pair from a candidate cell of the form
// "<line>/<odds>". Cells without a separator, or where either side yields no
// numeric token, are not quotes and return ok=false.
func ParseQuote(cell string) (models.LineQuote, bool) {
	parts := strings.SplitN(cell, "/", 2)
	if len(parts) < 2 {
		return models.LineQuote{}, false
	}
	lineTok := numericToken.FindString(parts[0])
	oddsTok := numericToken.FindString(parts[1])
	if lineTok == "" || oddsTok == "" {
		return models.LineQuote{}, false
	}
	line, err := strconv.ParseFloat(lineTok, 64)
	if err != nil {
		return models.LineQuote{}, false
	}
	odds, err := strconv.ParseFloat(oddsTok, 64)
	if err != nil {
		return models.LineQuote{}, false
	}
	return models.LineQuote{Line: line, AmericanOdds: odds}, true
}

// normalCDF is the standard normal cumulative distribution function.
func normalCDF(z float64) float64 {
	return 0.5 * math.Erfc(-z/math.Sqrt2)
}
