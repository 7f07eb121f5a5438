package engine

// Project converts a per-game history into a point projection: the arithmetic
// mean scaled by a matchup multiplier. Every game counts equally; there is no
// recency weighting or outlier rejection. The multiplier is caller-supplied
// and accepted without validating its provenance.
func Project(history []float64, multiplier float64) float64 {
	if len(history) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range history {
		sum += v
	}
	return sum / float64(len(history)) * multiplier
}
