// Package weighting turns raw activity measurements into weighted activity units.
package weighting

import "math"

const (
	DefaultBaseline = 1000.0
	DefaultSigma    = 500.0
)

// Weight maps a swim distance onto a dimensionless weight.
//
// At or below the baseline it follows the Gaussian kernel centered on the
// baseline. Above it the kernel is shifted up by one, so the reward peaks just
// past the baseline and decays back towards 1.0 for very long sessions.
// Non-positive distances weigh nothing.
func Weight(distance, baseline, sigma float64) float64 {
	if distance <= 0 {
		return 0
	}
	var g float64
	if sigma <= 0 {
		if distance == baseline {
			g = 1
		}
	} else {
		d := distance - baseline
		g = math.Exp(-(d * d) / (2 * sigma * sigma))
	}
	if distance <= baseline {
		return g
	}
	return g + 1.0
}

// DefaultWeight applies Weight with the default baseline and sigma.
func DefaultWeight(distance float64) float64 {
	return Weight(distance, DefaultBaseline, DefaultSigma)
}
