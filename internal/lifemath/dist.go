package lifemath

import (
	"fmt"
	"math"
)

// Dnorm is the normal probability density at x with the given mean and
// standard deviation, optionally as a log density.
func Dnorm(x, mean, sd float64, retLog bool) (float64, error) {
	if sd <= 0 {
		return 0, fmt.Errorf("%w: dnorm requires sd > 0 (got %g)", ErrDomain, sd)
	}
	ret := (1.0 / (sd * math.Sqrt(2*math.Pi))) *
		math.Exp(-(x-mean)*(x-mean)/(2*sd*sd))
	if retLog {
		return math.Log(ret), nil
	}
	return ret, nil
}

// Dlnorm is the log-normal probability density at x with the given log-mean
// and log-standard-deviation. Density is 0 for x <= 0.
func Dlnorm(x, meanLog, sdLog float64, retLog bool) float64 {
	if x <= 0 {
		return 0
	}
	ret := (1.0 / (x * sdLog * math.Sqrt(2*math.Pi))) *
		math.Exp(-(math.Log(x)-meanLog)*(math.Log(x)-meanLog)/(2*sdLog))
	if retLog {
		return math.Log(ret)
	}
	return ret
}

// Dmultinom is the multinomial probability density of counts x under
// probabilities p, optionally as a log density. p is normalized internally
// to sum to 1.
func Dmultinom(x, p []float64, retLog bool) (float64, error) {
	if len(x) == 0 || len(x) != len(p) {
		return 0, fmt.Errorf("%w: dmultinom requires matching non-empty counts and probabilities (%d vs %d)", ErrDomain, len(x), len(p))
	}

	sumP := 0.0
	for _, v := range p {
		sumP += v
	}
	if sumP <= 0 {
		return 0, fmt.Errorf("%w: dmultinom requires positive probability mass (got %g)", ErrDomain, sumP)
	}

	sumX := 0.0
	logTerms := 0.0
	sumLgXp1 := 0.0
	for i := range x {
		prob := p[i] / sumP
		sumX += x[i]
		logTerms += x[i] * math.Log(prob)
		lg, err := LogGamma(x[i] + 1.0)
		if err != nil {
			return 0, err
		}
		sumLgXp1 += lg
	}

	lgTotal, err := LogGamma(sumX + 1.0)
	if err != nil {
		return 0, err
	}

	ret := lgTotal - sumLgXp1 + logTerms
	if retLog {
		return ret, nil
	}
	return math.Exp(ret), nil
}
