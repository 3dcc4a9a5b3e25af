// Package lifemath is a library of closed-form statistical and mathematical
// functions used by life-history computations: logistic curves, parameter
// bounding transforms, smooth min/max approximations, gamma and log-gamma,
// and probability densities. All functions are pure and stateless; domain
// violations surface as errors to the caller of the specific function and
// never abort a surrounding evaluation pass.
package lifemath

import (
	"errors"
	"math"
)

// ErrDomain reports an argument outside a function's defined domain.
var ErrDomain = errors.New("lifemath: argument outside function domain")

// Logistic is the general logistic function
// 1 / (1 + exp(-slope * (x - median))).
func Logistic(median, slope, x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-slope*(x-median)))
}

// DoubleLogistic is the product of an ascending and a descending logistic
// limb, where medianDesc > medianAsc for a dome-shaped curve.
func DoubleLogistic(medianAsc, slopeAsc, medianDesc, slopeDesc, x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-slopeAsc*(x-medianAsc))) *
		(1.0 - 1.0/(1.0+math.Exp(-slopeDesc*(x-medianDesc))))
}

// Logit maps a parameter x bounded in (a, b) to real space:
// -log(b-x) + log(x-a). The bounds themselves are poles.
func Logit(a, b, x float64) (float64, error) {
	if x <= a || x >= b {
		return 0, ErrDomain
	}
	return -math.Log(b-x) + math.Log(x-a), nil
}

// InvLogit maps a real-space parameter back into (a, b):
// a + (b-a) / (1 + exp(-logitX)).
func InvLogit(a, b, logitX float64) float64 {
	return a + (b-a)/(1.0+math.Exp(-logitX))
}

// ADFabs is a smooth absolute value, sqrt(x*x + c), safe to differentiate
// through x = 0. c is typically 1e-5.
func ADFabs(x, c float64) float64 {
	return math.Sqrt(x*x + c)
}

// ADMin is a smooth minimum, (a + b - ADFabs(a-b, c)) / 2.
func ADMin(a, b, c float64) float64 {
	return (a + b - ADFabs(a-b, c)) * 0.5
}

// ADMax is a smooth maximum, (a + b + ADFabs(a-b, c)) / 2.
func ADMax(a, b, c float64) float64 {
	return (a + b + ADFabs(a-b, c)) * 0.5
}
