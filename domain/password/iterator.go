package password

import (
	"errors"
	"math"

	"ecpass/domain/core"
)

// StepFunc is one application of the chaotic recurrence: x[n+1] = f(x[n]).
// Formula authors should build it from Tan, Atanh and Div so that the
// expression's singularities are absorbed where they occur.
type StepFunc func(x float64) float64

const (
	// AtanhLimit bounds the argument of Atanh away from its poles at ±1.
	AtanhLimit = 0.999999

	// DivEpsilon is the smallest divisor magnitude Div will divide by.
	DivEpsilon = 1e-9
)

var errNilStep = errors.New("password: nil step function")

// Tan is a tangent that never hits its poles. The argument is reduced into
// (-π/2, π/2) with a floored modulo; a non-finite result yields 0.
func Tan(v float64) float64 {
	r := math.Mod(v+math.Pi/2, math.Pi)
	if r < 0 {
		r += math.Pi
	}
	t := math.Tan(r - math.Pi/2)
	if !isFinite(t) {
		return 0
	}
	return t
}

// Atanh clamps its argument to [-AtanhLimit, AtanhLimit] before evaluating.
func Atanh(v float64) float64 {
	return math.Atanh(math.Max(-AtanhLimit, math.Min(AtanhLimit, v)))
}

// Div returns a/b, or 0 when |b| < DivEpsilon.
func Div(a, b float64) float64 {
	if math.Abs(b) < DivEpsilon {
		return 0
	}
	return a / b
}

// Step applies f to x. When the raw value is NaN or infinite it returns
// tanh(x) instead and reports the substitution.
func Step(f StepFunc, x float64) (next float64, fellBack bool) {
	next = f(x)
	if isFinite(next) {
		return next, false
	}
	return math.Tanh(x), true
}

// Iterate builds a stream of length values starting at seed. Every element
// of the returned stream is finite.
func Iterate(seed Seed, length int, f StepFunc) (NumericStream, []int, error) {
	if length <= 0 {
		return nil, nil, core.NewInvalidLengthError(length)
	}
	if f == nil {
		return nil, nil, errNilStep
	}
	x := seed.Float64()
	if !isFinite(x) {
		return nil, nil, core.NewNonFiniteError(0, x)
	}

	stream := make(NumericStream, length)
	stream[0] = x

	var fallbacks []int
	for i := 1; i < length; i++ {
		next, fellBack := Step(f, stream[i-1])
		if fellBack {
			fallbacks = append(fallbacks, i)
		}
		// unreachable while tanh of a finite value stays finite
		if !isFinite(next) {
			return nil, nil, core.NewNonFiniteError(i, next)
		}
		stream[i] = next
	}

	return stream, fallbacks, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
