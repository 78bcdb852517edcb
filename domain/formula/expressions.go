package formula

import (
	"math"

	p "ecpass/domain/password"
)

// TuringBot is the evolved tan/atanh expression. Its stream grows until
// x*(x+1) overflows, after which the tanh fallback locks it into the same
// short cycle whatever the seed, so most inputs share a password. It stays
// registered for comparison but must not be the default.
func TuringBot(x float64) float64 {
	return 0.245247 -
		0.00355652*p.Tan(x+0.997621) -
		(2.50253 * p.Tan(x+x+0.990735)) +
		41.4887 -
		(p.Tan(1.99855+p.Atanh(x)) - 0.996519) +
		p.Div(p.Tan(x+0.928126), -2.46095)*
			(0.986526+(p.Atanh(x)-0.918575))*
			(x-1.04439+2.59159*x) +
		x*(x+1) +
		p.Tan(1.42159+x) -
		p.Tan((-12.2847)*x+(-9.10391)*x)
}

// TuringBotCos is the default expression, built around cos and cosh. The
// outer cos keeps values bounded, so the stream keeps depending on the seed.
// cosh overflows for |x| > ~710, which the iterator catches.
func TuringBotCos(x float64) float64 {
	inner := math.Cos(p.Tan(math.Cos(p.Div(x, -0.00153462))) + x*x)
	return 0.432357 + (-0.498752 * math.Cos(
		0.594808*(-4.10993*math.Cosh(x)-
			(0.590558+p.Atanh(inner)))))
}

// logisticR sits in the chaotic regime of the logistic map.
const logisticR = 3.99

// Logistic is r*x*(1-x). For seeds in (0,1) it stays in [0,1].
func Logistic(x float64) float64 {
	return logisticR * x * (1 - x)
}
