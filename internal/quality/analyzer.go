package quality

import (
	"math"

	"ecpass/domain/password"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// minExpectedPerBin keeps the chi-square approximation valid
const minExpectedPerBin = 5

// symbolCount is the number of printable characters that are neither letters nor digits
const symbolCount = password.CharsetSize - 26 - 26 - 10

// Report summarizes how well one generated password uses its alphabet.
// It never includes the password itself.
type Report struct {
	Length     int        `json:"length"`
	Summary    Summary    `json:"summary"`
	Uniformity Uniformity `json:"uniformity"`
	Characters Characters `json:"characters"`
	Stream     Stream     `json:"stream"`
}

// Summary describes the uniform stream
type Summary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
}

// Uniformity is a chi-square goodness-of-fit test of character indices
// against equiprobable bins
type Uniformity struct {
	Tested    bool    `json:"tested"`
	Bins      int     `json:"bins"`
	ChiSquare float64 `json:"chi_square"`
	PValue    float64 `json:"p_value"`
	IsUniform bool    `json:"is_uniform"`
}

// Characters counts character classes present in the password
type Characters struct {
	Distinct       int     `json:"distinct"`
	Upper          int     `json:"upper"`
	Lower          int     `json:"lower"`
	Digit          int     `json:"digit"`
	Symbol         int     `json:"symbol"`
	PoolSize       int     `json:"pool_size"`
	EntropyBits    float64 `json:"entropy_bits"`
	MaxEntropyBits float64 `json:"max_entropy_bits"`
}

// Stream describes the raw numeric stream
type Stream struct {
	Fallbacks      int `json:"fallbacks"`
	DistinctValues int `json:"distinct_values"`
	// CyclePeriod is the distance between the first repeated value and its
	// earlier occurrence, or 0 when no value repeats
	CyclePeriod int `json:"cycle_period"`
}

// Analyze builds a report for one pipeline result
func Analyze(res *password.Result) Report {
	return Report{
		Length:     len(res.Password),
		Summary:    summarize(res.Uniform),
		Uniformity: testUniformity(res.Password),
		Characters: classify(res.Password),
		Stream:     describeStream(res.Stream, len(res.Fallbacks)),
	}
}

func summarize(data []float64) Summary {
	var s Summary
	if len(data) == 0 {
		return s
	}
	s.Mean, _ = stats.Mean(data)
	s.StdDev, _ = stats.StandardDeviation(data)
	s.Min, _ = stats.Min(data)
	s.Max, _ = stats.Max(data)
	s.Median, _ = stats.Median(data)
	return s
}

// testUniformity groups the 94 character indices into as many contiguous
// bins as the sample supports and compares observed with expected counts.
func testUniformity(pw string) Uniformity {
	n := len(pw)
	bins := n / minExpectedPerBin
	if bins > password.CharsetSize {
		bins = password.CharsetSize
	}
	if bins < 2 {
		return Uniformity{PValue: 1}
	}

	observed := make([]float64, bins)
	width := make([]float64, bins)
	for idx := 0; idx < password.CharsetSize; idx++ {
		width[binOf(idx, bins)]++
	}
	for i := 0; i < n; i++ {
		observed[binOf(int(pw[i])-password.CharsetStart, bins)]++
	}

	chi := 0.0
	for b := range observed {
		expected := float64(n) * width[b] / password.CharsetSize
		d := observed[b] - expected
		chi += d * d / expected
	}

	dist := distuv.ChiSquared{K: float64(bins - 1)}
	p := 1 - dist.CDF(chi)
	return Uniformity{
		Tested:    true,
		Bins:      bins,
		ChiSquare: chi,
		PValue:    p,
		IsUniform: p > 0.05,
	}
}

func binOf(idx, bins int) int {
	return idx * bins / password.CharsetSize
}

func classify(pw string) Characters {
	var c Characters
	seen := make(map[byte]struct{}, len(pw))
	for i := 0; i < len(pw); i++ {
		ch := pw[i]
		seen[ch] = struct{}{}
		switch {
		case ch >= 'A' && ch <= 'Z':
			c.Upper++
		case ch >= 'a' && ch <= 'z':
			c.Lower++
		case ch >= '0' && ch <= '9':
			c.Digit++
		default:
			c.Symbol++
		}
	}
	c.Distinct = len(seen)

	if c.Upper > 0 {
		c.PoolSize += 26
	}
	if c.Lower > 0 {
		c.PoolSize += 26
	}
	if c.Digit > 0 {
		c.PoolSize += 10
	}
	if c.Symbol > 0 {
		c.PoolSize += symbolCount
	}

	length := float64(len(pw))
	if c.PoolSize > 0 {
		c.EntropyBits = length * math.Log2(float64(c.PoolSize))
	}
	c.MaxEntropyBits = length * math.Log2(password.CharsetSize)
	return c
}

func describeStream(stream []float64, fallbacks int) Stream {
	s := Stream{Fallbacks: fallbacks}
	firstSeen := make(map[float64]int, len(stream))
	for i, v := range stream {
		if j, ok := firstSeen[v]; ok {
			if s.CyclePeriod == 0 {
				s.CyclePeriod = i - j
			}
			continue
		}
		firstSeen[v] = i
	}
	s.DistinctValues = len(firstSeen)
	return s
}
