package password

import (
	"cmp"
	"slices"
)

// Ranks returns 1-based ranks of data. Tied values share the mean of the
// rank positions they occupy.
//
// Ties are grouped with ==. That is exact for the finite values Iterate
// emits and also merges 0 with -0, matching cmp.Compare's ordering. NaN is
// never equal to itself and would get a rank of its own.
func Ranks(data []float64) []float64 {
	n := len(data)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(data[a], data[b])
	})

	ranks := make([]float64, n)
	for start := 0; start < n; {
		end := start + 1
		for end < n && data[order[end]] == data[order[start]] {
			end++
		}
		// positions start..end-1 hold ranks start+1..end
		mean := float64(start+1+end) / 2
		for _, idx := range order[start:end] {
			ranks[idx] = mean
		}
		start = end
	}
	return ranks
}

// Uniformize applies the empirical CDF transform: each value becomes
// (rank-1)/(N-1), so the minimum maps to 0 and the maximum to 1.
// A single value maps to 0.5. The input is not modified.
func Uniformize(stream []float64) UniformStream {
	n := len(stream)
	switch n {
	case 0:
		return UniformStream{}
	case 1:
		return UniformStream{0.5}
	}

	ranks := Ranks(stream)
	uniform := make(UniformStream, n)
	scale := float64(n - 1)
	for i, r := range ranks {
		uniform[i] = (r - 1) / scale
	}
	return uniform
}
