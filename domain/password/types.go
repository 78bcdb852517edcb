package password

// Seed is the real-valued starting point of the recurrence, strictly inside (0,1).
type Seed float64

// Float64 returns the seed as a plain float64
func (s Seed) Float64() float64 {
	return float64(s)
}

// NumericStream is the raw output of the chaotic iteration. Index 0 is the seed.
type NumericStream []float64

// UniformStream holds rank-transformed values in [0,1], same order as the source stream.
type UniformStream []float64

// Printable character set: ASCII 33 ('!') through 126 ('~').
const (
	CharsetStart = 33
	CharsetEnd   = 126
	CharsetSize  = CharsetEnd - CharsetStart + 1
)

// Result carries every intermediate artifact of one pipeline run.
type Result struct {
	Seed     Seed
	Stream   NumericStream
	Uniform  UniformStream
	Password string

	// Fallbacks lists stream indices whose value came from the tanh substitute
	// instead of the step function.
	Fallbacks []int
}

// Length returns the password length
func (r *Result) Length() int {
	return len(r.Password)
}
