package password

import (
	"math"
	"math/big"
	"unicode/utf8"

	"ecpass/domain/core"
)

// seedBytes is how much of the digest feeds the seed (96 bits).
const seedBytes = 12

var (
	one = big.NewInt(1)

	// (2^96 - 1) + 2
	seedDenominator = new(big.Int).Add(new(big.Int).Lsh(one, seedBytes*8), one)

	// largest float64 below 1
	maxSeed = math.Nextafter(1, 0)
)

// DeriveSeed maps memorable text to a seed in (0,1).
//
// The first 96 bits of SHA-256 over the UTF-8 bytes are read as a big-endian
// integer t and rescaled to (t+1)/(2^96+1). The division is exact; only the
// final rounding to float64 is inexact, and it is pinned below 1 for digests
// close to all-ones.
func DeriveSeed(memorable string) (Seed, error) {
	if !utf8.ValidString(memorable) {
		return 0, core.ErrEncoding
	}
	digest := core.Digest([]byte(memorable))
	return seedFromDigest(digest[:]), nil
}

func seedFromDigest(digest []byte) Seed {
	trunc := new(big.Int).SetBytes(digest[:seedBytes])
	trunc.Add(trunc, one)

	f, _ := new(big.Rat).SetFrac(trunc, seedDenominator).Float64()
	if f >= 1 {
		f = maxSeed
	}
	return Seed(f)
}
