package opponent

import (
	"encoding/binary"

	"lukechampine.com/frand"
)

// Rand is the random source used for tie shuffling and restarts.
// *frand.RNG and *math/rand.Rand both satisfy it.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a fast random source. A non-zero seed gives a
// deterministic stream, zero seeds from system entropy.
func NewRand(seed int64) Rand {
	if seed == 0 {
		return frand.New()
	}
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], uint64(seed))
	return frand.NewCustom(key[:], 1024, 12)
}
