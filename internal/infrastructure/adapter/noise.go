package adapter

import (
	"crypto/sha256"
	"encoding/binary"
	"strings"
)

// hashUnit derives a deterministic pseudo-random value in [0, 1) from the
// given parts. The mock providers use it instead of a PRNG so that repeated
// calls with the same inputs return the same readings, which keeps both the
// trust score and the tests reproducible.
func hashUnit(parts ...string) float64 {
	h := sha256.Sum256([]byte(strings.Join(parts, "|")))
	n := binary.BigEndian.Uint64(h[:8])
	return float64(n) / float64(1<<64)
}
