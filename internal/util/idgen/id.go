package idgen

import (
	crand "crypto/rand"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

const idAlphabet = "0123456789abcdefghjkmnpqrstvwxyz"

func init() {
	if len(idAlphabet) != 32 {
		panic("must not happen")
	}
	for i := 1; i < len(idAlphabet); i++ {
		if idAlphabet[i-1] >= idAlphabet[i] {
			panic("must not happen")
		}
	}
}

// IDLen is the length of strings returned by ID.
const IDLen = 26

func ID() string {
	// This ID generator follows https://github.com/ulid/spec, but is lowercase and not monotonic.
	var b strings.Builder
	b.Grow(IDLen)
	ts := uint64(time.Now().UnixMilli()) & ((1 << 48) - 1)
	for i := 45; i >= 0; i -= 5 {
		_ = b.WriteByte(idAlphabet[(ts>>i)&31])
	}
	for range 2 {
		r := rand.Uint64()
		for range 8 {
			_ = b.WriteByte(idAlphabet[r&31])
			r >>= 5
		}
	}
	return b.String()
}

// SecureKey returns n random bytes suitable for cookie and CSRF keys.
func SecureKey(n int) ([]byte, error) {
	key := make([]byte, n)
	if _, err := crand.Read(key); err != nil {
		return nil, fmt.Errorf("crypto rand: %w", err)
	}
	return key, nil
}
