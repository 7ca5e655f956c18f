package id

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/oklog/ulid/v2"
)

// GenerateReference returns a prefixed, time-ordered reference code,
// e.g. TXN_01J9ZX4K7Q8R9S0T1V2W3X4Y5Z.
func GenerateReference(prefix string) string {
	id := ulid.MustNew(ulid.Timestamp(time.Now()), ulid.Monotonic(rand.Reader, 0))
	return prefix + "_" + id.String()
}

// GenerateToken returns a 256-bit hex token for opaque session ids.
func GenerateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
