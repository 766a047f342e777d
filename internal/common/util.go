package common

import (
	"crypto/rand"
	"fmt"
)

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// It is used to remove passphrases and key material from memory after use.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}

// RandomBytes returns size bytes read from the system CSPRNG.
func RandomBytes(size int) ([]byte, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("read random: %w", err)
	}
	return b, nil
}
