package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateToken returns a URL-safe token built from n bytes of
// cryptographically strong randomness.
func GenerateToken(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
