// Package sharecode generates the short public tracking codes handed out to
// clients. Codes are uppercase base-36 and come from crypto/rand so they stay
// collision-resistant across all active links.
package sharecode

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultLength is the minimum code length used by the issuer.
const DefaultLength = 6

// Generate returns a random code of n characters. n values below
// DefaultLength are raised to it.
func Generate(n int) (string, error) {
	if n < DefaultLength {
		n = DefaultLength
	}

	var sb strings.Builder
	sb.Grow(n)
	max := big.NewInt(int64(len(alphabet)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(alphabet[idx.Int64()])
	}
	return sb.String(), nil
}

// Valid reports whether s looks like a code this package generated.
func Valid(s string) bool {
	if len(s) < DefaultLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(alphabet, rune(s[i])) {
			return false
		}
	}
	return true
}
