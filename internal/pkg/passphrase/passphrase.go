// Package passphrase generates random passwords for customer registration
// and password reset flows.
package passphrase

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// DefaultLength is the length of generated passwords.
const DefaultLength = 12

// alphabet deliberately omits ambiguous characters (0/O, 1/l/I).
const alphabet = "abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Generate returns a random password of the given length drawn from a
// cryptographically secure source. Length must be positive.
func Generate(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("passphrase length must be positive, got %d", length)
	}

	out := make([]byte, length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate passphrase: %w", err)
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out), nil
}
