package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateSecureRandomDigits returns a string of exactly n cryptographically
// random decimal digits, leading zeros included.
func GenerateSecureRandomDigits(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("digit count must be positive")
	}
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
	v, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("failed to read random digits: %w", err)
	}
	return fmt.Sprintf("%0*s", n, v.String()), nil
}
