package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// NewOTPCode generates a 6-digit numeric one-time passcode. Leading zeros
// are preserved, so "004219" is a valid code.
func NewOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
