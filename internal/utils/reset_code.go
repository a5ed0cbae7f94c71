package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
)

const resetCodeLength = 6

// GenerateResetCode produces a uniformly random 6-digit numeric code from a
// cryptographically secure source, plus the SHA-256 hex hash that gets
// persisted. The plaintext code is only ever sent to the user by mail.
func GenerateResetCode() (code string, codeHash string, err error) {
	digits := make([]byte, resetCodeLength)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", "", fmt.Errorf("failed to read random digit: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	code = string(digits)
	return code, HashResetCode(code), nil
}

// HashResetCode returns the SHA-256 hex hash of a reset code.
func HashResetCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// MatchResetCode recomputes the hash of candidate and compares it with the
// stored hash in constant time.
func MatchResetCode(candidate string, storedHash string) bool {
	computed := HashResetCode(candidate)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
