package security

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// AccessCodeLength is the size of customer portal access codes.
const AccessCodeLength = 8

var accessCodeCharset = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")

// GenerateAccessCode returns a random 8-character alphanumeric code used as a
// customer's portal credential. Uniqueness is enforced by the database.
func GenerateAccessCode() (string, error) {
	code := make([]rune, AccessCodeLength)
	max := big.NewInt(int64(len(accessCodeCharset)))
	for i := range code {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate access code: %w", err)
		}
		code[i] = accessCodeCharset[idx.Int64()]
	}
	return string(code), nil
}
