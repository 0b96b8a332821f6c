package lib

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"
	mrand "math/rand/v2"
)

const alnumUpper = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomAlnum draws n independent, uniformly distributed characters from [A-Z0-9].
func RandomAlnum(n int) string {
	out := make([]byte, n)
	limit := big.NewInt(int64(len(alnumUpper)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			// crypto/rand only fails when the OS source is gone
			out[i] = alnumUpper[mrand.IntN(len(alnumUpper))]
			continue
		}
		out[i] = alnumUpper[idx.Int64()]
	}
	return string(out)
}

// GenerateRandomToken generates a cryptographically secure random token
func GenerateRandomToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}
