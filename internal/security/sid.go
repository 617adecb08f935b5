package security

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateSessionID returns an unguessable session identifier suitable
// for use as a cookie value.
func GenerateSessionID(length int) (string, error) {
	if length <= 0 {
		length = 32
	}
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
