package security

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateResetToken returns a 32-byte cryptographically random opaque
// token, URL-safe base64 without padding. Single use: the auth service
// clears it from the user record when it is consumed.
func GenerateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
