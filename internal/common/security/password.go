package security

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a salted bcrypt digest. The plaintext is never
// stored or logged anywhere.
func HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPasswordHash reports whether password matches digest. A malformed
// digest verifies false rather than erroring out.
func CheckPasswordHash(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
