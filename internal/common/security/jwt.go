package security

import (
	"context"
	"staff_attendance/internal/common"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is what a verified bearer token resolves to.
type Claims struct {
	Subject string // the user's email
	Role    string
}

// TokenService issues and verifies the signed bearer tokens this API
// hands out at login. Tokens are HS256, carry {sub, role, jti} and expire
// after the configured lifetime; nothing about them is revocable before
// expiry.
type TokenService struct {
	auth   *jwtauth.JWTAuth
	expiry time.Duration
}

func NewTokenService(key []byte, expiry time.Duration) *TokenService {
	return &TokenService{
		auth:   jwtauth.New("HS256", key, nil),
		expiry: expiry,
	}
}

// Auth exposes the underlying verifier for jwtauth.Verifier in the router.
func (s *TokenService) Auth() *jwtauth.JWTAuth {
	return s.auth
}

func (s *TokenService) Issue(subject, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"exp":  now.Add(s.expiry).Unix(),
		"iat":  now.Unix(),
		"jti":  uuid.NewString(),
	}
	_, tokenString, err := s.auth.Encode(claims)
	return tokenString, err
}

// Decode verifies a token string and resolves its claims. Every failure
// mode (bad signature, expired, malformed, missing subject) comes back
// as common.ErrUnauthorized.
func (s *TokenService) Decode(ctx context.Context, tokenString string) (Claims, error) {
	token, err := jwtauth.VerifyToken(s.auth, tokenString)
	if err != nil {
		return Claims{}, common.Errorf("token verification failed: %w", common.ErrUnauthorized)
	}
	claimMap, err := token.AsMap(ctx)
	if err != nil {
		return Claims{}, common.Errorf("token claims unreadable: %w", common.ErrUnauthorized)
	}
	return ClaimsFromMap(claimMap)
}

// ClaimsFromMap extracts the subject and role this service issues.
func ClaimsFromMap(claims jwt.MapClaims) (Claims, error) {
	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return Claims{}, common.Errorf("subject claim is missing: %w", common.ErrUnauthorized)
	}
	role, ok := claims["role"].(string)
	if !ok {
		return Claims{}, common.Errorf("role claim is missing: %w", common.ErrUnauthorized)
	}
	return Claims{Subject: subject, Role: role}, nil
}
