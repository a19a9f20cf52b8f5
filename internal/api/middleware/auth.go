package middleware

import (
	"context"
	"net/http"
	"staff_attendance/internal/common"
	"staff_attendance/internal/common/security"
	"staff_attendance/internal/domain/policy"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	SubjectCtxKey contextKey = "subject"
	RoleCtxKey    contextKey = "role"
)

// Authenticator resolves the verified token into typed context values.
// Every verification failure (missing token, bad signature, expired,
// malformed, missing claims) reads the same to the caller: 401, no partial
// trust.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claimsMap, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			common.RespondWithError(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
			return
		}

		claims, err := security.ClaimsFromMap(claimsMap)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, common.ErrUnauthorized.Error())
			return
		}

		ctx := context.WithValue(r.Context(), SubjectCtxKey, claims.Subject)
		ctx = context.WithValue(ctx, RoleCtxKey, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequirePermission gates a route by the access policy. It runs after
// Authenticator, so a denial here is 403, distinct from the 401 of a
// missing or invalid token.
func RequirePermission(action policy.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value(RoleCtxKey).(string)
			if !ok || !policy.Allowed(role, action) {
				common.RespondWithError(w, http.StatusForbidden, common.ErrForbidden.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SubjectFromContext returns the authenticated subject (email).
func SubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(SubjectCtxKey).(string)
	return subject, ok
}

// RoleFromContext returns the authenticated role.
func RoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleCtxKey).(string)
	return role, ok
}
