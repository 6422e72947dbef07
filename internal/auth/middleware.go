package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/hiredeck/recruiter-api/internal/httputil"
)

// ContextKey is a type for context keys to avoid collisions
type ContextKey string

const (
	CompanyIDContextKey    ContextKey = "company_id"
	CompanyEmailContextKey ContextKey = "company_email"
)

// Middleware handles authentication for protected routes
type Middleware struct {
	tokenService TokenService
}

func NewMiddleware(tokenService TokenService) *Middleware {
	return &Middleware{tokenService: tokenService}
}

// RequireAuth validates the bearer token before the protected handler runs.
// A missing or malformed Authorization header yields 401; a token that fails
// verification (bad signature or expired) yields 403.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			httputil.RespondErrorWithCode(w, "invalid authorization header format", httputil.CodeInvalidAuthHeader, http.StatusUnauthorized)
			return
		}
		token := parts[1]

		claims, err := m.tokenService.VerifyToken(token)
		if err != nil {
			if errors.Is(err, ErrExpiredToken) {
				httputil.RespondErrorWithCode(w, "token has expired", httputil.CodeTokenExpired, http.StatusForbidden)
				return
			}
			httputil.RespondErrorWithCode(w, "invalid token", httputil.CodeInvalidToken, http.StatusForbidden)
			return
		}

		companyID, err := uuid.Parse(claims.CompanyID)
		if err != nil {
			httputil.RespondErrorWithCode(w, "invalid company ID in token", httputil.CodeInvalidToken, http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), CompanyIDContextKey, companyID)
		ctx = context.WithValue(ctx, CompanyEmailContextKey, claims.Email)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetCompanyIDFromContext extracts the company ID from the request context
func GetCompanyIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	companyID, ok := ctx.Value(CompanyIDContextKey).(uuid.UUID)
	return companyID, ok
}

// GetCompanyEmailFromContext extracts the company email from the request context
func GetCompanyEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(CompanyEmailContextKey).(string)
	return email, ok
}
