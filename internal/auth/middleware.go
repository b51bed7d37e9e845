// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/coursepath/internal/config"
	"github.com/tomtom215/coursepath/internal/logging"
	"github.com/tomtom215/coursepath/internal/models"
)

type contextKey string

// ClaimsContextKey holds the validated *Claims.
const ClaimsContextKey contextKey = "claims"

var errMissingToken = errors.New("missing bearer token")

// Middleware enforces the configured auth mode.
type Middleware struct {
	jwtManager *JWTManager
	authMode   string
}

// NewMiddleware creates the auth middleware. jwtManager may be nil when
// authMode is none.
func NewMiddleware(jwtManager *JWTManager, authMode string) (*Middleware, error) {
	if authMode == config.AuthModeJWT && jwtManager == nil {
		return nil, errors.New("jwt auth mode requires a JWT manager")
	}
	return &Middleware{jwtManager: jwtManager, authMode: authMode}, nil
}

// Authenticate rejects requests without a valid bearer token in jwt mode.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.authMode != config.AuthModeJWT {
			next.ServeHTTP(w, r)
			return
		}

		token, err := bearerToken(r)
		if err != nil {
			writeUnauthorized(w, err.Error())
			return
		}

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Token validation failed")
			writeUnauthorized(w, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClaims returns the claims stored by Authenticate, or nil.
func GetClaims(ctx context.Context) *Claims {
	claims, _ := ctx.Value(ClaimsContextKey).(*Claims)
	return claims
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errMissingToken
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errors.New("authorization header must be 'Bearer <token>'")
	}
	return strings.TrimSpace(token), nil
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="coursepath"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(&models.APIResponse{
		Status:   models.StatusError,
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error:    &models.APIError{Code: models.ErrCodeUnauthorized, Message: message},
	})
}
