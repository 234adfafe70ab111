package middleware

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/IsakPar/hanzi-vocab-val/internal/api/shared"
)

// APIKeyHeader is the header administrative clients send their key in.
const APIKeyHeader = "X-API-Key"

// APIKeyAuth guards administrative endpoints by comparing the request's
// key against a bcrypt hash from configuration. An empty hash is allowed
// only in development; in any other environment it is a deployment error
// and every request is rejected with 500 rather than silently opened up.
type APIKeyAuth struct {
	keyHash     string
	environment string
}

// NewAPIKeyAuth creates the middleware from the configured hash and
// environment name.
func NewAPIKeyAuth(keyHash, environment string) *APIKeyAuth {
	return &APIKeyAuth{keyHash: keyHash, environment: environment}
}

// Middleware returns the http.Handler wrapper enforcing the key check.
func (a *APIKeyAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.keyHash == "" {
			if a.environment == "development" {
				next.ServeHTTP(w, r)
				return
			}
			shared.RespondWithError(w, r, http.StatusInternalServerError,
				"API key not configured")
			return
		}

		key := r.Header.Get(APIKeyHeader)
		if key == "" || bcrypt.CompareHashAndPassword([]byte(a.keyHash), []byte(key)) != nil {
			shared.RespondWithError(w, r, http.StatusUnauthorized,
				"Invalid or missing API key")
			return
		}
		next.ServeHTTP(w, r)
	})
}
