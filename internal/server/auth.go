package server

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// forbiddenBody is the fixed reply for requests without a valid token.
var forbiddenBody = map[string]any{
	"jobRunID": "0",
	"status":   http.StatusForbidden,
	"message":  "Forbidden",
	"data":     map[string]any{},
	"error":    true,
}

func bearerToken(authz string) (string, bool) {
	parts := strings.Fields(authz)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

// newTokenAuth admits requests whose bearer token is one of tokens.
func newTokenAuth(tokens []string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok || !tokenAllowed(tokens, token) {
				logger.Warn("rejected request with invalid token", "path", r.URL.Path, "remote", r.RemoteAddr)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(forbiddenBody)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func tokenAllowed(tokens []string, token string) bool {
	allowed := false
	for _, t := range tokens {
		if subtle.ConstantTimeCompare([]byte(t), []byte(token)) == 1 {
			allowed = true
		}
	}
	return allowed
}
