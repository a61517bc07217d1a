package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/phrazzld/taskhub-api/internal/api/shared"
)

// APIKeyHeader is the request header carrying the client's API key.
const APIKeyHeader = "X-API-Key"

// APIKeyMiddleware checks the request's API key against a configured
// list of SHA-256 digests. Keys are never stored or compared in
// plaintext. With an empty digest list the check is disabled, which is
// the development default.
func APIKeyMiddleware(digests []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(digests))
	for _, d := range digests {
		allowed[d] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(allowed) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get(APIKeyHeader)
			if key == "" {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "API key required")
				return
			}

			sum := sha256.Sum256([]byte(key))
			digest := hex.EncodeToString(sum[:])

			for candidate := range allowed {
				if subtle.ConstantTimeCompare([]byte(digest), []byte(candidate)) == 1 {
					next.ServeHTTP(w, r)
					return
				}
			}

			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid API key")
		})
	}
}
