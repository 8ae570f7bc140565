package auth

import (
	"net/http"
	"strings"

	"github.com/khata-app/khata-server/internal/platform/httpx"
	"github.com/khata-app/khata-server/internal/shared"
)

// RequireOwner resolves the Bearer token into an owner id in the request
// context. Missing or invalid credentials end the request with 401.
func RequireOwner(issuer *TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				httpx.RespondError(w, shared.ErrUnauthorized)
				return
			}
			ownerID, err := issuer.Verify(raw)
			if err != nil {
				httpx.RespondError(w, shared.ErrUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(shared.ContextWithOwner(r.Context(), ownerID)))
		})
	}
}
