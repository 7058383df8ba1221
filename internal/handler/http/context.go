package http

import (
	"net/http"
	"strings"

	"github.com/teamclock/attendance-api/internal/handler/http/middleware"
	"github.com/teamclock/attendance-api/internal/pkg/jwt"
)

// currentClaims returns the identity resolved by middleware.AuthRequired.
func currentClaims(r *http.Request) (jwt.Claims, bool) {
	return middleware.ClaimsFromContext(r.Context())
}

// optionalQuery returns nil for an absent or blank query parameter.
func optionalQuery(r *http.Request, key string) *string {
	val := strings.TrimSpace(r.URL.Query().Get(key))
	if val == "" {
		return nil
	}
	return &val
}
