package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/yol1/scoring-system/internal/pkg/metrics"
	"github.com/yol1/scoring-system/internal/pkg/token"
)

// Context keys set by Auth.
const (
	ContextKeyClaims = "claims"
	ContextKeyRole   = "role"
)

const (
	msgTokenRequired = "Authentication token required"
	msgTokenInvalid  = "Invalid or expired token"
)

// TokenParser verifies a raw bearer token and returns its claims.
type TokenParser interface {
	Parse(raw string) (*token.Claims, error)
}

// Auth validates the bearer token and injects its claims into the context.
// A missing token is rejected with 401; a token that fails verification
// (bad signature, expired, malformed) is rejected with 403.
func Auth(parser TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				metrics.AccessDeniedTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, msgTokenRequired)
			}

			claims, err := parser.Parse(raw)
			if err != nil {
				metrics.AccessDeniedTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusForbidden, msgTokenInvalid)
			}

			c.Set(ContextKeyClaims, claims)
			c.Set(ContextKeyRole, claims.Role)

			return next(c)
		}
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Any other scheme counts as no token at all.
func bearerToken(header string) (string, bool) {
	scheme, raw, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}

// ClaimsFrom returns the claims injected by Auth, if any.
func ClaimsFrom(c echo.Context) (*token.Claims, bool) {
	claims, ok := c.Get(ContextKeyClaims).(*token.Claims)
	return claims, ok && claims != nil
}
