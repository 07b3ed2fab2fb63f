package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yol1/scoring-system/internal/api/middleware"
	"github.com/yol1/scoring-system/internal/pkg/token"
)

// ctxClaims returns the claims injected by the Auth middleware. Their absence
// means the route was mounted without Auth; the request is rejected as
// unauthenticated rather than served anonymously.
func ctxClaims(c echo.Context) (*token.Claims, error) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok || claims.Role == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Authentication token required")
	}
	return claims, nil
}
