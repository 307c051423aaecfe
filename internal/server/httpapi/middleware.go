package httpapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	accountIDContextKey = "account_id"
	roleContextKey      = "account_role"
)

// requireToken verifies the bearer token and stores the subject and role in
// the request context. It deliberately does not touch the store: token
// validity is purely cryptographic and time-based.
func (s *Server) requireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return c.JSON(http.StatusUnauthorized, errorResponse{Code: "missing_token", Error: "missing authorization header"})
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.JSON(http.StatusUnauthorized, errorResponse{Code: "invalid_token", Error: "invalid authorization header"})
		}

		claims, err := s.issuer.Verify(parts[1])
		if err != nil {
			return c.JSON(http.StatusUnauthorized, errorResponse{Code: "invalid_token", Error: "invalid or expired token"})
		}

		c.Set(accountIDContextKey, claims.Subject)
		c.Set(roleContextKey, claims.Role)
		return next(c)
	}
}
