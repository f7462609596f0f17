package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// TokenKey is the echo context key holding the caller's session token.
const TokenKey = "token"

// HeaderAuthToken is accepted as an alternative to a bearer Authorization
// header.
const HeaderAuthToken = "X-Auth-Token"

// Auth extracts the session token and injects it into the context. It does
// not resolve the token; the service rejects unknown tokens.
func Auth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := extractToken(c.Request())
			if err != nil {
				return err
			}
			c.Set(TokenKey, token)
			return next(c)
		}
	}
}

func extractToken(r *http.Request) (string, error) {
	if authHeader := r.Header.Get(echo.HeaderAuthorization); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
		}
		token := strings.TrimSpace(parts[1])
		if token == "" {
			return "", echo.NewHTTPError(http.StatusUnauthorized, "missing session token")
		}
		return token, nil
	}

	if token := strings.TrimSpace(r.Header.Get(HeaderAuthToken)); token != "" {
		return token, nil
	}
	return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
}
