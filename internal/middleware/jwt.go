package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
	"github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers
)

// Context keys set by JWTAuth.
const (
	ctxSubject = "subject"
	ctxRole    = "role"
)

// JWTAuth returns an Echo middleware that validates an HS256 Bearer token
// and stores its "sub" and "role" claims in the request context.  Tokens
// are issued outside this service; only the shared secret is known here.
func JWTAuth(secret string) echo.MiddlewareFunc {
	parser := newTokenParser()
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}
			claims, err := verifyToken(parser, secret, raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token").SetInternal(err)
			}

			sub, _ := claims.GetSubject()
			role, _ := claims["role"].(string)
			c.Set(ctxSubject, sub)
			c.Set(ctxRole, role)
			return next(c)
		}
	}
}

func newTokenParser() *jwt.Parser {
	return jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
}

// bearerToken extracts the JWT from an "Authorization: Bearer <jwt>" header.
func bearerToken(c echo.Context) (string, bool) {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(auth, "Bearer "), true
}

func verifyToken(parser *jwt.Parser, secret, raw string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	tok, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// subject returns the authenticated subject, or "anon" when the request
// carried no token.
func subject(c echo.Context) string {
	if s, ok := c.Get(ctxSubject).(string); ok && s != "" {
		return s
	}
	return "anon"
}
