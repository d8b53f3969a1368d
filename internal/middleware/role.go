package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // http package defines standard HTTP status codes

	"github.com/labstack/echo/v4" // echo provides middleware chaining and context
)

// RoleAdmin is the role claim required to change or remove listings when
// the admin guard is enabled.
const RoleAdmin = "ADMIN"

// RequireRole returns a middleware that lets the request through only when
// JWTAuth stored one of roles in the context; anything else is a 403.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(ctxRole).(string)
			if !ok || !allowed[role] {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}

// AdminGuard protects edit submissions and deletes.  With an empty secret
// the guard is disabled and every request passes, matching an open
// directory; otherwise a valid token with the ADMIN role is required.
func AdminGuard(secret string) []echo.MiddlewareFunc {
	if secret == "" {
		return nil
	}
	return []echo.MiddlewareFunc{JWTAuth(secret), RequireRole(RoleAdmin)}
}
