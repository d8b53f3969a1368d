package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "s3cret"

func signToken(t *testing.T, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(method, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return tok
}

func runGuarded(t *testing.T, mws []echo.MiddlewareFunc, auth string) (int, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/venues/1", nil)
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	reached := false
	h := func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusNoContent)
	}
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	err := h(c)
	if err == nil {
		return c.Response().Status, reached
	}
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	return he.Code, reached
}

func TestAdminGuardDisabledWithoutSecret(t *testing.T) {
	assert.Nil(t, AdminGuard(""))
}

func TestAdminGuard(t *testing.T) {
	guard := AdminGuard(testSecret)
	exp := time.Now().Add(time.Hour).Unix()

	admin := signToken(t, jwt.SigningMethodHS256, jwt.MapClaims{"sub": "admin-1", "role": RoleAdmin, "exp": exp})
	viewer := signToken(t, jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u-2", "role": "VIEWER", "exp": exp})
	noExp := signToken(t, jwt.SigningMethodHS256, jwt.MapClaims{"sub": "admin-1", "role": RoleAdmin})
	expired := signToken(t, jwt.SigningMethodHS256, jwt.MapClaims{"sub": "admin-1", "role": RoleAdmin, "exp": time.Now().Add(-time.Minute).Unix()})
	wrongAlg := signToken(t, jwt.SigningMethodHS512, jwt.MapClaims{"sub": "admin-1", "role": RoleAdmin, "exp": exp})

	cases := []struct {
		name    string
		auth    string
		code    int
		reached bool
	}{
		{"admin", "Bearer " + admin, http.StatusNoContent, true},
		{"missing header", "", http.StatusUnauthorized, false},
		{"not bearer", "Basic " + admin, http.StatusUnauthorized, false},
		{"wrong role", "Bearer " + viewer, http.StatusForbidden, false},
		{"no expiry", "Bearer " + noExp, http.StatusUnauthorized, false},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, false},
		{"wrong algorithm", "Bearer " + wrongAlg, http.StatusUnauthorized, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, reached := runGuarded(t, guard, tc.auth)
			assert.Equal(t, tc.code, code)
			assert.Equal(t, tc.reached, reached)
		})
	}
}

func TestSubjectDefaultsToAnon(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Equal(t, "anon", subject(c))

	c.Set(ctxSubject, "admin-1")
	assert.Equal(t, "admin-1", subject(c))
}
