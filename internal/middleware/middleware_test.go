package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bucketlist-service/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newContext(auth string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestResolveIdentity(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")

	// missing header
	_, err := ResolveIdentity("")
	require.ErrorIs(t, err, ErrMissingToken)
	_, err = ResolveIdentity("   ")
	require.ErrorIs(t, err, ErrMissingToken)

	// garbage token
	_, err = ResolveIdentity("not-a-token")
	require.ErrorIs(t, err, service.ErrTokenMalformed)

	// raw token, no prefix
	tok, err := service.IssueAccessToken(1, time.Minute)
	require.NoError(t, err)
	claims, err := ResolveIdentity(tok)
	require.NoError(t, err)
	require.Equal(t, 1, claims.UserID)

	// Bearer prefix tolerated
	claims, err = ResolveIdentity("Bearer " + tok)
	require.NoError(t, err)
	require.Equal(t, 1, claims.UserID)

	// expired token classified
	expired, err := service.IssueAccessToken(1, -time.Minute)
	require.NoError(t, err)
	_, err = ResolveIdentity(expired)
	require.ErrorIs(t, err, service.ErrTokenExpired)
}

func TestRequireAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	tok, err := service.IssueAccessToken(2, time.Minute)
	require.NoError(t, err)

	// success path
	ctx, rec := newContext(tok)
	called := false
	handler := RequireAuth(func(c echo.Context) error {
		called = true
		cl := c.Get(ContextUserKey).(*service.Claims)
		require.Equal(t, 2, cl.UserID)
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, handler(ctx))
	require.True(t, called)
	require.Equal(t, http.StatusOK, rec.Code)

	// missing token
	ctx, _ = newContext("")
	called = false
	err = RequireAuth(func(echo.Context) error { called = true; return nil })(ctx)
	require.Error(t, err)
	require.False(t, called)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, httpErr.Code)
	require.Equal(t, "Failed! You must be logged in to continue.", httpErr.Message)

	// expired token
	expired, err := service.IssueAccessToken(2, -time.Minute)
	require.NoError(t, err)
	ctx, _ = newContext(expired)
	err = RequireAuth(func(echo.Context) error { return nil })(ctx)
	httpErr, ok = err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, httpErr.Code)
	require.Equal(t, "Token is expired! Login again.", httpErr.Message)

	// invalid token
	ctx, _ = newContext("garbage")
	err = RequireAuth(func(echo.Context) error { return nil })(ctx)
	httpErr, ok = err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, httpErr.Code)
	require.Equal(t, "Invalid token! Login again or register.", httpErr.Message)
}
