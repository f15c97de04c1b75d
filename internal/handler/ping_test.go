package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bucketlist-service/internal/cache"
	"bucketlist-service/internal/database"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newPingCtx() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestPingHandler(t *testing.T) {
	// database unhealthy
	ctx, rec := newPingCtx()
	db := &database.FakeDB{PingFn: func(context.Context) error { return errors.New("down") }}
	require.NoError(t, PingHandler(db, &cache.FakeCache{})(ctx))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "database unhealthy")

	// cache unhealthy
	ctx, rec = newPingCtx()
	db = &database.FakeDB{PingFn: func(context.Context) error { return nil }}
	cch := &cache.FakeCache{
		SetFn: func(context.Context, string, any, time.Duration) *redis.StatusCmd {
			return redis.NewStatusResult("", errors.New("down"))
		},
	}
	require.NoError(t, PingHandler(db, cch)(ctx))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "cache unhealthy")

	// healthy
	ctx, rec = newPingCtx()
	cch = &cache.FakeCache{
		SetFn: func(_ context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
			require.Equal(t, "ping", key)
			require.Equal(t, "pong", value)
			require.Equal(t, 10*time.Second, ttl)
			return redis.NewStatusResult("OK", nil)
		},
	}
	require.NoError(t, PingHandler(db, cch)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "pong")
}
