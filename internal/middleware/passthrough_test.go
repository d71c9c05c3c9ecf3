package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domsolaire/solar-crm/internal/config"
)

// Without a Redis client both the limiter and the cache must degrade to
// no-ops instead of failing requests.

func TestTokenBucketPassthroughWithoutRedis(t *testing.T) {
	mw := NewTokenBucket(config.RateLimitConfig{Enabled: true, Capacity: 1}, nil)

	e := echo.New()
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/users/login", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		require.NoError(t, mw(okHandler)(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestTokenBucketPassthroughWhenDisabled(t *testing.T) {
	mw := NewTokenBucket(config.RateLimitConfig{Enabled: false}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/users/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}

func TestResponseCachePassthroughWithoutRedis(t *testing.T) {
	mw := NewResponseCache(config.CacheConfig{Enabled: true}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/milestones/upcoming", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, mw(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}
