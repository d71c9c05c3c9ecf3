package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/domsolaire/solar-crm/internal/config"
)

// bodyCapture duplicates the response body while it streams to the client so
// a successful payload can be stored afterwards.
type bodyCapture struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (w *bodyCapture) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// NewResponseCache caches successful GET responses in Redis for a short TTL.
// It is applied to the public share view and the dashboard milestone reads,
// which are all JSON and tolerate brief staleness. Only 200 responses are
// stored, so errors and expired share links are always re-evaluated. A nil
// Redis client disables the cache entirely.
func NewResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}

			sum := sha1.Sum([]byte(c.Request().URL.RequestURI()))
			key := fmt.Sprintf("%s:%x", cfg.Prefix, sum)

			if body, err := rdb.Get(c.Request().Context(), key).Bytes(); err == nil {
				c.Response().Header().Set("X-Cache", "HIT")
				return c.JSONBlob(http.StatusOK, body)
			}

			cw := &bodyCapture{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}
			if cw.status == http.StatusOK {
				// Write-through failures are ignored: serving beats caching.
				_ = rdb.SetEx(context.Background(), key, cw.buf.Bytes(), cfg.TTL).Err()
			}
			return nil
		}
	}
}
