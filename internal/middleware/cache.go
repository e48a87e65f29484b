package middleware

import (
    "bytes"
    "crypto/sha1"
    "fmt"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/train-reservation/internal/config"
)

// bodyCapture duplicates the response body into a buffer while forwarding
// it to the client, up to a configured limit.  Oversized responses are
// forwarded but not captured, which skips caching them.
type bodyCapture struct {
    http.ResponseWriter
    status  int
    buf     bytes.Buffer
    written int64
    limit   int64
}

func (w *bodyCapture) WriteHeader(code int) {
    w.status = code
    w.ResponseWriter.WriteHeader(code)
}

func (w *bodyCapture) Write(b []byte) (int, error) {
    w.written += int64(len(b))
    if w.written <= w.limit {
        w.buf.Write(b)
    }
    return w.ResponseWriter.Write(b)
}

// NewResponseCache caches successful JSON responses of GET endpoints in
// Redis.  Only status 200 bodies within the size limit are stored; any
// Redis error falls through to the live handler.  With a nil client or
// caching disabled, the middleware is a no-op.
func NewResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }
    ttl := cfg.TTL
    if ttl <= 0 {
        ttl = 30 * time.Second
    }
    limit := int64(cfg.MaxBodyBytes)
    if limit <= 0 {
        limit = 1 << 20
    }

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if c.Request().Method != http.MethodGet {
                return next(c)
            }
            key := cacheKey(cfg.Prefix, c)
            ctx := c.Request().Context()

            if body, err := rdb.Get(ctx, key).Bytes(); err == nil {
                return c.JSONBlob(http.StatusOK, body)
            }

            w := &bodyCapture{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: limit}
            c.Response().Writer = w
            if err := next(c); err != nil {
                return err
            }
            if w.status == http.StatusOK && w.written <= limit && w.buf.Len() > 0 {
                _ = rdb.Set(ctx, key, w.buf.Bytes(), ttl).Err()
            }
            return nil
        }
    }
}

// cacheKey hashes the concrete request path and query so key length stays
// bounded regardless of the request.  The URL path is used rather than the
// registered route pattern; requests hitting a parameterized route with
// different ids must not share an entry.
func cacheKey(prefix string, c echo.Context) string {
    sum := sha1.Sum([]byte(c.Request().URL.Path + "?" + c.Request().URL.RawQuery))
    return fmt.Sprintf("%s:%x", prefix, sum[:])
}
