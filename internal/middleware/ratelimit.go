package middleware

import (
    "fmt"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/train-reservation/internal/config"
)

// NewRateLimiter returns a fixed-window request limiter backed by Redis.
// Each client IP gets cfg.Limit requests per cfg.Window per route; the
// counter key expires with the window.  When Redis is unavailable the
// limiter fails open so the API keeps serving.
func NewRateLimiter(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            key := fmt.Sprintf("%s:%s:%s", cfg.Prefix, c.RealIP(), c.Path())
            ctx := c.Request().Context()

            n, err := rdb.Incr(ctx, key).Result()
            if err != nil {
                return next(c) // fail open
            }
            if n == 1 {
                _ = rdb.Expire(ctx, key, cfg.Window).Err()
            }
            if n > int64(cfg.Limit) {
                ttl, _ := rdb.TTL(ctx, key).Result()
                if ttl > 0 {
                    c.Response().Header().Set("Retry-After", strconv.Itoa(int(ttl.Seconds())+1))
                }
                return c.JSON(http.StatusTooManyRequests, echo.Map{"message": "rate limit exceeded"})
            }
            return next(c)
        }
    }
}
