package middleware // middleware provides shared request processing for handlers

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/train-reservation/internal/utils"
)

// RequireToken returns an Echo middleware that validates a bearer access
// token and injects the verified identity into the request context.  The
// provided secret must match the one used when issuing tokens.  Handlers
// behind this middleware can read `c.Get("username")` and
// `c.Get("is_admin")`.
//
// The Authorization header is expected as "<scheme> <token>"; a header
// with no second part is rejected the same way as a missing one.  All
// verification failures collapse into a single 401 response so callers
// cannot probe why a token was refused.
func RequireToken(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if auth == "" {
                return c.JSON(http.StatusUnauthorized, echo.Map{"message": "token is missing"})
            }
            parts := strings.Fields(auth)
            if len(parts) != 2 {
                return c.JSON(http.StatusUnauthorized, echo.Map{"message": "token is invalid"})
            }
            claims, err := utils.ParseAccessToken(secret, parts[1])
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"message": "token is invalid"})
            }
            c.Set("username", claims.Username)
            c.Set("is_admin", claims.IsAdmin)
            return next(c)
        }
    }
}
