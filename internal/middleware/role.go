package middleware

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// RequireAdmin returns a middleware that enforces the is_admin claim set
// by RequireToken.  A valid token without the admin flag is rejected with
// 403 Forbidden; a missing flag (RequireToken not applied first) is
// treated the same way.
func RequireAdmin() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            isAdmin, ok := c.Get("is_admin").(bool)
            if !ok || !isAdmin {
                return c.JSON(http.StatusForbidden, echo.Map{"message": "admin access required"})
            }
            return next(c)
        }
    }
}
