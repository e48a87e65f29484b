package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-reservation/internal/handler"
	"github.com/iliyamo/train-reservation/internal/middleware"
)

// RegisterRoutes registers routes that do not belong to the /api surface.
// Currently it exposes only a health check used by load balancers and
// monitoring systems.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints.  Login and signup
// are open; /api/me sits behind the token middleware alone so any valid
// token (admin or not) can call it.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/api")
	g.POST("/admin/login", a.AdminLogin)
	g.POST("/login", a.Login)
	g.POST("/signup", a.Signup)
	g.GET("/me", a.Me, middleware.RequireToken(jwtSecret))
}

// RegisterCatalog registers the station and schedule endpoints.  Reads are
// public and wrapped by the response cache; writes require an admin token.
func RegisterCatalog(e *echo.Echo, st *handler.StationHandler, sc *handler.ScheduleHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group("/api")
	g.GET("/stations", st.List, cache)
	g.GET("/schedules", sc.List, cache)
	g.GET("/schedules/:id", sc.Get, cache)

	admin := e.Group("/api", middleware.RequireToken(jwtSecret), middleware.RequireAdmin())
	admin.POST("/stations", st.Create)
	admin.POST("/schedules", sc.Create)
}

// RegisterBookings registers the booking endpoints.  Creating a booking
// and fetching one by ID are open; the full list and the count are
// admin-only.  The static /bookings/count route is registered alongside
// the parameterized one; Echo resolves the static path first.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
	g := e.Group("/api")
	g.POST("/bookings", b.Create)
	g.GET("/bookings/:id", b.Get)

	admin := e.Group("/api", middleware.RequireToken(jwtSecret), middleware.RequireAdmin())
	admin.GET("/bookings", b.ListAll)
	admin.GET("/bookings/count", b.Count)
}

// RegisterFeedback registers feedback submission (open) and the admin
// feedback listing.
func RegisterFeedback(e *echo.Echo, f *handler.FeedbackHandler, jwtSecret string) {
	e.POST("/api/feedback", f.Create)

	admin := e.Group("/api/admin", middleware.RequireToken(jwtSecret), middleware.RequireAdmin())
	admin.GET("/feedbacks", f.ListAll)
}

// RegisterOps registers administrative maintenance routes.  The database
// bootstrap requires an admin token.
func RegisterOps(e *echo.Echo, o *handler.OpsHandler, jwtSecret string) {
	admin := e.Group("/api/admin", middleware.RequireToken(jwtSecret), middleware.RequireAdmin())
	admin.POST("/init-db", o.InitDB)
}
