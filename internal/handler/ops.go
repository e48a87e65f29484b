package handler

import (
    "context"
    "database/sql"
    "log"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/train-reservation/internal/config"
    "github.com/iliyamo/train-reservation/internal/database"
)

// OpsHandler exposes administrative maintenance operations.
type OpsHandler struct {
    Cfg config.Config
    DB  *sql.DB
}

func NewOpsHandler(cfg config.Config, db *sql.DB) *OpsHandler {
    if db == nil {
        panic("nil database passed to NewOpsHandler")
    }
    return &OpsHandler{Cfg: cfg, DB: db}
}

// InitDB handles POST /api/admin/init-db.  It creates the schema and
// seeds reference data.  The operation is idempotent and sits behind the
// admin middleware; it is not a public route.
func (h *OpsHandler) InitDB(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 60*time.Second)
    defer cancel()

    if err := database.Bootstrap(ctx, h.DB, h.Cfg.BcryptCost); err != nil {
        log.Printf("ops: bootstrap failed: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "database initialization failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "database initialized"})
}
