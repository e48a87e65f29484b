package handler

import (
    "context"
    "log"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/train-reservation/internal/repository"
)

// StationStore is the slice of the station repository the handlers need.
type StationStore interface {
    List(ctx context.Context) ([]repository.StationRow, error)
    Create(ctx context.Context, name, code string) (uint64, error)
}

// StationHandler exposes the station catalog.
type StationHandler struct {
    Stations StationStore
}

func NewStationHandler(stations StationStore) *StationHandler {
    if stations == nil {
        panic("nil station store passed to NewStationHandler")
    }
    return &StationHandler{Stations: stations}
}

type createStationReq struct {
    StationName string `json:"station_name"`
    Code        string `json:"code"`
}

// List handles GET /api/stations.  On storage failure it degrades to an
// empty list with a 500 status; existing clients rely on always receiving
// an array here.
func (h *StationHandler) List(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    stations, err := h.Stations.List(ctx)
    if err != nil {
        log.Printf("stations: list failed: %v", err)
        return c.JSON(http.StatusInternalServerError, []repository.StationRow{})
    }
    return c.JSON(http.StatusOK, stations)
}

// Create handles POST /api/stations (admin only).
func (h *StationHandler) Create(c echo.Context) error {
    var req createStationReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
    }
    if strings.TrimSpace(req.StationName) == "" || strings.TrimSpace(req.Code) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "station_name/code required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if _, err := h.Stations.Create(ctx, req.StationName, req.Code); err != nil {
        log.Printf("stations: create failed: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to add station"})
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "station added successfully"})
}
