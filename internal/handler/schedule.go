package handler

import (
    "context"
    "errors"
    "log"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/train-reservation/internal/repository"
)

// ScheduleStore is the slice of the schedule repository the handlers need.
type ScheduleStore interface {
    List(ctx context.Context) ([]repository.ScheduleRow, error)
    GetByID(ctx context.Context, id uint64) (*repository.ScheduleRow, error)
    Create(ctx context.Context, in repository.NewSchedule) (uint64, error)
}

// ScheduleHandler exposes the train schedule catalog.
type ScheduleHandler struct {
    Schedules ScheduleStore
}

func NewScheduleHandler(schedules ScheduleStore) *ScheduleHandler {
    if schedules == nil {
        panic("nil schedule store passed to NewScheduleHandler")
    }
    return &ScheduleHandler{Schedules: schedules}
}

// List handles GET /api/schedules.  Degrades to an empty list on storage
// failure, matching the station catalog contract.
func (h *ScheduleHandler) List(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    schedules, err := h.Schedules.List(ctx)
    if err != nil {
        log.Printf("schedules: list failed: %v", err)
        return c.JSON(http.StatusInternalServerError, []repository.ScheduleRow{})
    }
    return c.JSON(http.StatusOK, schedules)
}

// Get handles GET /api/schedules/:id.
func (h *ScheduleHandler) Get(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid schedule id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    s, err := h.Schedules.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrScheduleNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"message": "schedule not found"})
        }
        log.Printf("schedules: get %d failed: %v", id, err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "error fetching schedule"})
    }
    return c.JSON(http.StatusOK, s)
}

// Create handles POST /api/schedules (admin only).
func (h *ScheduleHandler) Create(c echo.Context) error {
    var req repository.NewSchedule
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
    }
    if strings.TrimSpace(req.TrainName) == "" || req.SourceStationID == 0 || req.DestinationStationID == 0 ||
        req.DepartureTime == "" || req.ArrivalTime == "" || req.TotalSeats == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "all schedule fields are required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if _, err := h.Schedules.Create(ctx, req); err != nil {
        log.Printf("schedules: create failed: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to add schedule"})
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "schedule added successfully"})
}
