package handler

import (
    "context"
    "database/sql"
    "errors"
    "log"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/train-reservation/internal/queue"
    "github.com/iliyamo/train-reservation/internal/repository"
    "github.com/iliyamo/train-reservation/internal/service"
)

// BookingCreator is the orchestration interface the create endpoint
// depends on.  *service.BookingService satisfies it.
type BookingCreator interface {
    CreateBooking(ctx context.Context, in service.CreateBookingInput) (uint64, error)
}

// BookingStore is the read side of the booking aggregate.
type BookingStore interface {
    GetDetail(ctx context.Context, bookingID uint64) (*repository.BookingDetail, error)
    ListAll(ctx context.Context) ([]repository.BookingSummary, error)
    Count(ctx context.Context) (int64, error)
}

// BookingHandler exposes booking creation and lookup.
type BookingHandler struct {
    Creator  BookingCreator
    Bookings BookingStore
}

func NewBookingHandler(creator BookingCreator, bookings BookingStore) *BookingHandler {
    if creator == nil || bookings == nil {
        panic("nil dependency passed to NewBookingHandler")
    }
    return &BookingHandler{Creator: creator, Bookings: bookings}
}

// Create handles POST /api/bookings.  The orchestrator writes passenger,
// booking, ticket and payment under one transaction; on success a
// booking.created event is published best-effort.
func (h *BookingHandler) Create(c echo.Context) error {
    var req service.CreateBookingInput
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    bookingID, err := h.Creator.CreateBooking(ctx, req)
    if err != nil {
        if errors.Is(err, service.ErrInvalidInput) {
            return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
        }
        if errors.Is(err, repository.ErrScheduleNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"message": "schedule not found"})
        }
        log.Printf("bookings: create failed: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to create booking"})
    }

    // Publish off the request path; delivery failures are logged inside
    // the publisher and otherwise ignored.
    event := queue.BookingCreatedEvent{
        BookingID:      bookingID,
        ScheduleID:     req.ScheduleID,
        PassengerName:  req.PassengerName,
        PassengerEmail: req.PassengerEmail,
        SeatNumber:     req.SeatNumber,
        TravelDate:     req.TravelDate,
        Amount:         req.Amount,
        PaymentMethod:  req.PaymentMethod,
        CreatedAt:      time.Now().UTC().Format(time.RFC3339),
    }
    go func() {
        pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
        defer pubCancel()
        _ = service.PublishBookingCreated(pubCtx, event)
    }()

    return c.JSON(http.StatusOK, echo.Map{
        "message":    "booking created successfully",
        "booking_id": bookingID,
    })
}

// Get handles GET /api/bookings/:id.  An absent booking answers 404 with
// an empty object, which existing clients expect.
func (h *BookingHandler) Get(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid booking id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    detail, err := h.Bookings.GetDetail(ctx, id)
    if err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{})
        }
        log.Printf("bookings: get %d failed: %v", id, err)
        return c.JSON(http.StatusInternalServerError, echo.Map{})
    }
    return c.JSON(http.StatusOK, detail)
}

// ListAll handles GET /api/bookings (admin only).  Degrades to an empty
// list on storage failure.
func (h *BookingHandler) ListAll(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    bookings, err := h.Bookings.ListAll(ctx)
    if err != nil {
        log.Printf("bookings: list failed: %v", err)
        return c.JSON(http.StatusInternalServerError, []repository.BookingSummary{})
    }
    return c.JSON(http.StatusOK, bookings)
}

// Count handles GET /api/bookings/count (admin only).
func (h *BookingHandler) Count(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    n, err := h.Bookings.Count(ctx)
    if err != nil {
        log.Printf("bookings: count failed: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"count": 0})
    }
    return c.JSON(http.StatusOK, echo.Map{"count": n})
}
