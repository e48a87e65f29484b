// Package service holds the booking orchestration logic and the event
// publisher.  Handlers stay thin; everything that spans more than one
// table lives here.
package service

import (
    "context"
    "errors"
    "fmt"
    "strings"
    "time"

    "github.com/iliyamo/train-reservation/internal/repository"
)

// ErrInvalidInput marks validation failures on booking input.  Handlers
// map it to HTTP 400; the wrapped message names the offending field.
var ErrInvalidInput = errors.New("invalid booking input")

// CreateBookingInput carries everything needed to book a seat.
type CreateBookingInput struct {
    PassengerName  string  `json:"passenger_name"`
    PassengerEmail string  `json:"passenger_email"`
    ScheduleID     uint64  `json:"schedule_id"`
    SeatNumber     string  `json:"seat_number"`
    TravelDate     string  `json:"travel_date"`
    Amount         float64 `json:"amount"`
    PaymentMethod  string  `json:"payment_method"`
}

// BookingService performs the four-step booking write: passenger, booking,
// ticket, payment.  All four inserts share one transaction committed at
// the end; any step failure rolls the whole booking back, so no orphaned
// partial rows survive.
type BookingService struct {
    bookings *repository.BookingRepo
}

// NewBookingService constructs a BookingService.
func NewBookingService(bookings *repository.BookingRepo) *BookingService {
    if bookings == nil {
        panic("nil repository passed to NewBookingService")
    }
    return &BookingService{bookings: bookings}
}

// CreateBooking validates the input and writes the booking aggregate.
// It returns the new booking ID.
func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (uint64, error) {
    travelDate, err := validateInput(&in)
    if err != nil {
        return 0, err
    }

    tx, err := s.bookings.DB().BeginTx(ctx, nil)
    if err != nil {
        return 0, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    passengerID, err := s.bookings.CreatePassengerTx(ctx, tx, in.PassengerName, in.PassengerEmail)
    if err != nil {
        return 0, err
    }
    now := time.Now().UTC()
    bookingID, err := s.bookings.CreateBookingTx(ctx, tx, passengerID, in.ScheduleID, now)
    if err != nil {
        return 0, err
    }
    if err := s.bookings.CreateTicketTx(ctx, tx, bookingID, in.SeatNumber, travelDate); err != nil {
        return 0, err
    }
    if err := s.bookings.CreatePaymentTx(ctx, tx, bookingID, in.Amount, now, in.PaymentMethod); err != nil {
        return 0, err
    }
    if err := tx.Commit(); err != nil {
        return 0, err
    }
    committed = true
    return bookingID, nil
}

// validateInput normalizes the input in place and parses the travel date.
func validateInput(in *CreateBookingInput) (time.Time, error) {
    in.PassengerName = strings.TrimSpace(in.PassengerName)
    in.PassengerEmail = strings.TrimSpace(in.PassengerEmail)
    in.SeatNumber = strings.TrimSpace(in.SeatNumber)
    in.PaymentMethod = strings.TrimSpace(in.PaymentMethod)

    switch {
    case in.PassengerName == "":
        return time.Time{}, fmt.Errorf("%w: passenger_name is required", ErrInvalidInput)
    case in.PassengerEmail == "":
        return time.Time{}, fmt.Errorf("%w: passenger_email is required", ErrInvalidInput)
    case in.ScheduleID == 0:
        return time.Time{}, fmt.Errorf("%w: schedule_id is required", ErrInvalidInput)
    case in.SeatNumber == "":
        return time.Time{}, fmt.Errorf("%w: seat_number is required", ErrInvalidInput)
    case in.Amount <= 0:
        return time.Time{}, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
    case in.PaymentMethod == "":
        return time.Time{}, fmt.Errorf("%w: payment_method is required", ErrInvalidInput)
    }
    travelDate, err := time.Parse("2006-01-02", in.TravelDate)
    if err != nil {
        return time.Time{}, fmt.Errorf("%w: travel_date must be YYYY-MM-DD", ErrInvalidInput)
    }
    return travelDate, nil
}
