// Package queue defines message payloads exchanged over the message broker
// and the background consumer that drains them.
package queue

// BookingCreatedEvent is published after a booking transaction commits.
// It carries enough information for downstream consumers to log, notify,
// or feed analytics without querying the primary database.
type BookingCreatedEvent struct {
    BookingID      uint64  `json:"booking_id"`
    ScheduleID     uint64  `json:"schedule_id"`
    PassengerName  string  `json:"passenger_name"`
    PassengerEmail string  `json:"passenger_email"`
    SeatNumber     string  `json:"seat_number"`
    TravelDate     string  `json:"travel_date"`
    Amount         float64 `json:"amount"`
    PaymentMethod  string  `json:"payment_method"`
    CreatedAt      string  `json:"created_at"`
}
