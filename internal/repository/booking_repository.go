package repository

import (
    "context"
    "database/sql"
    "strings"
    "time"
)

// BookingRepo provides access to the booking aggregate: passengers,
// bookings, tickets and payments.  The four tables are always written
// together under one transaction, so the *Tx methods take an explicit
// *sql.Tx; the caller commits or rolls back.
type BookingRepo struct{ db *sql.DB }

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so callers can begin transactions.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// CreatePassengerTx inserts a passenger row and returns its ID.  Every
// booking gets a fresh passenger row; there is no lookup by email.
func (r *BookingRepo) CreatePassengerTx(ctx context.Context, tx *sql.Tx, name, email string) (uint64, error) {
    res, err := tx.ExecContext(ctx,
        "INSERT INTO passengers (name, email) VALUES (?,?)", name, email)
    if err != nil {
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// CreateBookingTx inserts a booking row referencing an existing passenger
// and schedule.  A nonexistent schedule trips the foreign key (MySQL 1452)
// and is reported as ErrScheduleNotFound.
func (r *BookingRepo) CreateBookingTx(ctx context.Context, tx *sql.Tx, passengerID, scheduleID uint64, bookingDate time.Time) (uint64, error) {
    res, err := tx.ExecContext(ctx,
        "INSERT INTO bookings (passenger_id, schedule_id, booking_date) VALUES (?,?,?)",
        passengerID, scheduleID, bookingDate.Format("2006-01-02"))
    if err != nil {
        if strings.Contains(err.Error(), "1452") {
            return 0, ErrScheduleNotFound
        }
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// CreateTicketTx inserts the ticket row for a booking.
func (r *BookingRepo) CreateTicketTx(ctx context.Context, tx *sql.Tx, bookingID uint64, seatNumber string, travelDate time.Time) error {
    _, err := tx.ExecContext(ctx,
        "INSERT INTO tickets (booking_id, seat_number, travel_date) VALUES (?,?,?)",
        bookingID, seatNumber, travelDate.Format("2006-01-02"))
    return err
}

// CreatePaymentTx inserts the payment row for a booking.
func (r *BookingRepo) CreatePaymentTx(ctx context.Context, tx *sql.Tx, bookingID uint64, amount float64, paymentDate time.Time, method string) error {
    _, err := tx.ExecContext(ctx,
        "INSERT INTO payments (booking_id, amount, payment_date, payment_method) VALUES (?,?,?,?)",
        bookingID, amount, paymentDate.UTC().Format("2006-01-02 15:04:05"), method)
    return err
}

// BookingDetail is the full joined view of one booking, matching the
// field names the API has always exposed.
type BookingDetail struct {
    BookingID       uint64  `json:"booking_id"`
    PassengerID     uint64  `json:"passenger_id"`
    ScheduleID      uint64  `json:"schedule_id"`
    BookingDate     string  `json:"booking_date"`
    Name            string  `json:"name"`
    Email           string  `json:"email"`
    TrainName       string  `json:"train_name"`
    SourceName      string  `json:"source_name"`
    DestinationName string  `json:"destination_name"`
    SeatNumber      string  `json:"seat_number"`
    TravelDate      string  `json:"travel_date"`
    Amount          float64 `json:"amount"`
    PaymentMethod   string  `json:"payment_method"`
}

// GetDetail returns the joined record for one booking, or sql.ErrNoRows
// when the booking does not exist.
func (r *BookingRepo) GetDetail(ctx context.Context, bookingID uint64) (*BookingDetail, error) {
    const q = `SELECT b.booking_id, b.passenger_id, b.schedule_id, b.booking_date,
                      p.name, p.email, ts.train_name,
                      s1.station_name, s2.station_name,
                      t.seat_number, t.travel_date, py.amount, py.payment_method
               FROM bookings b
               JOIN passengers p ON b.passenger_id = p.passenger_id
               JOIN train_schedule ts ON b.schedule_id = ts.schedule_id
               JOIN stations s1 ON ts.source_station_id = s1.station_id
               JOIN stations s2 ON ts.destination_station_id = s2.station_id
               JOIN tickets t ON b.booking_id = t.booking_id
               JOIN payments py ON b.booking_id = py.booking_id
               WHERE b.booking_id = ?`
    var d BookingDetail
    var bookingDate, travelDate time.Time
    err := r.db.QueryRowContext(ctx, q, bookingID).Scan(
        &d.BookingID, &d.PassengerID, &d.ScheduleID, &bookingDate,
        &d.Name, &d.Email, &d.TrainName,
        &d.SourceName, &d.DestinationName,
        &d.SeatNumber, &travelDate, &d.Amount, &d.PaymentMethod,
    )
    if err != nil {
        return nil, err
    }
    d.BookingDate = bookingDate.Format("2006-01-02")
    d.TravelDate = travelDate.Format("2006-01-02")
    return &d, nil
}

// BookingSummary is one row of the admin booking list.
type BookingSummary struct {
    BookingID     uint64  `json:"booking_id"`
    PassengerName string  `json:"passenger_name"`
    TrainName     string  `json:"train_name"`
    Source        string  `json:"source"`
    Destination   string  `json:"destination"`
    TravelDate    string  `json:"travel_date"`
    SeatNumber    string  `json:"seat_number"`
    Amount        float64 `json:"amount"`
}

// ListAll returns every booking joined with passenger, schedule, station,
// ticket and payment data, newest first.
func (r *BookingRepo) ListAll(ctx context.Context) ([]BookingSummary, error) {
    const q = `SELECT b.booking_id, p.name, ts.train_name,
                      s1.station_name, s2.station_name,
                      t.travel_date, t.seat_number, py.amount
               FROM bookings b
               JOIN passengers p ON b.passenger_id = p.passenger_id
               JOIN train_schedule ts ON b.schedule_id = ts.schedule_id
               JOIN stations s1 ON ts.source_station_id = s1.station_id
               JOIN stations s2 ON ts.destination_station_id = s2.station_id
               JOIN tickets t ON b.booking_id = t.booking_id
               JOIN payments py ON b.booking_id = py.booking_id
               ORDER BY b.booking_id DESC`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]BookingSummary, 0)
    for rows.Next() {
        var s BookingSummary
        var travelDate time.Time
        if err := rows.Scan(&s.BookingID, &s.PassengerName, &s.TrainName,
            &s.Source, &s.Destination, &travelDate, &s.SeatNumber, &s.Amount); err != nil {
            return nil, err
        }
        s.TravelDate = travelDate.Format("2006-01-02")
        out = append(out, s)
    }
    return out, rows.Err()
}

// Count returns the total number of bookings.
func (r *BookingRepo) Count(ctx context.Context) (int64, error) {
    var n int64
    err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM bookings").Scan(&n)
    return n, err
}
