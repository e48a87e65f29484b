package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() CreateBookingInput {
	return CreateBookingInput{
		PassengerName:  "Ravi Kumar",
		PassengerEmail: "ravi@example.com",
		ScheduleID:     3,
		SeatNumber:     "12A",
		TravelDate:     "2026-09-15",
		Amount:         500,
		PaymentMethod:  "card",
	}
}

func TestValidateInputAccepts(t *testing.T) {
	in := validInput()
	travelDate, err := validateInput(&in)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), travelDate)
}

func TestValidateInputTrims(t *testing.T) {
	in := validInput()
	in.PassengerName = "  Ravi Kumar  "
	in.SeatNumber = " 12A "
	_, err := validateInput(&in)
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", in.PassengerName)
	assert.Equal(t, "12A", in.SeatNumber)
}

func TestValidateInputRejections(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*CreateBookingInput)
		wantMsg string
	}{
		{"missing name", func(in *CreateBookingInput) { in.PassengerName = "   " }, "passenger_name"},
		{"missing email", func(in *CreateBookingInput) { in.PassengerEmail = "" }, "passenger_email"},
		{"zero schedule", func(in *CreateBookingInput) { in.ScheduleID = 0 }, "schedule_id"},
		{"missing seat", func(in *CreateBookingInput) { in.SeatNumber = "" }, "seat_number"},
		{"zero amount", func(in *CreateBookingInput) { in.Amount = 0 }, "amount"},
		{"negative amount", func(in *CreateBookingInput) { in.Amount = -10 }, "amount"},
		{"missing method", func(in *CreateBookingInput) { in.PaymentMethod = "" }, "payment_method"},
		{"bad date", func(in *CreateBookingInput) { in.TravelDate = "15-09-2026" }, "travel_date"},
		{"empty date", func(in *CreateBookingInput) { in.TravelDate = "" }, "travel_date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			_, err := validateInput(&in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}
