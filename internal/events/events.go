package events

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Routing keys on the topic exchange.
const (
	RKBookingCreated  = "booking.created"
	RKBookingPaid     = "booking.paid"
	RKPaymentFullPaid = "payment.full_paid"
)

// ErrDiscard marks a delivery that can never succeed and must not be requeued.
var ErrDiscard = errors.New("discard delivery")

type BookingCreated struct {
	EventID    string    `json:"event_id"`
	BookingID  int       `json:"booking_id"`
	UserID     int       `json:"user_id"`
	SlotID     int       `json:"slot_id"`
	TurfID     int       `json:"turf_id"`
	Start      time.Time `json:"start"`
	Deposit    int       `json:"deposit"`
	OccurredAt time.Time `json:"occurred_at"`
}

type BookingPaid struct {
	EventID    string    `json:"event_id"`
	BookingID  int       `json:"booking_id"`
	UserID     int       `json:"user_id"`
	Amount     int       `json:"amount"`
	Source     string    `json:"source"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PaymentFullPaid is emitted by the external payment verifier once the
// remaining balance of a booking has been confirmed.
type PaymentFullPaid struct {
	BookingID int `json:"booking_id"`
}

func NewEventID() string {
	return uuid.NewString()
}

func Unmarshal[T any](b []byte) (T, error) {
	var v T
	err := json.Unmarshal(b, &v)
	return v, err
}
