package booking

import (
	"time"

	"turfbook/internal/turf"
	"turfbook/internal/user"
)

type Booking struct {
	ID          int       `db:"id" json:"id"`
	UserID      int       `db:"user_id" json:"user_id"`
	TimeSlotID  int       `db:"timeslot_id" json:"timeslot_id"`
	DepositPaid bool      `db:"deposit_paid" json:"deposit_paid"`
	FullPaid    bool      `db:"full_paid" json:"full_paid"`
	BookedAt    time.Time `db:"booked_at" json:"booked_at"`
}

// Details is a booking enriched with its slot, turf and owner.
type Details struct {
	Booking       Booking       `json:"booking"`
	Slot          turf.Slot     `json:"slot"`
	Turf          turf.Turf     `json:"turf"`
	User          *user.Profile `json:"user,omitempty"`
	DepositAmount int           `json:"deposit_amount"`
	AmountPaid    int           `json:"amount_paid"`
}

type detailRow struct {
	Booking
	SlotStart    time.Time `db:"slot_start"`
	SlotEnd      time.Time `db:"slot_end"`
	SlotBooked   bool      `db:"slot_booked"`
	TurfID       int       `db:"turf_id"`
	TurfName     string    `db:"turf_name"`
	TurfLocation string    `db:"turf_location"`
	TurfPrice    int       `db:"turf_price"`
	UserEmail    string    `db:"user_email"`
	UserIsAdmin  bool      `db:"user_is_admin"`
}

func (r detailRow) details() Details {
	return Details{
		Booking: r.Booking,
		Slot: turf.Slot{
			ID:        r.TimeSlotID,
			TurfID:    r.TurfID,
			StartTime: r.SlotStart,
			EndTime:   r.SlotEnd,
			IsBooked:  r.SlotBooked,
		},
		Turf: turf.Turf{
			ID:           r.TurfID,
			Name:         r.TurfName,
			Location:     r.TurfLocation,
			PricePerSlot: r.TurfPrice,
		},
		User:          &user.Profile{ID: r.UserID, Email: r.UserEmail, IsAdmin: r.UserIsAdmin},
		DepositAmount: DepositAmount(r.TurfPrice),
		AmountPaid:    AmountPaid(r.Booking, r.TurfPrice),
	}
}

// DepositAmount is the advance due to confirm a booking: half the slot
// price, rounded up to the next minor unit.
func DepositAmount(price int) int {
	if price <= 0 {
		return 0
	}
	return (price + 1) / 2
}

// AmountPaid is what the operator has collected for b so far.
func AmountPaid(b Booking, price int) int {
	switch {
	case b.FullPaid:
		return price
	case b.DepositPaid:
		return DepositAmount(price)
	default:
		return 0
	}
}

type DashboardStats struct {
	TotalBookings    int `db:"total_bookings" json:"total_bookings" example:"42"`
	ActiveUsers      int `db:"active_users" json:"active_users" example:"17"`
	RevenueCollected int `db:"revenue_collected" json:"revenue_collected" example:"31500"`
	UpcomingBookings int `db:"upcoming_bookings" json:"upcoming_bookings" example:"6"`
}

type BookingPage struct {
	Slot          turf.Slot `json:"slot"`
	Turf          turf.Turf `json:"turf"`
	DepositAmount int       `json:"deposit_amount" example:"750"`
}

type BookSlotResponse struct {
	Success bool     `json:"success" example:"true"`
	Message string   `json:"message" example:"Booking confirmed"`
	Booking *Booking `json:"booking"`
}

type MarkPaidResponse struct {
	Success bool     `json:"success" example:"true"`
	Message string   `json:"message" example:"Marked as paid"`
	Booking *Booking `json:"booking"`
}

type BookingListResponse struct {
	Bookings []Details `json:"bookings"`
}
