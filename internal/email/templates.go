package email

import (
	"context"
	"fmt"
	"time"
)

const (
	KindBookingConfirmation = "booking_confirmation"
	KindPaymentReceipt      = "payment_receipt"
)

// BookingNotice carries what a booking email needs to render.
type BookingNotice struct {
	BookingID int
	TurfName  string
	Location  string
	Start     time.Time
	Price     int
	Deposit   int
}

const whenLayout = "Jan 2, 2006 at 3:04 PM MST"

func (s *Service) SendBookingConfirmation(ctx context.Context, to string, n BookingNotice) error {
	subject := fmt.Sprintf("Booking #%d confirmed - %s", n.BookingID, n.TurfName)
	body := fmt.Sprintf(`Hi,

Your slot is reserved.

Turf: %s (%s)
Time: %s
Advance paid: %d
Due at the turf: %d

Please keep your booking number (#%d) for the remaining payment.

- TurfBook`, n.TurfName, n.Location, n.Start.Format(whenLayout), n.Deposit, n.Price-n.Deposit, n.BookingID)

	return s.Send(ctx, to, KindBookingConfirmation, subject, body)
}

func (s *Service) SendPaymentReceipt(ctx context.Context, to string, n BookingNotice) error {
	subject := fmt.Sprintf("Payment received - booking #%d", n.BookingID)
	body := fmt.Sprintf(`Hi,

We received the full payment for your booking.

Turf: %s (%s)
Time: %s
Total paid: %d

See you on the field!

- TurfBook`, n.TurfName, n.Location, n.Start.Format(whenLayout), n.Price)

	return s.Send(ctx, to, KindPaymentReceipt, subject, body)
}
