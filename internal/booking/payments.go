package booking

import (
	"context"
	"errors"
	"fmt"

	"turfbook/internal/events"
)

// PaymentRecorder adapts the service to the payment event consumer.
// Unknown bookings are discarded instead of requeued.
func PaymentRecorder(svc Service) events.PaymentRecorderFunc {
	return func(ctx context.Context, bookingID int) error {
		_, err := svc.MarkPaid(ctx, bookingID, SourceEvent)
		if errors.Is(err, ErrBookingNotFound) {
			return fmt.Errorf("%w: booking %d: %v", events.ErrDiscard, bookingID, err)
		}
		return err
	}
}
