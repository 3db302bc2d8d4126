package booking

import (
	"context"
	"time"

	"turfbook/internal/turf"
)

type Repository interface {
	BookSlot(ctx context.Context, userID, slotID int, now time.Time) (*Booking, *turf.Slot, error)
	GetByID(ctx context.Context, id int) (*Booking, error)
	GetDetails(ctx context.Context, id int) (*Details, error)
	MarkFullPaid(ctx context.Context, id int) (*Booking, bool, error)
	ListByUser(ctx context.Context, userID int) ([]Details, error)
	ListAll(ctx context.Context) ([]Details, error)
	ListUpcoming(ctx context.Context, now time.Time) ([]Details, error)
	Stats(ctx context.Context, now time.Time) (*DashboardStats, error)
}
