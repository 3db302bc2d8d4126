package turf

import (
	"context"
	"time"
)

type Repository interface {
	CreateTurf(ctx context.Context, name, location string, pricePerSlot int) (*Turf, error)
	ListTurfs(ctx context.Context) ([]Turf, error)
	GetTurfByID(ctx context.Context, id int) (*Turf, error)
	CreateSlot(ctx context.Context, turfID int, start, end time.Time) (*Slot, error)
	ListSlots(ctx context.Context, turfID int) ([]Slot, error)
	GetSlotByID(ctx context.Context, id int) (*Slot, error)
}
