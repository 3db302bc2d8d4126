package turf

import "context"

// SlotNotifier is told when the slot list of a turf changes.
type SlotNotifier interface {
	SlotsChanged(ctx context.Context, turfID int)
}

type NopNotifier struct{}

func (NopNotifier) SlotsChanged(context.Context, int) {}
