package turf

import (
	"context"
	"errors"
	"time"
)

var ErrSlotInPast = errors.New("slot must start in the future")

type Service interface {
	ListTurfs(ctx context.Context) ([]Turf, error)
	GetTurf(ctx context.Context, id int) (*Turf, error)
	ListSlots(ctx context.Context, turfID int) ([]SlotView, error)
	SlotViews(ctx context.Context, turfID int) ([]SlotView, error)
	GetSlot(ctx context.Context, id int) (*Slot, error)
	CreateTurf(ctx context.Context, req CreateTurfRequest) (*Turf, error)
	CreateSlot(ctx context.Context, turfID int, req CreateSlotRequest) (*Slot, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *service) ListTurfs(ctx context.Context) ([]Turf, error) {
	return s.repo.ListTurfs(ctx)
}

func (s *service) GetTurf(ctx context.Context, id int) (*Turf, error) {
	return s.repo.GetTurfByID(ctx, id)
}

// ListSlots returns the slot list of an existing turf.
func (s *service) ListSlots(ctx context.Context, turfID int) ([]SlotView, error) {
	if _, err := s.repo.GetTurfByID(ctx, turfID); err != nil {
		return nil, err
	}
	return s.SlotViews(ctx, turfID)
}

// SlotViews returns the ordered slot list pushed to live watchers. Unknown
// or zero turf ids yield an empty list rather than an error.
func (s *service) SlotViews(ctx context.Context, turfID int) ([]SlotView, error) {
	if turfID <= 0 {
		return []SlotView{}, nil
	}

	slots, err := s.repo.ListSlots(ctx, turfID)
	if err != nil {
		return nil, err
	}

	return Views(slots), nil
}

func (s *service) GetSlot(ctx context.Context, id int) (*Slot, error) {
	return s.repo.GetSlotByID(ctx, id)
}

func (s *service) CreateTurf(ctx context.Context, req CreateTurfRequest) (*Turf, error) {
	return s.repo.CreateTurf(ctx, req.Name, req.Location, req.PricePerSlot)
}

func (s *service) CreateSlot(ctx context.Context, turfID int, req CreateSlotRequest) (*Slot, error) {
	if !req.StartTime.After(s.now()) {
		return nil, ErrSlotInPast
	}

	if _, err := s.repo.GetTurfByID(ctx, turfID); err != nil {
		return nil, err
	}

	start := req.StartTime.UTC()
	return s.repo.CreateSlot(ctx, turfID, start, start.Add(SlotDuration))
}
