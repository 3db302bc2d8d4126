package turf

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var (
	ErrTurfNotFound = errors.New("turf not found")
	ErrSlotNotFound = errors.New("slot not found")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateTurf(ctx context.Context, name, location string, pricePerSlot int) (*Turf, error) {
	query := `
		INSERT INTO turfs (name, location, price_per_slot)
		VALUES ($1, $2, $3)
		RETURNING id, name, location, price_per_slot
	`

	var t Turf
	if err := r.db.GetContext(ctx, &t, query, name, location, pricePerSlot); err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *repository) ListTurfs(ctx context.Context) ([]Turf, error) {
	query := `
		SELECT id, name, location, price_per_slot
		FROM turfs
		ORDER BY id ASC
	`

	turfs := []Turf{}
	if err := r.db.SelectContext(ctx, &turfs, query); err != nil {
		return nil, err
	}

	return turfs, nil
}

func (r *repository) GetTurfByID(ctx context.Context, id int) (*Turf, error) {
	query := `
		SELECT id, name, location, price_per_slot
		FROM turfs
		WHERE id = $1
	`

	var t Turf
	err := r.db.GetContext(ctx, &t, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTurfNotFound
	}
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *repository) CreateSlot(ctx context.Context, turfID int, start, end time.Time) (*Slot, error) {
	query := `
		INSERT INTO time_slots (turf_id, start_time, end_time)
		VALUES ($1, $2, $3)
		RETURNING id, turf_id, start_time, end_time, is_booked
	`

	var s Slot
	if err := r.db.GetContext(ctx, &s, query, turfID, start, end); err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) ListSlots(ctx context.Context, turfID int) ([]Slot, error) {
	query := `
		SELECT id, turf_id, start_time, end_time, is_booked
		FROM time_slots
		WHERE turf_id = $1
		ORDER BY start_time ASC, id ASC
	`

	slots := []Slot{}
	if err := r.db.SelectContext(ctx, &slots, query, turfID); err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *repository) GetSlotByID(ctx context.Context, id int) (*Slot, error) {
	query := `
		SELECT id, turf_id, start_time, end_time, is_booked
		FROM time_slots
		WHERE id = $1
	`

	var s Slot
	err := r.db.GetContext(ctx, &s, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}
