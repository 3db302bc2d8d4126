package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"turfbook/internal/db"
	"turfbook/internal/turf"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrSlotNotFound      = turf.ErrSlotNotFound
	ErrSlotAlreadyBooked = errors.New("slot already booked")
	ErrSlotInPast        = errors.New("slot has already started")
	ErrBookingNotFound   = errors.New("booking not found")
)

const uniqueViolation = "23505"

const detailSelect = `
	SELECT
		b.id, b.user_id, b.timeslot_id, b.deposit_paid, b.full_paid, b.booked_at,
		ts.start_time AS slot_start, ts.end_time AS slot_end, ts.is_booked AS slot_booked,
		t.id AS turf_id, t.name AS turf_name, t.location AS turf_location, t.price_per_slot AS turf_price,
		u.email AS user_email, u.is_admin AS user_is_admin
	FROM bookings b
	JOIN time_slots ts ON ts.id = b.timeslot_id
	JOIN turfs t ON t.id = ts.turf_id
	JOIN users u ON u.id = b.user_id
`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// BookSlot locks the slot row, rejects it when taken or already started,
// flags it booked and records the booking with the deposit paid.
func (r *repository) BookSlot(ctx context.Context, userID, slotID int, now time.Time) (*Booking, *turf.Slot, error) {
	var (
		booking Booking
		slot    turf.Slot
	)

	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &slot, `
			SELECT id, turf_id, start_time, end_time, is_booked
			FROM time_slots
			WHERE id = $1
			FOR UPDATE
		`, slotID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSlotNotFound
		}
		if err != nil {
			return fmt.Errorf("lock slot: %w", err)
		}

		if slot.IsBooked {
			return ErrSlotAlreadyBooked
		}
		if !slot.StartTime.After(now) {
			return ErrSlotInPast
		}

		if _, err := tx.ExecContext(ctx, `UPDATE time_slots SET is_booked = TRUE WHERE id = $1`, slotID); err != nil {
			return fmt.Errorf("flag slot: %w", err)
		}

		err = tx.GetContext(ctx, &booking, `
			INSERT INTO bookings (user_id, timeslot_id, deposit_paid)
			VALUES ($1, $2, TRUE)
			RETURNING id, user_id, timeslot_id, deposit_paid, full_paid, booked_at
		`, userID, slotID)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
				return ErrSlotAlreadyBooked
			}
			return fmt.Errorf("insert booking: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	slot.IsBooked = true
	return &booking, &slot, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Booking, error) {
	query := `
		SELECT id, user_id, timeslot_id, deposit_paid, full_paid, booked_at
		FROM bookings
		WHERE id = $1
	`

	var b Booking
	err := r.db.GetContext(ctx, &b, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *repository) GetDetails(ctx context.Context, id int) (*Details, error) {
	var row detailRow
	err := r.db.GetContext(ctx, &row, detailSelect+` WHERE b.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}

	d := row.details()
	return &d, nil
}

// MarkFullPaid sets full_paid and reports whether this call changed it.
func (r *repository) MarkFullPaid(ctx context.Context, id int) (*Booking, bool, error) {
	query := `
		UPDATE bookings
		SET full_paid = TRUE
		WHERE id = $1 AND full_paid = FALSE
		RETURNING id, user_id, timeslot_id, deposit_paid, full_paid, booked_at
	`

	var b Booking
	err := r.db.GetContext(ctx, &b, query, id)
	if err == nil {
		return &b, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, err
	}

	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *repository) list(ctx context.Context, query string, args ...interface{}) ([]Details, error) {
	var rows []detailRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	out := make([]Details, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.details())
	}
	return out, nil
}

func (r *repository) ListByUser(ctx context.Context, userID int) ([]Details, error) {
	return r.list(ctx, detailSelect+` WHERE b.user_id = $1 ORDER BY ts.start_time DESC`, userID)
}

func (r *repository) ListAll(ctx context.Context) ([]Details, error) {
	return r.list(ctx, detailSelect+` ORDER BY b.booked_at DESC, b.id DESC`)
}

func (r *repository) ListUpcoming(ctx context.Context, now time.Time) ([]Details, error) {
	return r.list(ctx, detailSelect+` WHERE ts.is_booked = TRUE AND ts.start_time >= $1 ORDER BY ts.start_time ASC`, now)
}

// Stats counts revenue as the full price for fully paid bookings and the
// rounded-up half price for deposit-only ones.
func (r *repository) Stats(ctx context.Context, now time.Time) (*DashboardStats, error) {
	query := `
		SELECT
			COUNT(b.id) AS total_bookings,
			COUNT(DISTINCT b.user_id) AS active_users,
			COALESCE(SUM(
				CASE
					WHEN b.full_paid THEN t.price_per_slot
					WHEN b.deposit_paid THEN (t.price_per_slot + 1) / 2
					ELSE 0
				END
			), 0) AS revenue_collected,
			COUNT(b.id) FILTER (WHERE ts.start_time >= $1) AS upcoming_bookings
		FROM bookings b
		JOIN time_slots ts ON ts.id = b.timeslot_id
		JOIN turfs t ON t.id = ts.turf_id
	`

	var stats DashboardStats
	if err := r.db.GetContext(ctx, &stats, query, now); err != nil {
		return nil, err
	}

	return &stats, nil
}
