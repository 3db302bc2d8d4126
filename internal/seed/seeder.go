package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"turfbook/internal/auth"
	"turfbook/internal/db"
	"turfbook/internal/logger"
	"turfbook/internal/turf"

	"github.com/jmoiron/sqlx"
)

// Result counts the rows written by a seed run.
type Result struct {
	Users    int
	Turfs    int
	Slots    int
	Bookings int
}

type Seeder struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewSeeder(conn *sqlx.DB) *Seeder {
	return &Seeder{db: conn, now: time.Now}
}

// Run writes f in one transaction. With reset, existing rows in all four
// tables are removed first. Users are upserted by email so repeated runs
// without reset keep working.
func (s *Seeder) Run(ctx context.Context, f *Fixture, reset bool) (*Result, error) {
	base := s.now().UTC().Truncate(time.Hour)
	res := &Result{}

	err := db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if reset {
			if _, err := tx.ExecContext(ctx, `TRUNCATE bookings, time_slots, turfs, users RESTART IDENTITY CASCADE`); err != nil {
				return fmt.Errorf("reset tables: %w", err)
			}
		}

		userIDs := make(map[string]int, len(f.Users))
		for _, u := range f.Users {
			email := strings.ToLower(strings.TrimSpace(u.Email))
			hash, err := auth.HashPassword(u.Password)
			if err != nil {
				return err
			}

			var id int
			err = tx.GetContext(ctx, &id, `
				INSERT INTO users (email, password_hash, is_admin)
				VALUES ($1, $2, $3)
				ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash, is_admin = EXCLUDED.is_admin
				RETURNING id`,
				email, hash, u.Admin)
			if err != nil {
				return fmt.Errorf("seed user %s: %w", email, err)
			}
			userIDs[email] = id
			res.Users++
		}

		for _, t := range f.Turfs {
			var turfID int
			err := tx.GetContext(ctx, &turfID, `
				INSERT INTO turfs (name, location, price_per_slot)
				VALUES ($1, $2, $3)
				RETURNING id`,
				t.Name, t.Location, t.PricePerSlot)
			if err != nil {
				return fmt.Errorf("seed turf %s: %w", t.Name, err)
			}
			res.Turfs++

			for _, sl := range t.Slots {
				start := base.Add(sl.Offset)
				booked := sl.BookedBy != ""

				var slotID int
				err := tx.GetContext(ctx, &slotID, `
					INSERT INTO time_slots (turf_id, start_time, end_time, is_booked)
					VALUES ($1, $2, $3, $4)
					RETURNING id`,
					turfID, start, start.Add(turf.SlotDuration), booked)
				if err != nil {
					return fmt.Errorf("seed slot for %s: %w", t.Name, err)
				}
				res.Slots++

				if !booked {
					continue
				}
				_, err = tx.ExecContext(ctx, `
					INSERT INTO bookings (user_id, timeslot_id, deposit_paid, full_paid)
					VALUES ($1, $2, TRUE, $3)`,
					userIDs[strings.ToLower(sl.BookedBy)], slotID, sl.FullPaid)
				if err != nil {
					return fmt.Errorf("seed booking for slot %d: %w", slotID, err)
				}
				res.Bookings++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("seed complete",
		"users", res.Users,
		"turfs", res.Turfs,
		"slots", res.Slots,
		"bookings", res.Bookings,
	)
	return res, nil
}
