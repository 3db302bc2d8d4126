package booking

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	slotColumns    = []string{"id", "turf_id", "start_time", "end_time", "is_booked"}
	bookingColumns = []string{"id", "user_id", "timeslot_id", "deposit_paid", "full_paid", "booked_at"}
	detailColumns  = []string{
		"id", "user_id", "timeslot_id", "deposit_paid", "full_paid", "booked_at",
		"slot_start", "slot_end", "slot_booked",
		"turf_id", "turf_name", "turf_location", "turf_price",
		"user_email", "user_is_admin",
	}
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestBookSlot_Commits(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	start := now.Add(time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, turf_id, start_time, end_time, is_booked FROM time_slots WHERE id = \$1 FOR UPDATE`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(slotColumns).AddRow(7, 2, start, start.Add(time.Hour), false))
	mock.ExpectExec(`UPDATE time_slots SET is_booked = TRUE WHERE id = \$1`).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO bookings .* VALUES \(\$1, \$2, TRUE\)`).
		WithArgs(3, 7).
		WillReturnRows(sqlmock.NewRows(bookingColumns).AddRow(11, 3, 7, true, false, now))
	mock.ExpectCommit()

	b, slot, err := repo.BookSlot(context.Background(), 3, 7, now)
	require.NoError(t, err)
	assert.Equal(t, 11, b.ID)
	assert.True(t, b.DepositPaid)
	assert.False(t, b.FullPaid)
	assert.Equal(t, 2, slot.TurfID)
	assert.True(t, slot.IsBooked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookSlot_AlreadyBooked(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM time_slots WHERE id = \$1 FOR UPDATE`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(slotColumns).AddRow(7, 2, now.Add(time.Hour), now.Add(2*time.Hour), true))
	mock.ExpectRollback()

	_, _, err := repo.BookSlot(context.Background(), 3, 7, now)
	assert.ErrorIs(t, err, ErrSlotAlreadyBooked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookSlot_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM time_slots WHERE id = \$1 FOR UPDATE`).
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, _, err := repo.BookSlot(context.Background(), 3, 99, time.Now())
	assert.ErrorIs(t, err, ErrSlotNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookSlot_InPast(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM time_slots WHERE id = \$1 FOR UPDATE`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(slotColumns).AddRow(7, 2, now.Add(-time.Hour), now, false))
	mock.ExpectRollback()

	_, _, err := repo.BookSlot(context.Background(), 3, 7, now)
	assert.ErrorIs(t, err, ErrSlotInPast)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookSlot_UniqueViolation(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM time_slots WHERE id = \$1 FOR UPDATE`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(slotColumns).AddRow(7, 2, now.Add(time.Hour), now.Add(2*time.Hour), false))
	mock.ExpectExec(`UPDATE time_slots`).WithArgs(7).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO bookings`).
		WithArgs(3, 7).
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	_, _, err := repo.BookSlot(context.Background(), 3, 7, now)
	assert.ErrorIs(t, err, ErrSlotAlreadyBooked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkFullPaid(t *testing.T) {
	now := time.Now()

	t.Run("changes flag", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`UPDATE bookings SET full_paid = TRUE WHERE id = \$1 AND full_paid = FALSE`).
			WithArgs(5).
			WillReturnRows(sqlmock.NewRows(bookingColumns).AddRow(5, 1, 2, true, true, now))

		b, changed, err := repo.MarkFullPaid(context.Background(), 5)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.True(t, b.FullPaid)
	})

	t.Run("already paid", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`UPDATE bookings`).WithArgs(5).WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery(`SELECT id, user_id, timeslot_id, deposit_paid, full_paid, booked_at FROM bookings WHERE id = \$1`).
			WithArgs(5).
			WillReturnRows(sqlmock.NewRows(bookingColumns).AddRow(5, 1, 2, true, true, now))

		b, changed, err := repo.MarkFullPaid(context.Background(), 5)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, 5, b.ID)
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`UPDATE bookings`).WithArgs(5).WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery(`SELECT .* FROM bookings WHERE id = \$1`).WithArgs(5).WillReturnError(sql.ErrNoRows)

		_, _, err := repo.MarkFullPaid(context.Background(), 5)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestListUpcoming_Enriches(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	start := now.Add(3 * time.Hour)

	mock.ExpectQuery(`FROM bookings b JOIN time_slots ts .* WHERE ts.is_booked = TRUE AND ts.start_time >= \$1 ORDER BY ts.start_time ASC`).
		WithArgs(now).
		WillReturnRows(sqlmock.NewRows(detailColumns).
			AddRow(1, 2, 3, true, false, now, start, start.Add(time.Hour), true, 4, "Blue Arena", "Uptown", 1801, "user@example.com", false))

	list, err := repo.ListUpcoming(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, list, 1)

	d := list[0]
	assert.Equal(t, 3, d.Slot.ID)
	assert.Equal(t, 4, d.Slot.TurfID)
	assert.Equal(t, "Blue Arena", d.Turf.Name)
	assert.Equal(t, "user@example.com", d.User.Email)
	assert.Equal(t, 901, d.DepositAmount)
	assert.Equal(t, 901, d.AmountPaid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAll_Empty(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`ORDER BY b.booked_at DESC`).WillReturnRows(sqlmock.NewRows(detailColumns))

	list, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestStats(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT COUNT\(b.id\) AS total_bookings`).
		WithArgs(now).
		WillReturnRows(sqlmock.NewRows([]string{"total_bookings", "active_users", "revenue_collected", "upcoming_bookings"}).
			AddRow(3, 2, 3300, 1))

	stats, err := repo.Stats(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, DashboardStats{TotalBookings: 3, ActiveUsers: 2, RevenueCollected: 3300, UpcomingBookings: 1}, *stats)
}

func TestStats_Error(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT COUNT`).WillReturnError(errors.New("boom"))

	_, err := repo.Stats(context.Background(), time.Now())
	assert.Error(t, err)
}
