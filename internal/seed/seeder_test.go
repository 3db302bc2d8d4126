package seed

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSeeder(t *testing.T) (*Seeder, sqlmock.Sqlmock, time.Time) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	now := time.Date(2026, 3, 1, 9, 42, 0, 0, time.UTC)
	s := NewSeeder(sqlx.NewDb(conn, "sqlmock"))
	s.now = func() time.Time { return now }
	return s, mock, now.Truncate(time.Hour)
}

func TestSeeder_Run(t *testing.T) {
	s, mock, base := newTestSeeder(t)

	f, err := Parse([]byte(`
users:
  - email: Player@Example.com
    password: player1
turfs:
  - name: Pitch
    location: North
    price_per_slot: 900
    slots:
      - offset: 2h
        booked_by: player@example.com
      - offset: 3h
`))
	require.NoError(t, err)

	start := base.Add(2 * time.Hour)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("TRUNCATE bookings, time_slots, turfs, users RESTART IDENTITY CASCADE")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("player@example.com", sqlmock.AnyArg(), false).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
	mock.ExpectQuery("INSERT INTO turfs").
		WithArgs("Pitch", "North", 900).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery("INSERT INTO time_slots").
		WithArgs(1, start, start.Add(time.Hour), true).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(4, 10, false).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("INSERT INTO time_slots").
		WithArgs(1, base.Add(3*time.Hour), base.Add(4*time.Hour), false).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	res, err := s.Run(context.Background(), f, true)
	require.NoError(t, err)
	assert.Equal(t, &Result{Users: 1, Turfs: 1, Slots: 2, Bookings: 1}, res)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeeder_RollsBackOnError(t *testing.T) {
	s, mock, _ := newTestSeeder(t)

	f, err := Parse([]byte("turfs:\n  - name: Pitch\n    location: North\n    price_per_slot: 900\n"))
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO turfs").WillReturnError(errors.New("relation does not exist"))
	mock.ExpectRollback()

	_, err = s.Run(context.Background(), f, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed turf Pitch")
	assert.NoError(t, mock.ExpectationsWereMet())
}
