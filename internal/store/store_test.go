package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindwell-api/internal/model"
)

func newMockStore(t *testing.T) (*Store, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return New(mock), mock
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("u1", "a@b.test", "hash", "Ada").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := st.CreateUser(context.Background(), &model.User{
		ID: "u1", Email: "a@b.test", PasswordHash: "hash", Name: "Ada",
	})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUserByEmailNotFound(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery("SELECT id, email, password_hash").
		WithArgs("missing@b.test").
		WillReturnError(pgx.ErrNoRows)

	_, err := st.UserByEmail(context.Background(), "missing@b.test")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateAppointmentSlotRace(t *testing.T) {
	st, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectExec("INSERT INTO appointments").
		WithArgs("a1", "u1", "t1", "2026-09-01", "10:00", 50, model.StatusConfirmed, "", now).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := st.CreateAppointment(context.Background(), &model.Appointment{
		ID: "a1", UserID: "u1", TherapistID: "t1",
		Date: "2026-09-01", Time: "10:00", DurationMinutes: 50,
		Status: model.StatusConfirmed, CreatedAt: now,
	})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestAppointmentsByUserScan(t *testing.T) {
	st, mock := newMockStore(t)
	created := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	cancelled := created.Add(time.Hour)

	rows := pgxmock.NewRows([]string{
		"id", "user_id", "therapist_id", "date", "time", "duration_minutes",
		"status", "notes", "created_at", "cancelled_at", "completed_at", "rescheduled_at",
	}).
		AddRow("a1", "u1", "t1", "2026-09-01", "10:00", 50,
			model.StatusConfirmed, "", created, nil, nil, nil).
		AddRow("a2", "u1", "t1", "2026-09-02", "11:00", 50,
			model.StatusCancelled, "", created, &cancelled, nil, nil)

	mock.ExpectQuery("SELECT (.+) FROM appointments WHERE user_id").
		WithArgs("u1").
		WillReturnRows(rows)

	appts, err := st.AppointmentsByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, appts, 2)
	assert.Equal(t, model.StatusConfirmed, appts[0].Status)
	assert.Nil(t, appts[0].CancelledAt)
	require.NotNil(t, appts[1].CancelledAt)
	assert.Equal(t, cancelled, *appts[1].CancelledAt)
}

func TestUpsertMoodReturnsStoredIdentity(t *testing.T) {
	st, mock := newMockStore(t)
	recorded := time.Date(2026, 8, 30, 9, 30, 0, 0, time.UTC)

	e := &model.MoodEntry{
		ID: "fresh-id", UserID: "u1", Date: "2026-08-30",
		Mood: model.MoodCalm, Intensity: 7, Notes: "", RecordedAt: recorded,
	}

	mock.ExpectQuery("INSERT INTO moods").
		WithArgs("fresh-id", "u1", "2026-08-30", model.MoodCalm, 7, "", recorded).
		WillReturnRows(pgxmock.NewRows([]string{"id", "recorded_at"}).
			AddRow("existing-id", recorded))

	require.NoError(t, st.UpsertMood(context.Background(), e))
	// the conflict path keeps the original row's id
	assert.Equal(t, "existing-id", e.ID)
}

func TestDeleteMoodMissing(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec("DELETE FROM moods").
		WithArgs("u1", "2026-08-30").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := st.DeleteMood(context.Background(), "u1", "2026-08-30")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIsConnected(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("u1", "t1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := st.IsConnected(context.Background(), "u1", "t1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestConnectUpserts(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO therapist_connections").
		WithArgs("u1", "t1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, st.Connect(context.Background(), "u1", "t1"))
}

func TestRotateRefreshToken(t *testing.T) {
	st, mock := newMockStore(t)
	expiry := time.Now().Add(24 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE refresh_tokens SET revoked").
		WithArgs("new-id", "old-id").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("INSERT INTO refresh_tokens").
		WithArgs("new-id", "u1", "new-hash", expiry).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err := st.RotateRefreshToken(context.Background(), "old-id", "new-id", "u1", "new-hash", expiry)
	assert.NoError(t, err)
}
