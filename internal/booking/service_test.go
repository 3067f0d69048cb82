package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindwell-api/internal/model"
	"mindwell-api/internal/store"
)

var allWeek = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

type fakeApptStore struct {
	appts     map[string]*model.Appointment
	createErr error
	listErr   error
}

func newFakeApptStore() *fakeApptStore {
	return &fakeApptStore{appts: make(map[string]*model.Appointment)}
}

func (f *fakeApptStore) CreateAppointment(_ context.Context, a *model.Appointment) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *a
	f.appts[a.ID] = &cp
	return nil
}

func (f *fakeApptStore) UpdateAppointment(_ context.Context, a *model.Appointment) error {
	if _, ok := f.appts[a.ID]; !ok {
		return store.ErrNotFound
	}
	cp := *a
	f.appts[a.ID] = &cp
	return nil
}

func (f *fakeApptStore) AppointmentByID(_ context.Context, id string) (*model.Appointment, error) {
	a, ok := f.appts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeApptStore) AppointmentsByUser(_ context.Context, userID string) ([]model.Appointment, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []model.Appointment
	for _, a := range f.appts {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeApptStore) AppointmentsByTherapist(_ context.Context, therapistID string) ([]model.Appointment, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []model.Appointment
	for _, a := range f.appts {
		if a.TherapistID == therapistID {
			out = append(out, *a)
		}
	}
	return out, nil
}

type fakeDirectory struct {
	therapists  map[string]*model.Therapist
	connections map[string]bool // userID+therapistID
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		therapists:  make(map[string]*model.Therapist),
		connections: make(map[string]bool),
	}
}

func (f *fakeDirectory) Therapist(_ context.Context, id string) (*model.Therapist, error) {
	t, ok := f.therapists[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return t, nil
}

func (f *fakeDirectory) IsConnected(_ context.Context, userID, therapistID string) (bool, error) {
	return f.connections[userID+therapistID], nil
}

func newTestService() (*Service, *fakeApptStore, *fakeDirectory) {
	appts := newFakeApptStore()
	dir := newFakeDirectory()
	dir.therapists["t1"] = &model.Therapist{ID: "t1", Name: "Dr. Bell", WorkingDays: allWeek}
	dir.connections["u1t1"] = true
	return New(appts, dir), appts, dir
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format(model.DateLayout)
}

func TestBook(t *testing.T) {
	svc, appts, _ := newTestService()

	a, err := svc.Book(context.Background(), "u1", "t1", futureDate(3), "10:00", 50, "first session")
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, a.Status)
	assert.NotEmpty(t, a.ID)
	assert.False(t, a.CreatedAt.IsZero())
	assert.Len(t, appts.appts, 1)
}

func TestBookRequiresConnection(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Book(context.Background(), "u2", "t1", futureDate(3), "10:00", 50, "")
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestBookInvalidSlot(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Book(context.Background(), "u1", "t1", "not-a-date", "10:00", 50, "")
	assert.ErrorIs(t, err, ErrInvalidSlot)

	_, err = svc.Book(context.Background(), "u1", "t1", futureDate(3), "25:99", 50, "")
	assert.ErrorIs(t, err, ErrInvalidSlot)

	_, err = svc.Book(context.Background(), "u1", "t1", futureDate(3), "10:00", 0, "")
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestBookTakenSlot(t *testing.T) {
	svc, _, _ := newTestService()
	date := futureDate(3)

	_, err := svc.Book(context.Background(), "u1", "t1", date, "10:00", 50, "")
	require.NoError(t, err)

	_, err = svc.Book(context.Background(), "u1", "t1", date, "10:00", 50, "")
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestBookCancelledSlotIsFree(t *testing.T) {
	svc, _, _ := newTestService()
	date := futureDate(3)

	a, err := svc.Book(context.Background(), "u1", "t1", date, "10:00", 50, "")
	require.NoError(t, err)
	_, err = svc.Cancel(context.Background(), "u1", a.ID)
	require.NoError(t, err)

	_, err = svc.Book(context.Background(), "u1", "t1", date, "10:00", 50, "")
	assert.NoError(t, err)
}

func TestBookRaceLoserGetsSlotTaken(t *testing.T) {
	svc, appts, _ := newTestService()
	appts.createErr = store.ErrDuplicate

	_, err := svc.Book(context.Background(), "u1", "t1", futureDate(3), "10:00", 50, "")
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestReschedule(t *testing.T) {
	svc, appts, _ := newTestService()

	a, err := svc.Book(context.Background(), "u1", "t1", futureDate(3), "10:00", 50, "")
	require.NoError(t, err)

	moved, err := svc.Reschedule(context.Background(), "u1", a.ID, futureDate(4), "11:00")
	require.NoError(t, err)
	assert.Equal(t, futureDate(4), moved.Date)
	assert.Equal(t, "11:00", moved.Time)
	assert.NotNil(t, moved.RescheduledAt)
	assert.Equal(t, model.StatusConfirmed, appts.appts[a.ID].Status)
}

func TestRescheduleToOwnSlot(t *testing.T) {
	svc, _, _ := newTestService()

	a, err := svc.Book(context.Background(), "u1", "t1", futureDate(3), "10:00", 50, "")
	require.NoError(t, err)

	// the appointment's own slot doesn't count as taken
	_, err = svc.Reschedule(context.Background(), "u1", a.ID, a.Date, a.Time)
	assert.NoError(t, err)
}

func TestRescheduleTerminalStates(t *testing.T) {
	svc, _, _ := newTestService()

	a, err := svc.Book(context.Background(), "u1", "t1", futureDate(3), "10:00", 50, "")
	require.NoError(t, err)
	_, err = svc.Cancel(context.Background(), "u1", a.ID)
	require.NoError(t, err)
	_, err = svc.Reschedule(context.Background(), "u1", a.ID, futureDate(4), "11:00")
	assert.ErrorIs(t, err, ErrAlreadyCancelled)

	b, err := svc.Book(context.Background(), "u1", "t1", futureDate(5), "10:00", 50, "")
	require.NoError(t, err)
	_, err = svc.Complete(context.Background(), "u1", b.ID)
	require.NoError(t, err)
	_, err = svc.Reschedule(context.Background(), "u1", b.ID, futureDate(6), "11:00")
	assert.ErrorIs(t, err, ErrNotConfirmed)
}

func TestCancelTwice(t *testing.T) {
	svc, appts, _ := newTestService()

	a, err := svc.Book(context.Background(), "u1", "t1", futureDate(3), "10:00", 50, "")
	require.NoError(t, err)

	first, err := svc.Cancel(context.Background(), "u1", a.ID)
	require.NoError(t, err)
	require.NotNil(t, first.CancelledAt)

	_, err = svc.Cancel(context.Background(), "u1", a.ID)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	// second attempt left the stored record alone
	assert.Equal(t, *first.CancelledAt, *appts.appts[a.ID].CancelledAt)
}

func TestCompleteOnlyConfirmed(t *testing.T) {
	svc, _, _ := newTestService()

	a, err := svc.Book(context.Background(), "u1", "t1", futureDate(3), "10:00", 50, "")
	require.NoError(t, err)

	done, err := svc.Complete(context.Background(), "u1", a.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, done.Status)
	assert.NotNil(t, done.CompletedAt)

	_, err = svc.Complete(context.Background(), "u1", a.ID)
	assert.ErrorIs(t, err, ErrNotConfirmed)

	b, err := svc.Book(context.Background(), "u1", "t1", futureDate(4), "10:00", 50, "")
	require.NoError(t, err)
	_, err = svc.Cancel(context.Background(), "u1", b.ID)
	require.NoError(t, err)
	_, err = svc.Complete(context.Background(), "u1", b.ID)
	assert.ErrorIs(t, err, ErrNotConfirmed)
}

func TestUpdateNotes(t *testing.T) {
	svc, appts, _ := newTestService()

	a, err := svc.Book(context.Background(), "u1", "t1", futureDate(3), "10:00", 50, "old")
	require.NoError(t, err)

	_, err = svc.UpdateNotes(context.Background(), "u1", a.ID, "new")
	require.NoError(t, err)
	assert.Equal(t, "new", appts.appts[a.ID].Notes)
}

func TestOwnershipHiddenAsNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	a, err := svc.Book(context.Background(), "u1", "t1", futureDate(3), "10:00", 50, "")
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), "someone-else", a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Cancel(context.Background(), "u1", "missing-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAvailableSlots(t *testing.T) {
	svc, _, _ := newTestService()
	date := futureDate(3)

	_, err := svc.Book(context.Background(), "u1", "t1", date, "09:00", 60, "")
	require.NoError(t, err)

	slots, err := svc.AvailableSlots(context.Background(), "t1", date, 60)
	require.NoError(t, err)
	assert.Len(t, slots, 7)
	assert.NotContains(t, slots, "09:00")

	_, err = svc.AvailableSlots(context.Background(), "nope", date, 60)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSelfOverlap(t *testing.T) {
	svc, _, _ := newTestService()
	date := futureDate(3)

	_, err := svc.Book(context.Background(), "u1", "t1", date, "10:00", 50, "")
	require.NoError(t, err)

	conflict, err := svc.SelfOverlap(context.Background(), "u1", date, "10:30", 50)
	require.NoError(t, err)
	assert.True(t, conflict)

	conflict, err = svc.SelfOverlap(context.Background(), "u1", date, "10:50", 50)
	require.NoError(t, err)
	assert.False(t, conflict)
}

func TestSelfOverlapFailsSafe(t *testing.T) {
	svc, appts, _ := newTestService()
	appts.listErr = errors.New("db down")

	conflict, err := svc.SelfOverlap(context.Background(), "u1", futureDate(3), "10:00", 50)
	assert.Error(t, err)
	assert.True(t, conflict)
}

func TestPartitioned(t *testing.T) {
	svc, appts, _ := newTestService()
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return now }

	add := func(id, date, clock string, status model.AppointmentStatus) {
		appts.appts[id] = &model.Appointment{
			ID: id, UserID: "u1", TherapistID: "t1",
			Date: date, Time: clock, DurationMinutes: 50, Status: status,
		}
	}
	add("upcoming-late", "2026-09-02", "10:00", model.StatusConfirmed)
	add("upcoming-soon", "2026-09-01", "10:00", model.StatusConfirmed)
	add("past-confirmed", "2026-08-30", "10:00", model.StatusConfirmed)
	add("completed-future", "2026-09-05", "10:00", model.StatusCompleted)
	add("cancelled", "2026-09-03", "10:00", model.StatusCancelled)

	p, err := svc.Partitioned(context.Background(), "u1")
	require.NoError(t, err)

	ids := func(list []model.Appointment) []string {
		out := make([]string, len(list))
		for i, a := range list {
			out[i] = a.ID
		}
		return out
	}

	// upcoming ascending by start
	assert.Equal(t, []string{"upcoming-soon", "upcoming-late"}, ids(p.Upcoming))
	// completed lands in past even with a future date, past sorts descending
	assert.Equal(t, []string{"completed-future", "past-confirmed"}, ids(p.Past))
	assert.Equal(t, []string{"cancelled"}, ids(p.Cancelled))
}
