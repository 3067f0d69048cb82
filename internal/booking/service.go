// Package booking owns the appointment lifecycle: booking, rescheduling,
// cancelling, completing and partitioned queries. All slot and overlap rules
// live in internal/schedule; this package mediates them against the store.
package booking

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"mindwell-api/internal/model"
	"mindwell-api/internal/schedule"
	"mindwell-api/internal/store"
)

var (
	ErrNotConnected     = errors.New("user is not connected to this therapist")
	ErrSlotTaken        = errors.New("slot is already booked")
	ErrNotFound         = errors.New("appointment not found")
	ErrAlreadyCancelled = errors.New("appointment is already cancelled")
	ErrNotConfirmed     = errors.New("only confirmed appointments can change")
	ErrInvalidSlot      = errors.New("invalid date or time")
)

type AppointmentStore interface {
	CreateAppointment(ctx context.Context, a *model.Appointment) error
	UpdateAppointment(ctx context.Context, a *model.Appointment) error
	AppointmentByID(ctx context.Context, id string) (*model.Appointment, error)
	AppointmentsByUser(ctx context.Context, userID string) ([]model.Appointment, error)
	AppointmentsByTherapist(ctx context.Context, therapistID string) ([]model.Appointment, error)
}

type Directory interface {
	Therapist(ctx context.Context, id string) (*model.Therapist, error)
	IsConnected(ctx context.Context, userID, therapistID string) (bool, error)
}

type Service struct {
	appts AppointmentStore
	dir   Directory
	now   func() time.Time
}

func New(appts AppointmentStore, dir Directory) *Service {
	return &Service{appts: appts, dir: dir, now: time.Now}
}

// AvailableSlots resolves free start times for a therapist on a date.
func (s *Service) AvailableSlots(ctx context.Context, therapistID, date string, durationMinutes int) ([]string, error) {
	t, err := s.dir.Therapist(ctx, therapistID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	existing, err := s.appts.AppointmentsByTherapist(ctx, therapistID)
	if err != nil {
		return nil, err
	}
	return schedule.Available(t, date, durationMinutes, existing), nil
}

// Book creates a confirmed appointment. It requires an active connection and a
// free exact slot; the store's uniqueness constraint backstops the check
// against concurrent bookings, so the loser of a race still gets ErrSlotTaken.
func (s *Service) Book(ctx context.Context, userID, therapistID, date, clock string, durationMinutes int, notes string) (*model.Appointment, error) {
	if _, err := model.ParseDateTime(date, clock); err != nil || durationMinutes <= 0 {
		return nil, ErrInvalidSlot
	}

	connected, err := s.dir.IsConnected(ctx, userID, therapistID)
	if err != nil {
		return nil, err
	}
	if !connected {
		return nil, ErrNotConnected
	}

	existing, err := s.appts.AppointmentsByTherapist(ctx, therapistID)
	if err != nil {
		return nil, err
	}
	if schedule.SlotTaken(existing, date, clock, "") {
		return nil, ErrSlotTaken
	}

	a := &model.Appointment{
		ID:              uuid.New().String(),
		UserID:          userID,
		TherapistID:     therapistID,
		Date:            date,
		Time:            clock,
		DurationMinutes: durationMinutes,
		Status:          model.StatusConfirmed,
		Notes:           notes,
		CreatedAt:       s.now(),
	}
	if err := s.appts.CreateAppointment(ctx, a); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}
	return a, nil
}

// Reschedule moves a confirmed appointment to a new slot with the same
// therapist. Cancelled and completed appointments are terminal.
func (s *Service) Reschedule(ctx context.Context, userID, id, newDate, newTime string) (*model.Appointment, error) {
	a, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	switch a.Status {
	case model.StatusCancelled:
		return nil, ErrAlreadyCancelled
	case model.StatusCompleted:
		return nil, ErrNotConfirmed
	}
	if _, err := model.ParseDateTime(newDate, newTime); err != nil {
		return nil, ErrInvalidSlot
	}

	existing, err := s.appts.AppointmentsByTherapist(ctx, a.TherapistID)
	if err != nil {
		return nil, err
	}
	if schedule.SlotTaken(existing, newDate, newTime, a.ID) {
		return nil, ErrSlotTaken
	}

	now := s.now()
	a.Date, a.Time = newDate, newTime
	a.RescheduledAt = &now
	if err := s.appts.UpdateAppointment(ctx, a); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}
	return a, nil
}

// Cancel is guarded for idempotency: cancelling twice fails, the store stays
// untouched.
func (s *Service) Cancel(ctx context.Context, userID, id string) (*model.Appointment, error) {
	a, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if a.Status == model.StatusCancelled {
		return nil, ErrAlreadyCancelled
	}

	now := s.now()
	a.Status = model.StatusCancelled
	a.CancelledAt = &now
	if err := s.appts.UpdateAppointment(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Complete only transitions out of confirmed; re-completing or completing a
// cancelled appointment is rejected.
func (s *Service) Complete(ctx context.Context, userID, id string) (*model.Appointment, error) {
	a, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if a.Status != model.StatusConfirmed {
		return nil, ErrNotConfirmed
	}

	now := s.now()
	a.Status = model.StatusCompleted
	a.CompletedAt = &now
	if err := s.appts.UpdateAppointment(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) UpdateNotes(ctx context.Context, userID, id, notes string) (*model.Appointment, error) {
	a, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	a.Notes = notes
	if err := s.appts.UpdateAppointment(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// SelfOverlap checks a proposed interval against the user's own appointments
// across all therapists. It fails safe: any internal failure reports a
// conflict rather than letting a double-booking through.
func (s *Service) SelfOverlap(ctx context.Context, userID, date, clock string, durationMinutes int) (bool, error) {
	existing, err := s.appts.AppointmentsByUser(ctx, userID)
	if err != nil {
		return true, err
	}
	return schedule.Overlaps(existing, date, clock, durationMinutes)
}

// Partition splits a user's appointments into upcoming, past and cancelled.
type Partition struct {
	Upcoming  []model.Appointment
	Past      []model.Appointment
	Cancelled []model.Appointment
}

// Partitioned classifies by status first, then start instant: cancelled wins
// outright, completed is past regardless of date, and confirmed splits on
// whether the start is still in the future. Upcoming sorts ascending, the
// other two descending.
func (s *Service) Partitioned(ctx context.Context, userID string) (*Partition, error) {
	all, err := s.appts.AppointmentsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	p := &Partition{}
	for _, a := range all {
		switch {
		case a.Status == model.StatusCancelled:
			p.Cancelled = append(p.Cancelled, a)
		case a.Status == model.StatusCompleted:
			p.Past = append(p.Past, a)
		default:
			if start, err := a.Start(); err == nil && start.After(now) {
				p.Upcoming = append(p.Upcoming, a)
			} else {
				p.Past = append(p.Past, a)
			}
		}
	}

	sortByStart(p.Upcoming, true)
	sortByStart(p.Past, false)
	sortByStart(p.Cancelled, false)
	return p, nil
}

func sortByStart(appts []model.Appointment, ascending bool) {
	sort.Slice(appts, func(i, j int) bool {
		si, _ := appts[i].Start()
		sj, _ := appts[j].Start()
		if ascending {
			return si.Before(sj)
		}
		return sj.Before(si)
	})
}

func (s *Service) owned(ctx context.Context, userID, id string) (*model.Appointment, error) {
	a, err := s.appts.AppointmentByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	// hide other users' appointments behind not-found
	if a.UserID != userID {
		return nil, ErrNotFound
	}
	return a, nil
}
