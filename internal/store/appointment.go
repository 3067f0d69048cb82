package store

import (
	"context"

	"mindwell-api/internal/model"
)

const appointmentCols = `id, user_id, therapist_id, date, time, duration_minutes,
	status, notes, created_at, cancelled_at, completed_at, rescheduled_at`

func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO appointments (id, user_id, therapist_id, date, time, duration_minutes, status, notes, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		a.ID, a.UserID, a.TherapistID, a.Date, a.Time, a.DurationMinutes, a.Status, a.Notes, a.CreatedAt,
	)
	if isUniqueViolation(err) {
		// partial slot index caught a booking race
		return ErrDuplicate
	}
	return err
}

func (s *Store) UpdateAppointment(ctx context.Context, a *model.Appointment) error {
	_, err := s.db.Exec(ctx,
		`UPDATE appointments
		 SET date=$1, time=$2, status=$3, notes=$4,
		     cancelled_at=$5, completed_at=$6, rescheduled_at=$7
		 WHERE id=$8`,
		a.Date, a.Time, a.Status, a.Notes,
		a.CancelledAt, a.CompletedAt, a.RescheduledAt, a.ID,
	)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (s *Store) AppointmentByID(ctx context.Context, id string) (*model.Appointment, error) {
	a := &model.Appointment{}
	err := s.db.QueryRow(ctx,
		`SELECT `+appointmentCols+` FROM appointments WHERE id = $1`, id,
	).Scan(&a.ID, &a.UserID, &a.TherapistID, &a.Date, &a.Time, &a.DurationMinutes,
		&a.Status, &a.Notes, &a.CreatedAt, &a.CancelledAt, &a.CompletedAt, &a.RescheduledAt)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return a, nil
}

func (s *Store) AppointmentsByUser(ctx context.Context, userID string) ([]model.Appointment, error) {
	return s.appointments(ctx,
		`SELECT `+appointmentCols+` FROM appointments WHERE user_id = $1 ORDER BY date, time`, userID)
}

func (s *Store) AppointmentsByTherapist(ctx context.Context, therapistID string) ([]model.Appointment, error) {
	return s.appointments(ctx,
		`SELECT `+appointmentCols+` FROM appointments WHERE therapist_id = $1 ORDER BY date, time`, therapistID)
}

func (s *Store) appointments(ctx context.Context, query string, args ...any) ([]model.Appointment, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Appointment
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(&a.ID, &a.UserID, &a.TherapistID, &a.Date, &a.Time, &a.DurationMinutes,
			&a.Status, &a.Notes, &a.CreatedAt, &a.CancelledAt, &a.CompletedAt, &a.RescheduledAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
