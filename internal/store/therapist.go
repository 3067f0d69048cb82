package store

import (
	"context"

	"mindwell-api/internal/model"
)

func (s *Store) Therapist(ctx context.Context, id string) (*model.Therapist, error) {
	t := &model.Therapist{}
	err := s.db.QueryRow(ctx,
		`SELECT id, name, specialty, bio, working_days, created_at
		 FROM therapists WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.Specialty, &t.Bio, &t.WorkingDays, &t.CreatedAt)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return t, nil
}

func (s *Store) ListTherapists(ctx context.Context) ([]model.Therapist, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, specialty, bio, working_days, created_at
		 FROM therapists ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Therapist
	for rows.Next() {
		var t model.Therapist
		if err := rows.Scan(&t.ID, &t.Name, &t.Specialty, &t.Bio, &t.WorkingDays, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) IsConnected(ctx context.Context, userID, therapistID string) (bool, error) {
	var connected bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM therapist_connections
			WHERE user_id = $1 AND therapist_id = $2 AND active
		)`, userID, therapistID,
	).Scan(&connected)
	return connected, err
}

// Connect upserts an active user-therapist connection.
func (s *Store) Connect(ctx context.Context, userID, therapistID string) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO therapist_connections (user_id, therapist_id, active)
		 VALUES ($1, $2, TRUE)
		 ON CONFLICT (user_id, therapist_id) DO UPDATE SET active = TRUE`,
		userID, therapistID,
	)
	return err
}
