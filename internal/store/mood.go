package store

import (
	"context"

	"mindwell-api/internal/model"
)

// UpsertMood makes one row represent one day: a second log for the same
// (user, date) overwrites mood, intensity, notes and the last-write instant.
// The entry's ID and RecordedAt are replaced with the stored values.
func (s *Store) UpsertMood(ctx context.Context, e *model.MoodEntry) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO moods (id, user_id, date, mood, intensity, notes, recorded_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 ON CONFLICT (user_id, date) DO UPDATE
		 SET mood = EXCLUDED.mood,
		     intensity = EXCLUDED.intensity,
		     notes = EXCLUDED.notes,
		     recorded_at = EXCLUDED.recorded_at
		 RETURNING id, recorded_at`,
		e.ID, e.UserID, e.Date, e.Mood, e.Intensity, e.Notes, e.RecordedAt,
	).Scan(&e.ID, &e.RecordedAt)
}

func (s *Store) MoodsByUser(ctx context.Context, userID string) ([]model.MoodEntry, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, date, mood, intensity, notes, recorded_at
		 FROM moods WHERE user_id = $1 ORDER BY date`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MoodEntry
	for rows.Next() {
		var e model.MoodEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.Mood, &e.Intensity, &e.Notes, &e.RecordedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) DeleteMood(ctx context.Context, userID, date string) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM moods WHERE user_id = $1 AND date = $2`, userID, date)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
