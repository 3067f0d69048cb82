// Package mood ingests daily mood samples and computes streaks, trends and
// windowed aggregates over them.
package mood

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"mindwell-api/internal/model"
)

var (
	ErrInvalidMood      = errors.New("unknown mood category")
	ErrInvalidIntensity = errors.New("intensity must be between 1 and 10")
	ErrInvalidDate      = errors.New("invalid date")
)

// Store is the slice of the persistence layer the engine needs. UpsertMood
// must guarantee at most one entry per (user, date); a second log for the same
// date overwrites the first.
type Store interface {
	UpsertMood(ctx context.Context, e *model.MoodEntry) error
	MoodsByUser(ctx context.Context, userID string) ([]model.MoodEntry, error)
	DeleteMood(ctx context.Context, userID, date string) error
}

type Engine struct {
	store Store
	now   func() time.Time
}

func New(store Store) *Engine {
	return &Engine{store: store, now: time.Now}
}

// Log validates and upserts a sample: last write for a date wins.
func (e *Engine) Log(ctx context.Context, userID, date, moodName string, intensity int, notes string) (*model.MoodEntry, error) {
	m, ok := model.ParseMood(moodName)
	if !ok {
		return nil, ErrInvalidMood
	}
	if intensity < 1 || intensity > 10 {
		return nil, ErrInvalidIntensity
	}
	if _, err := model.ParseDate(date); err != nil {
		return nil, ErrInvalidDate
	}

	entry := &model.MoodEntry{
		ID:         uuid.New().String(),
		UserID:     userID,
		Date:       date,
		Mood:       m,
		Intensity:  intensity,
		Notes:      notes,
		RecordedAt: e.now(),
	}
	if err := e.store.UpsertMood(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (e *Engine) Delete(ctx context.Context, userID, date string) error {
	return e.store.DeleteMood(ctx, userID, date)
}

// History returns the user's entries ascending by date, optionally restricted
// to a trailing window. windowDays <= 0 means everything.
func (e *Engine) History(ctx context.Context, userID string, windowDays int) ([]model.MoodEntry, error) {
	entries, err := e.store.MoodsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if windowDays <= 0 {
		return entries, nil
	}
	cutoff := e.now().AddDate(0, 0, -windowDays).Format(model.DateLayout)
	var out []model.MoodEntry
	for _, entry := range entries {
		if entry.Date >= cutoff {
			out = append(out, entry)
		}
	}
	return out, nil
}

// Analytics bundles every derived signal for one user. The Insight field is
// left for the caller to fill in from the synthesizer.
type Analytics struct {
	StreakDays   int
	Trend        Trend
	Distribution map[model.Mood]int
	Daily        []DailyAverage
	Weekly       Summary
	Monthly      Summary
	Insight      string
}

func (e *Engine) Analytics(ctx context.Context, userID string, windowDays int) (*Analytics, error) {
	if windowDays <= 0 {
		windowDays = 30
	}
	entries, err := e.store.MoodsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := e.now()
	return &Analytics{
		StreakDays:   Streak(entries, today),
		Trend:        TrendOf(entries),
		Distribution: Distribution(entries),
		Daily:        DailyAverages(entries, windowDays, today),
		Weekly:       WeeklySummary(entries, today),
		Monthly:      MonthlySummary(entries, today),
	}, nil
}
