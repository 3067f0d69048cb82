package schedule

import (
	"time"

	"mindwell-api/internal/model"
)

// SlotTaken reports whether a proposed (date, time) collides with an existing
// non-cancelled appointment at exactly that slot. excludeID skips the
// appointment being rescheduled.
func SlotTaken(existing []model.Appointment, date, clock, excludeID string) bool {
	for _, a := range existing {
		if a.ID == excludeID {
			continue
		}
		if a.Status != model.StatusCancelled && a.Date == date && a.Time == clock {
			return true
		}
	}
	return false
}

// Overlaps reports whether a proposed [start, start+duration) interval overlaps
// any of the user's non-cancelled appointments on the same date. Intervals are
// half-open, so touching endpoints do not conflict.
//
// On any parse failure it fails safe and reports a conflict; a double-booking
// must never slip through on bad data.
func Overlaps(existing []model.Appointment, date, clock string, durationMinutes int) (bool, error) {
	newStart, err := model.ParseDateTime(date, clock)
	if err != nil {
		return true, err
	}
	newEnd := newStart.Add(time.Duration(durationMinutes) * time.Minute)

	for _, a := range existing {
		if a.Status == model.StatusCancelled || a.Date != date {
			continue
		}
		start, err := a.Start()
		if err != nil {
			return true, err
		}
		end := start.Add(time.Duration(a.DurationMinutes) * time.Minute)
		if newStart.Before(end) && newEnd.After(start) {
			return true, nil
		}
	}
	return false, nil
}
