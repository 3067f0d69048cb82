package schedule

import (
	"mindwell-api/internal/model"
)

// Available resolves free start times for a therapist on a date. It fails
// closed: an unparseable date or a non-working weekday yields no slots.
//
// Booked slots are subtracted by exact start-time match, not duration-aware
// overlap: a booked 50-minute session blocks only its own start time. Callers
// must not assume interval-level non-overlap when mixing durations on one day.
func Available(t *model.Therapist, date string, durationMinutes int, existing []model.Appointment) []string {
	day, err := model.ParseDate(date)
	if err != nil {
		return nil
	}
	if !t.WorksOn(day.Weekday()) {
		return nil
	}

	booked := make(map[string]bool)
	for _, a := range existing {
		if a.Status != model.StatusCancelled && a.Date == date {
			booked[a.Time] = true
		}
	}

	var out []string
	for _, slot := range Slots(DefaultStartHour, DefaultEndHour, durationMinutes) {
		if !booked[slot] {
			out = append(out, slot)
		}
	}
	return out
}
