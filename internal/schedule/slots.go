// Package schedule holds the pure scheduling core: slot generation,
// availability resolution and conflict detection. Nothing here touches the
// store; callers pass in snapshots.
package schedule

import "fmt"

// Default working window, 09:00-17:00.
const (
	DefaultStartHour = 9
	DefaultEndHour   = 17
)

// Slots generates candidate start times from startHour:00, stepping by
// durationMinutes, keeping every slot whose end fits at or before endHour:00.
// A duration longer than the window yields no slots.
func Slots(startHour, endHour, durationMinutes int) []string {
	var out []string
	if durationMinutes <= 0 {
		return out
	}
	windowEnd := endHour * 60
	for m := startHour * 60; m+durationMinutes <= windowEnd; m += durationMinutes {
		out = append(out, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return out
}
