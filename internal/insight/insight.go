// Package insight derives a single recommendation from computed mood signals.
package insight

import "mindwell-api/internal/mood"

// Recommend walks a fixed priority chain over the trend classification, the
// mean intensity of the trailing week and the number of entries logged in it.
// The branches are mutually exclusive; exactly one message comes back.
func Recommend(trend mood.Trend, weekMeanIntensity float64, weekEntries int) string {
	switch {
	case trend == mood.TrendDeclining && weekMeanIntensity < 5:
		return "Your mood has been trending downward lately. It may help to talk it through - consider booking a session with your therapist."
	case weekEntries < 3:
		return "You've logged fewer check-ins this week. A quick daily entry makes your trends much more useful."
	case trend == mood.TrendImproving:
		return "Your mood has been improving - whatever you're doing, it's working. Keep it up."
	case weekMeanIntensity > 7:
		return "You've been feeling consistently good. Hold on to the routines that got you here."
	default:
		return "Take a few minutes for yourself today. Small, regular self-care goes a long way."
	}
}
