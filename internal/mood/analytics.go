package mood

import (
	"sort"
	"time"

	"mindwell-api/internal/model"
)

type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

type DailyAverage struct {
	Date         string
	AvgIntensity float64
}

type Summary struct {
	Entries      int
	AvgIntensity float64
	TopMood      model.Mood
	Distribution map[model.Mood]int // nil for the weekly summary
}

// Streak counts consecutive calendar days with an entry, ending today. Any
// gap stops the walk; no entry today means a streak of zero.
func Streak(entries []model.MoodEntry, today time.Time) int {
	logged := make(map[string]bool, len(entries))
	for _, e := range entries {
		logged[e.Date] = true
	}

	streak := 0
	for day := today; logged[day.Format(model.DateLayout)]; day = day.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

// TrendOf compares the mean intensity of the most recent 7 entries against the
// 7 before them. The windows count entries, not calendar days, so irregular
// logging skews them. A difference beyond 0.5 either way classifies the trend.
func TrendOf(entries []model.MoodEntry) Trend {
	if len(entries) < 2 {
		return TrendStable
	}
	sorted := sortedByDate(entries)

	split := len(sorted) - 7
	if split < 0 {
		split = 0
	}
	recent := sorted[split:]
	prevStart := len(sorted) - 14
	if prevStart < 0 {
		prevStart = 0
	}
	previous := sorted[prevStart:split]
	if len(previous) == 0 {
		return TrendStable
	}

	diff := meanIntensity(recent) - meanIntensity(previous)
	switch {
	case diff > 0.5:
		return TrendImproving
	case diff < -0.5:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// Distribution counts entries per category, zero-filled across the whole set.
func Distribution(entries []model.MoodEntry) map[model.Mood]int {
	dist := make(map[model.Mood]int, len(model.Moods))
	for _, m := range model.Moods {
		dist[m] = 0
	}
	for _, e := range entries {
		dist[e.Mood]++
	}
	return dist
}

// DailyAverages restricts entries to the trailing window, averages intensity
// per date and returns the series ascending by date.
func DailyAverages(entries []model.MoodEntry, windowDays int, today time.Time) []DailyAverage {
	cutoff := today.AddDate(0, 0, -windowDays).Format(model.DateLayout)

	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, e := range entries {
		if e.Date < cutoff {
			continue
		}
		sums[e.Date] += e.Intensity
		counts[e.Date]++
	}

	dates := make([]string, 0, len(sums))
	for d := range sums {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := make([]DailyAverage, 0, len(dates))
	for _, d := range dates {
		out = append(out, DailyAverage{Date: d, AvgIntensity: float64(sums[d]) / float64(counts[d])})
	}
	return out
}

// WeeklySummary aggregates the trailing 7 days.
func WeeklySummary(entries []model.MoodEntry, today time.Time) Summary {
	cutoff := today.AddDate(0, 0, -7).Format(model.DateLayout)
	return summarize(entries, cutoff, false)
}

// MonthlySummary aggregates one calendar month back and includes the full
// per-category distribution.
func MonthlySummary(entries []model.MoodEntry, today time.Time) Summary {
	cutoff := today.AddDate(0, -1, 0).Format(model.DateLayout)
	return summarize(entries, cutoff, true)
}

func summarize(entries []model.MoodEntry, cutoff string, withDistribution bool) Summary {
	var window []model.MoodEntry
	for _, e := range entries {
		if e.Date >= cutoff {
			window = append(window, e)
		}
	}

	s := Summary{Entries: len(window)}
	if len(window) > 0 {
		s.AvgIntensity = meanIntensity(window)
		s.TopMood = mostCommon(window)
	}
	if withDistribution {
		s.Distribution = Distribution(window)
	}
	return s
}

// mostCommon picks the highest-count category; ties break to the
// lexicographically smallest name so the result is deterministic.
func mostCommon(entries []model.MoodEntry) model.Mood {
	counts := make(map[model.Mood]int)
	for _, e := range entries {
		counts[e.Mood]++
	}

	var top model.Mood
	best := 0
	for m, c := range counts {
		if c > best || (c == best && (top == "" || m < top)) {
			top, best = m, c
		}
	}
	return top
}

func meanIntensity(entries []model.MoodEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	sum := 0
	for _, e := range entries {
		sum += e.Intensity
	}
	return float64(sum) / float64(len(entries))
}

func sortedByDate(entries []model.MoodEntry) []model.MoodEntry {
	out := make([]model.MoodEntry, len(entries))
	copy(out, entries)
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
