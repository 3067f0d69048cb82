package model

import "time"

// Dates and times are naive local wall-clock values, stored as text.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Therapist struct {
	ID          string
	Name        string
	Specialty   string
	Bio         string
	WorkingDays []string // weekday names, e.g. "Monday"
	CreatedAt   time.Time
}

// WorksOn reports whether the therapist works on the given weekday.
func (t *Therapist) WorksOn(day time.Weekday) bool {
	name := day.String()
	for _, d := range t.WorkingDays {
		if d == name {
			return true
		}
	}
	return false
}

type AppointmentStatus string

const (
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

type Appointment struct {
	ID              string
	UserID          string
	TherapistID     string
	Date            string // YYYY-MM-DD
	Time            string // HH:MM
	DurationMinutes int
	Status          AppointmentStatus
	Notes           string
	CreatedAt       time.Time
	CancelledAt     *time.Time
	CompletedAt     *time.Time
	RescheduledAt   *time.Time
}

// Start resolves the appointment's naive date+time in local time.
func (a *Appointment) Start() (time.Time, error) {
	return ParseDateTime(a.Date, a.Time)
}

// End is Start plus the session duration.
func (a *Appointment) End() (time.Time, error) {
	start, err := a.Start()
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(time.Duration(a.DurationMinutes) * time.Minute), nil
}

func ParseDateTime(date, clock string) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+clock, time.Local)
}

func ParseDate(date string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, time.Local)
}

// Mood is a closed category set; anything outside it is rejected at the edge.
type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodCalm    Mood = "calm"
	MoodNeutral Mood = "neutral"
	MoodAnxious Mood = "anxious"
	MoodSad     Mood = "sad"
	MoodAngry   Mood = "angry"
)

// Moods lists every category in a stable order, used to zero-fill distributions.
var Moods = []Mood{MoodHappy, MoodCalm, MoodNeutral, MoodAnxious, MoodSad, MoodAngry}

func ParseMood(s string) (Mood, bool) {
	for _, m := range Moods {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

type MoodEntry struct {
	ID         string
	UserID     string
	Date       string // YYYY-MM-DD, at most one entry per user per date
	Mood       Mood
	Intensity  int // 1..10
	Notes      string
	RecordedAt time.Time // last-write instant
}
