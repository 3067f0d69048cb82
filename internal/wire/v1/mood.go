package wirev1

import (
	"math"
	"time"

	"google.golang.org/protobuf/encoding/protowire"
)

type MoodEntry struct {
	ID         string
	UserID     string
	Date       string
	Mood       string
	Intensity  int32
	Notes      string
	RecordedAt time.Time
}

func (m *MoodEntry) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.ID)
	b = appendString(b, 2, m.UserID)
	b = appendString(b, 3, m.Date)
	b = appendString(b, 4, m.Mood)
	b = appendInt32(b, 5, m.Intensity)
	b = appendString(b, 6, m.Notes)
	b = appendTime(b, 7, m.RecordedAt)
	return b
}

func (m *MoodEntry) Unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		switch {
		case typ == protowire.BytesType && num >= 1 && num <= 6 && num != 5:
			v, n := protowire.ConsumeString(b)
			switch num {
			case 1:
				m.ID = v
			case 2:
				m.UserID = v
			case 3:
				m.Date = v
			case 4:
				m.Mood = v
			case 6:
				m.Notes = v
			}
			return n, true
		case num == 5 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			m.Intensity = int32(v)
			return n, true
		case num == 7 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return -1, true
			}
			m.RecordedAt = consumeTime(v)
			return n, true
		}
		return 0, false
	})
}

type LogMoodRequest struct {
	Date      string
	Mood      string
	Intensity int32
	Notes     string
}

func (m *LogMoodRequest) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.Date)
	b = appendString(b, 2, m.Mood)
	b = appendInt32(b, 3, m.Intensity)
	b = appendString(b, 4, m.Notes)
	return b
}

func (m *LogMoodRequest) Unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		switch {
		case typ == protowire.BytesType && (num == 1 || num == 2 || num == 4):
			v, n := protowire.ConsumeString(b)
			switch num {
			case 1:
				m.Date = v
			case 2:
				m.Mood = v
			case 4:
				m.Notes = v
			}
			return n, true
		case num == 3 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			m.Intensity = int32(v)
			return n, true
		}
		return 0, false
	})
}

type LogMoodResponse struct {
	Entry *MoodEntry
}

func (m *LogMoodResponse) Marshal() []byte {
	if m.Entry == nil {
		return nil
	}
	return appendMessage(nil, 1, m.Entry.Marshal())
}

func (m *LogMoodResponse) Unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		if num != 1 || typ != protowire.BytesType {
			return 0, false
		}
		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return -1, true
		}
		e := &MoodEntry{}
		if err := e.Unmarshal(v); err != nil {
			return -1, true
		}
		m.Entry = e
		return n, true
	})
}

type DeleteMoodRequest struct {
	Date string
}

func (m *DeleteMoodRequest) Marshal() []byte { return appendString(nil, 1, m.Date) }
func (m *DeleteMoodRequest) Unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		if num != 1 || typ != protowire.BytesType {
			return 0, false
		}
		v, n := protowire.ConsumeString(b)
		m.Date = v
		return n, true
	})
}

type DeleteMoodResponse struct{}

func (m *DeleteMoodResponse) Marshal() []byte          { return nil }
func (m *DeleteMoodResponse) Unmarshal(b []byte) error { return skipUnknown(b) }

type MoodHistoryRequest struct {
	WindowDays int32
}

func (m *MoodHistoryRequest) Marshal() []byte { return appendInt32(nil, 1, m.WindowDays) }
func (m *MoodHistoryRequest) Unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		if num != 1 || typ != protowire.VarintType {
			return 0, false
		}
		v, n := protowire.ConsumeVarint(b)
		m.WindowDays = int32(v)
		return n, true
	})
}

type MoodHistoryResponse struct {
	Entries []*MoodEntry
}

func (m *MoodHistoryResponse) Marshal() []byte {
	var b []byte
	for _, e := range m.Entries {
		b = appendMessage(b, 1, e.Marshal())
	}
	return b
}

func (m *MoodHistoryResponse) Unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		if num != 1 || typ != protowire.BytesType {
			return 0, false
		}
		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return -1, true
		}
		e := &MoodEntry{}
		if err := e.Unmarshal(v); err != nil {
			return -1, true
		}
		m.Entries = append(m.Entries, e)
		return n, true
	})
}

type MoodCount struct {
	Mood  string
	Count int32
}

func (m *MoodCount) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.Mood)
	b = appendInt32(b, 2, m.Count)
	return b
}

func (m *MoodCount) Unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			m.Mood = v
			return n, true
		case num == 2 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			m.Count = int32(v)
			return n, true
		}
		return 0, false
	})
}

type DailyAverage struct {
	Date         string
	AvgIntensity float64
}

func (m *DailyAverage) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.Date)
	b = appendDouble(b, 2, m.AvgIntensity)
	return b
}

func (m *DailyAverage) Unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			m.Date = v
			return n, true
		case num == 2 && typ == protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(b)
			m.AvgIntensity = math.Float64frombits(v)
			return n, true
		}
		return 0, false
	})
}

type MoodSummary struct {
	Entries      int32
	AvgIntensity float64
	TopMood      string
	Distribution []*MoodCount
}

func (m *MoodSummary) Marshal() []byte {
	var b []byte
	b = appendInt32(b, 1, m.Entries)
	b = appendDouble(b, 2, m.AvgIntensity)
	b = appendString(b, 3, m.TopMood)
	for _, c := range m.Distribution {
		b = appendMessage(b, 4, c.Marshal())
	}
	return b
}

func (m *MoodSummary) Unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			m.Entries = int32(v)
			return n, true
		case num == 2 && typ == protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(b)
			m.AvgIntensity = math.Float64frombits(v)
			return n, true
		case num == 3 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			m.TopMood = v
			return n, true
		case num == 4 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return -1, true
			}
			c := &MoodCount{}
			if err := c.Unmarshal(v); err != nil {
				return -1, true
			}
			m.Distribution = append(m.Distribution, c)
			return n, true
		}
		return 0, false
	})
}

type MoodAnalyticsRequest struct {
	WindowDays int32
}

func (m *MoodAnalyticsRequest) Marshal() []byte { return appendInt32(nil, 1, m.WindowDays) }
func (m *MoodAnalyticsRequest) Unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		if num != 1 || typ != protowire.VarintType {
			return 0, false
		}
		v, n := protowire.ConsumeVarint(b)
		m.WindowDays = int32(v)
		return n, true
	})
}

type MoodAnalyticsResponse struct {
	StreakDays   int32
	Trend        string
	Distribution []*MoodCount
	Daily        []*DailyAverage
	Weekly       *MoodSummary
	Monthly      *MoodSummary
	Insight      string
}

func (m *MoodAnalyticsResponse) Marshal() []byte {
	var b []byte
	b = appendInt32(b, 1, m.StreakDays)
	b = appendString(b, 2, m.Trend)
	for _, c := range m.Distribution {
		b = appendMessage(b, 3, c.Marshal())
	}
	for _, d := range m.Daily {
		b = appendMessage(b, 4, d.Marshal())
	}
	if m.Weekly != nil {
		b = appendMessage(b, 5, m.Weekly.Marshal())
	}
	if m.Monthly != nil {
		b = appendMessage(b, 6, m.Monthly.Marshal())
	}
	b = appendString(b, 7, m.Insight)
	return b
}

func (m *MoodAnalyticsResponse) Unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			m.StreakDays = int32(v)
			return n, true
		case num == 2 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			m.Trend = v
			return n, true
		case num == 7 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			m.Insight = v
			return n, true
		case typ == protowire.BytesType && num >= 3 && num <= 6:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return -1, true
			}
			switch num {
			case 3:
				c := &MoodCount{}
				if err := c.Unmarshal(v); err != nil {
					return -1, true
				}
				m.Distribution = append(m.Distribution, c)
			case 4:
				d := &DailyAverage{}
				if err := d.Unmarshal(v); err != nil {
					return -1, true
				}
				m.Daily = append(m.Daily, d)
			case 5:
				s := &MoodSummary{}
				if err := s.Unmarshal(v); err != nil {
					return -1, true
				}
				m.Weekly = s
			case 6:
				s := &MoodSummary{}
				if err := s.Unmarshal(v); err != nil {
					return -1, true
				}
				m.Monthly = s
			}
			return n, true
		}
		return 0, false
	})
}
