package wirev1

import (
	"time"

	"google.golang.org/protobuf/encoding/protowire"
)

type Appointment struct {
	ID              string
	UserID          string
	TherapistID     string
	Date            string
	Time            string
	DurationMinutes int32
	Status          string
	Notes           string
	CreatedAt       time.Time
	CancelledAt     *time.Time
	CompletedAt     *time.Time
	RescheduledAt   *time.Time
}

func (m *Appointment) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.ID)
	b = appendString(b, 2, m.UserID)
	b = appendString(b, 3, m.TherapistID)
	b = appendString(b, 4, m.Date)
	b = appendString(b, 5, m.Time)
	b = appendInt32(b, 6, m.DurationMinutes)
	b = appendString(b, 7, m.Status)
	b = appendString(b, 8, m.Notes)
	b = appendTime(b, 9, m.CreatedAt)
	b = appendTimePtr(b, 10, m.CancelledAt)
	b = appendTimePtr(b, 11, m.CompletedAt)
	b = appendTimePtr(b, 12, m.RescheduledAt)
	return b
}

func (m *Appointment) Unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		switch {
		case typ == protowire.BytesType && num >= 1 && num <= 8 && num != 6:
			v, n := protowire.ConsumeString(b)
			switch num {
			case 1:
				m.ID = v
			case 2:
				m.UserID = v
			case 3:
				m.TherapistID = v
			case 4:
				m.Date = v
			case 5:
				m.Time = v
			case 7:
				m.Status = v
			case 8:
				m.Notes = v
			}
			return n, true
		case num == 6 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			m.DurationMinutes = int32(v)
			return n, true
		case typ == protowire.BytesType && num >= 9 && num <= 12:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return -1, true
			}
			switch num {
			case 9:
				m.CreatedAt = consumeTime(v)
			case 10:
				m.CancelledAt = consumeTimePtr(v)
			case 11:
				m.CompletedAt = consumeTimePtr(v)
			case 12:
				m.RescheduledAt = consumeTimePtr(v)
			}
			return n, true
		}
		return 0, false
	})
}

// appointmentWrap covers the shared {appointment = 1} response shape.
func marshalAppointmentWrap(a *Appointment) []byte {
	if a == nil {
		return nil
	}
	return appendMessage(nil, 1, a.Marshal())
}

func unmarshalAppointmentWrap(b []byte) (*Appointment, error) {
	var out *Appointment
	err := fields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		if num != 1 || typ != protowire.BytesType {
			return 0, false
		}
		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return -1, true
		}
		a := &Appointment{}
		if err := a.Unmarshal(v); err != nil {
			return -1, true
		}
		out = a
		return n, true
	})
	return out, err
}

type BookAppointmentRequest struct {
	TherapistID     string
	Date            string
	Time            string
	DurationMinutes int32
	Notes           string
}

func (m *BookAppointmentRequest) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.TherapistID)
	b = appendString(b, 2, m.Date)
	b = appendString(b, 3, m.Time)
	b = appendInt32(b, 4, m.DurationMinutes)
	b = appendString(b, 5, m.Notes)
	return b
}

func (m *BookAppointmentRequest) Unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		switch {
		case typ == protowire.BytesType && (num == 1 || num == 2 || num == 3 || num == 5):
			v, n := protowire.ConsumeString(b)
			switch num {
			case 1:
				m.TherapistID = v
			case 2:
				m.Date = v
			case 3:
				m.Time = v
			case 5:
				m.Notes = v
			}
			return n, true
		case num == 4 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			m.DurationMinutes = int32(v)
			return n, true
		}
		return 0, false
	})
}

type BookAppointmentResponse struct {
	Appointment *Appointment
}

func (m *BookAppointmentResponse) Marshal() []byte { return marshalAppointmentWrap(m.Appointment) }
func (m *BookAppointmentResponse) Unmarshal(b []byte) error {
	a, err := unmarshalAppointmentWrap(b)
	m.Appointment = a
	return err
}

type RescheduleAppointmentRequest struct {
	ID      string
	NewDate string
	NewTime string
}

func (m *RescheduleAppointmentRequest) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.ID)
	b = appendString(b, 2, m.NewDate)
	b = appendString(b, 3, m.NewTime)
	return b
}

func (m *RescheduleAppointmentRequest) Unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		if typ != protowire.BytesType {
			return 0, false
		}
		v, n := protowire.ConsumeString(b)
		switch num {
		case 1:
			m.ID = v
		case 2:
			m.NewDate = v
		case 3:
			m.NewTime = v
		default:
			return 0, false
		}
		return n, true
	})
}

type RescheduleAppointmentResponse struct {
	Appointment *Appointment
}

func (m *RescheduleAppointmentResponse) Marshal() []byte { return marshalAppointmentWrap(m.Appointment) }
func (m *RescheduleAppointmentResponse) Unmarshal(b []byte) error {
	a, err := unmarshalAppointmentWrap(b)
	m.Appointment = a
	return err
}

type CancelAppointmentRequest struct {
	ID string
}

func (m *CancelAppointmentRequest) Marshal() []byte { return appendString(nil, 1, m.ID) }
func (m *CancelAppointmentRequest) Unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		if num != 1 || typ != protowire.BytesType {
			return 0, false
		}
		v, n := protowire.ConsumeString(b)
		m.ID = v
		return n, true
	})
}

type CancelAppointmentResponse struct {
	Appointment *Appointment
}

func (m *CancelAppointmentResponse) Marshal() []byte { return marshalAppointmentWrap(m.Appointment) }
func (m *CancelAppointmentResponse) Unmarshal(b []byte) error {
	a, err := unmarshalAppointmentWrap(b)
	m.Appointment = a
	return err
}

type CompleteAppointmentRequest struct {
	ID string
}

func (m *CompleteAppointmentRequest) Marshal() []byte { return appendString(nil, 1, m.ID) }
func (m *CompleteAppointmentRequest) Unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		if num != 1 || typ != protowire.BytesType {
			return 0, false
		}
		v, n := protowire.ConsumeString(b)
		m.ID = v
		return n, true
	})
}

type CompleteAppointmentResponse struct {
	Appointment *Appointment
}

func (m *CompleteAppointmentResponse) Marshal() []byte { return marshalAppointmentWrap(m.Appointment) }
func (m *CompleteAppointmentResponse) Unmarshal(b []byte) error {
	a, err := unmarshalAppointmentWrap(b)
	m.Appointment = a
	return err
}

type UpdateAppointmentNotesRequest struct {
	ID    string
	Notes string
}

func (m *UpdateAppointmentNotesRequest) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.ID)
	b = appendString(b, 2, m.Notes)
	return b
}

func (m *UpdateAppointmentNotesRequest) Unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		if typ != protowire.BytesType {
			return 0, false
		}
		v, n := protowire.ConsumeString(b)
		switch num {
		case 1:
			m.ID = v
		case 2:
			m.Notes = v
		default:
			return 0, false
		}
		return n, true
	})
}

type UpdateAppointmentNotesResponse struct {
	Appointment *Appointment
}

func (m *UpdateAppointmentNotesResponse) Marshal() []byte {
	return marshalAppointmentWrap(m.Appointment)
}
func (m *UpdateAppointmentNotesResponse) Unmarshal(b []byte) error {
	a, err := unmarshalAppointmentWrap(b)
	m.Appointment = a
	return err
}

type ListAppointmentsRequest struct{}

func (m *ListAppointmentsRequest) Marshal() []byte        { return nil }
func (m *ListAppointmentsRequest) Unmarshal(b []byte) error { return skipUnknown(b) }

type ListAppointmentsResponse struct {
	Upcoming  []*Appointment
	Past      []*Appointment
	Cancelled []*Appointment
}

func (m *ListAppointmentsResponse) Marshal() []byte {
	var b []byte
	for _, a := range m.Upcoming {
		b = appendMessage(b, 1, a.Marshal())
	}
	for _, a := range m.Past {
		b = appendMessage(b, 2, a.Marshal())
	}
	for _, a := range m.Cancelled {
		b = appendMessage(b, 3, a.Marshal())
	}
	return b
}

func (m *ListAppointmentsResponse) Unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		if typ != protowire.BytesType || num < 1 || num > 3 {
			return 0, false
		}
		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return -1, true
		}
		a := &Appointment{}
		if err := a.Unmarshal(v); err != nil {
			return -1, true
		}
		switch num {
		case 1:
			m.Upcoming = append(m.Upcoming, a)
		case 2:
			m.Past = append(m.Past, a)
		case 3:
			m.Cancelled = append(m.Cancelled, a)
		}
		return n, true
	})
}

type CheckOverlapRequest struct {
	Date            string
	Time            string
	DurationMinutes int32
}

func (m *CheckOverlapRequest) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.Date)
	b = appendString(b, 2, m.Time)
	b = appendInt32(b, 3, m.DurationMinutes)
	return b
}

func (m *CheckOverlapRequest) Unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		switch {
		case typ == protowire.BytesType && (num == 1 || num == 2):
			v, n := protowire.ConsumeString(b)
			if num == 1 {
				m.Date = v
			} else {
				m.Time = v
			}
			return n, true
		case num == 3 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			m.DurationMinutes = int32(v)
			return n, true
		}
		return 0, false
	})
}

type CheckOverlapResponse struct {
	Conflict bool
}

func (m *CheckOverlapResponse) Marshal() []byte { return appendBool(nil, 1, m.Conflict) }
func (m *CheckOverlapResponse) Unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		if num != 1 || typ != protowire.VarintType {
			return 0, false
		}
		v, n := protowire.ConsumeVarint(b)
		m.Conflict = v != 0
		return n, true
	})
}
