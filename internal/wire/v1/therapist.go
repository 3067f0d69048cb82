package wirev1

import "google.golang.org/protobuf/encoding/protowire"

type Therapist struct {
	ID          string
	Name        string
	Specialty   string
	Bio         string
	WorkingDays []string
}

func (m *Therapist) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.ID)
	b = appendString(b, 2, m.Name)
	b = appendString(b, 3, m.Specialty)
	b = appendString(b, 4, m.Bio)
	for _, d := range m.WorkingDays {
		b = appendString(b, 5, d)
	}
	return b
}

func (m *Therapist) Unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		if typ != protowire.BytesType {
			return 0, false
		}
		v, n := protowire.ConsumeString(b)
		switch num {
		case 1:
			m.ID = v
		case 2:
			m.Name = v
		case 3:
			m.Specialty = v
		case 4:
			m.Bio = v
		case 5:
			m.WorkingDays = append(m.WorkingDays, v)
		default:
			return 0, false
		}
		return n, true
	})
}

type ListTherapistsRequest struct{}

func (m *ListTherapistsRequest) Marshal() []byte        { return nil }
func (m *ListTherapistsRequest) Unmarshal(b []byte) error { return skipUnknown(b) }

type ListTherapistsResponse struct {
	Therapists []*Therapist
}

func (m *ListTherapistsResponse) Marshal() []byte {
	var b []byte
	for _, t := range m.Therapists {
		b = appendMessage(b, 1, t.Marshal())
	}
	return b
}

func (m *ListTherapistsResponse) Unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		if num != 1 || typ != protowire.BytesType {
			return 0, false
		}
		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return -1, true
		}
		t := &Therapist{}
		if err := t.Unmarshal(v); err != nil {
			return -1, true
		}
		m.Therapists = append(m.Therapists, t)
		return n, true
	})
}

type ConnectTherapistRequest struct {
	TherapistID string
}

func (m *ConnectTherapistRequest) Marshal() []byte {
	return appendString(nil, 1, m.TherapistID)
}

func (m *ConnectTherapistRequest) Unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		if num != 1 || typ != protowire.BytesType {
			return 0, false
		}
		v, n := protowire.ConsumeString(b)
		m.TherapistID = v
		return n, true
	})
}

type ConnectTherapistResponse struct{}

func (m *ConnectTherapistResponse) Marshal() []byte        { return nil }
func (m *ConnectTherapistResponse) Unmarshal(b []byte) error { return skipUnknown(b) }

type AvailableSlotsRequest struct {
	TherapistID     string
	Date            string
	DurationMinutes int32
}

func (m *AvailableSlotsRequest) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.TherapistID)
	b = appendString(b, 2, m.Date)
	b = appendInt32(b, 3, m.DurationMinutes)
	return b
}

func (m *AvailableSlotsRequest) Unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		switch {
		case num == 1 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			m.TherapistID = v
			return n, true
		case num == 2 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			m.Date = v
			return n, true
		case num == 3 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			m.DurationMinutes = int32(v)
			return n, true
		}
		return 0, false
	})
}

type AvailableSlotsResponse struct {
	Slots []string
}

func (m *AvailableSlotsResponse) Marshal() []byte {
	var b []byte
	for _, s := range m.Slots {
		b = appendString(b, 1, s)
	}
	return b
}

func (m *AvailableSlotsResponse) Unmarshal(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		if num != 1 || typ != protowire.BytesType {
			return 0, false
		}
		v, n := protowire.ConsumeString(b)
		m.Slots = append(m.Slots, v)
		return n, true
	})
}
