package wirev1

import "google.golang.org/protobuf/encoding/protowire"

type RegisterRequest struct {
	Email    string
	Password string
	Name     string
}

func (m *RegisterRequest) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.Email)
	b = appendString(b, 2, m.Password)
	b = appendString(b, 3, m.Name)
	return b
}

func (m *RegisterRequest) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return errMalformed
		}
		b = b[n:]
		switch {
		case num == 1 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return errMalformed
			}
			m.Email = v
			b = b[n:]
		case num == 2 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return errMalformed
			}
			m.Password = v
			b = b[n:]
		case num == 3 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return errMalformed
			}
			m.Name = v
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return errMalformed
			}
			b = b[n:]
		}
	}
	return nil
}

type RegisterResponse struct {
	UserID string
	Token  string
}

func (m *RegisterResponse) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.UserID)
	b = appendString(b, 2, m.Token)
	return b
}

func (m *RegisterResponse) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return errMalformed
		}
		b = b[n:]
		switch {
		case num == 1 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return errMalformed
			}
			m.UserID = v
			b = b[n:]
		case num == 2 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return errMalformed
			}
			m.Token = v
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return errMalformed
			}
			b = b[n:]
		}
	}
	return nil
}

type LoginRequest struct {
	Email    string
	Password string
}

func (m *LoginRequest) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.Email)
	b = appendString(b, 2, m.Password)
	return b
}

func (m *LoginRequest) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return errMalformed
		}
		b = b[n:]
		switch {
		case num == 1 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return errMalformed
			}
			m.Email = v
			b = b[n:]
		case num == 2 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return errMalformed
			}
			m.Password = v
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return errMalformed
			}
			b = b[n:]
		}
	}
	return nil
}

type LoginResponse struct {
	Token  string
	UserID string
	Name   string
}

func (m *LoginResponse) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.Token)
	b = appendString(b, 2, m.UserID)
	b = appendString(b, 3, m.Name)
	return b
}

func (m *LoginResponse) Unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return errMalformed
		}
		b = b[n:]
		switch {
		case num == 1 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return errMalformed
			}
			m.Token = v
			b = b[n:]
		case num == 2 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return errMalformed
			}
			m.UserID = v
			b = b[n:]
		case num == 3 && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return errMalformed
			}
			m.Name = v
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return errMalformed
			}
			b = b[n:]
		}
	}
	return nil
}
