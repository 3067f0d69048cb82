// Package wirev1 is the hand-maintained wire codec for the mindwell.v1 RPC
// surface. Field numbers mirror api/mindwell.proto, which is the schema of
// record; no generated code is committed, every message encodes and decodes
// through protowire directly.
package wirev1

import (
	"errors"
	"math"
	"time"

	"google.golang.org/protobuf/encoding/protowire"
)

var errMalformed = errors.New("malformed message")

// Message is what the RPC layer and the gRPC-Web bridge pass around.
type Message interface {
	Marshal() []byte
	Unmarshal(b []byte) error
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendInt32(b []byte, num protowire.Number, v int32) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(int64(v)))
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, 1)
}

func appendDouble(b []byte, num protowire.Number, v float64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(v))
}

func appendMessage(b []byte, num protowire.Number, inner []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, inner)
}

// appendTime writes a Timestamp submessage; the zero time is omitted entirely,
// which is how optional audit stamps stay absent on the wire.
func appendTime(b []byte, num protowire.Number, t time.Time) []byte {
	if t.IsZero() {
		return b
	}
	var inner []byte
	if s := t.Unix(); s != 0 {
		inner = protowire.AppendTag(inner, 1, protowire.VarintType)
		inner = protowire.AppendVarint(inner, uint64(s))
	}
	if n := t.Nanosecond(); n != 0 {
		inner = protowire.AppendTag(inner, 2, protowire.VarintType)
		inner = protowire.AppendVarint(inner, uint64(n))
	}
	return appendMessage(b, num, inner)
}

func appendTimePtr(b []byte, num protowire.Number, t *time.Time) []byte {
	if t == nil {
		return b
	}
	return appendTime(b, num, *t)
}

func consumeTime(b []byte) time.Time {
	var secs int64
	var nanos int64
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			break
		}
		b = b[n:]
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			secs = int64(v)
			b = b[n:]
		case num == 2 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			nanos = int64(v)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return time.Time{}
			}
			b = b[n:]
		}
	}
	if secs == 0 && nanos == 0 {
		return time.Time{}
	}
	return time.Unix(secs, nanos)
}

func consumeTimePtr(b []byte) *time.Time {
	t := consumeTime(b)
	if t.IsZero() {
		return nil
	}
	return &t
}

// fields walks a buffer and hands each tagged value to fn. fn reports the
// bytes it consumed and whether it recognized the field; unrecognized fields
// are skipped per proto3 rules.
func fields(b []byte, fn func(num protowire.Number, typ protowire.Type, b []byte) (int, bool)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return errMalformed
		}
		b = b[n:]
		if used, ok := fn(num, typ, b); ok {
			if used < 0 {
				return errMalformed
			}
			b = b[used:]
			continue
		}
		n = protowire.ConsumeFieldValue(num, typ, b)
		if n < 0 {
			return errMalformed
		}
		b = b[n:]
	}
	return nil
}

// skipUnknown drops every field; used by empty request/response messages.
func skipUnknown(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return errMalformed
		}
		b = b[n:]
		n = protowire.ConsumeFieldValue(num, typ, b)
		if n < 0 {
			return errMalformed
		}
		b = b[n:]
	}
	return nil
}
