package protolens

import (
	"math"
	"unicode/utf8"
)

// DecodeOptions tunes the behavior of (*MessageInfo).Decode for payloads
// that might be adversarial. The zero value is ready to use.
type DecodeOptions struct {
	// MaxDepth bounds how many nested messages Decode will recurse into
	// before giving up and treating the remaining LEN value as Unknown
	// instead of decoding it. Zero means DefaultMaxDecodeDepth.
	MaxDepth int
}

// DefaultMaxDecodeDepth is the recursion limit Decode applies when
// DecodeOptions.MaxDepth is unset. It exists so a message type that embeds
// itself (directly or through a cycle of message types, which the schema
// compiler permits) cannot be used to blow the goroutine stack by crafting
// a deeply nested payload.
const DefaultMaxDecodeDepth = 100

// Decode interprets data as an instance of this message type. It never
// panics and never returns an error: a field number the schema does not
// recognize, a value whose wire type does not match the schema, or a
// truncated payload all become part of the result (UnknownFieldValue,
// IncompleteValue, MessageValue.Garbage) rather than aborting decoding.
func (m *MessageInfo) Decode(data []byte, ctx *Context) *MessageValue {
	return m.decode(data, ctx, DecodeOptions{}, 0)
}

// DecodeWithOptions is Decode with explicit DecodeOptions, for callers that
// need to tighten the recursion limit against untrusted input.
func (m *MessageInfo) DecodeWithOptions(data []byte, ctx *Context, opts DecodeOptions) *MessageValue {
	return m.decode(data, ctx, opts, 0)
}

func (m *MessageInfo) decode(data []byte, ctx *Context, opts DecodeOptions, depth int) *MessageValue {
	msg := &MessageValue{MessageID: m.id}

	for len(data) > 0 {
		number, wt, n, ok := readTag(data)
		if !ok {
			msg.Garbage = data
			break
		}
		data = data[n:]

		var value Value
		field, known := m.FieldByNumber(number)
		switch {
		case known && field.Multiplicity == RepeatedPacked && wt == lenWireType:
			value, data = decodePacked(data, wt, field.Type)
		case known && field.Type.wireType() == wt:
			// Covers both an ordinary Repeated/Singular/Optional field and a
			// RepeatedPacked field sent unpacked (its native scalar wire
			// type): a writer is always allowed to emit a packed field's
			// elements one at a time instead of batched into one LEN value.
			value, data = decodeKnownValue(data, wt, field.Type, ctx, opts, depth)
		default:
			value, data = decodeUnknown(data, wt)
		}

		msg.Fields = append(msg.Fields, FieldValue{Number: number, Value: value})
	}

	return msg
}

func decodeKnownValue(data []byte, wt uint8, ft FieldType, ctx *Context, opts DecodeOptions, depth int) (Value, []byte) {
	original := data

	switch ft.Category {
	case MessageFieldType:
		payload, n, ok := readLengthDelimited(data)
		if !ok {
			return IncompleteValue{WireType: wt, Raw: original}, nil
		}
		rest := data[n:]

		maxDepth := opts.MaxDepth
		if maxDepth == 0 {
			maxDepth = DefaultMaxDecodeDepth
		}
		if depth >= maxDepth {
			return UnknownFieldValue{Kind: UnknownVariableLength, WireType: wt, RawBytes: payload}, rest
		}

		inner := ctx.MessageByID(ft.MessageID).decode(payload, ctx, opts, depth+1)
		return inner, rest

	case EnumFieldType:
		v, raw, ok := readVarint(data)
		if !ok {
			return IncompleteValue{WireType: wt, Raw: original}, nil
		}
		return EnumFieldValue{EnumID: ft.EnumID, Number: int64(v)}, data[len(raw):]

	default:
		return decodeScalar(data, wt, ft.Scalar, original)
	}
}

func decodeScalar(data []byte, wt uint8, kind ScalarKind, original []byte) (Value, []byte) {
	incomplete := func() (Value, []byte) { return IncompleteValue{WireType: wt, Raw: original}, nil }

	switch kind {
	case ScalarDouble:
		v, ok := readFixed64(data)
		if !ok {
			return incomplete()
		}
		return DoubleValue(math.Float64frombits(v)), data[8:]
	case ScalarFloat:
		v, ok := readFixed32(data)
		if !ok {
			return incomplete()
		}
		return FloatValue(math.Float32frombits(v)), data[4:]
	case ScalarInt32:
		v, raw, ok := readVarint(data)
		if !ok {
			return incomplete()
		}
		return Int32Value(int32(int64(v))), data[len(raw):]
	case ScalarInt64:
		v, raw, ok := readVarint(data)
		if !ok {
			return incomplete()
		}
		return Int64Value(int64(v)), data[len(raw):]
	case ScalarUInt32:
		v, raw, ok := readVarint(data)
		if !ok {
			return incomplete()
		}
		return UInt32Value(uint32(v)), data[len(raw):]
	case ScalarUInt64:
		v, raw, ok := readVarint(data)
		if !ok {
			return incomplete()
		}
		return UInt64Value(v), data[len(raw):]
	case ScalarSInt32:
		v, raw, ok := readVarint(data)
		if !ok {
			return incomplete()
		}
		return SInt32Value(zigzagDecode32(uint32(v))), data[len(raw):]
	case ScalarSInt64:
		v, raw, ok := readVarint(data)
		if !ok {
			return incomplete()
		}
		return SInt64Value(zigzagDecode64(v)), data[len(raw):]
	case ScalarFixed32:
		v, ok := readFixed32(data)
		if !ok {
			return incomplete()
		}
		return Fixed32Value(v), data[4:]
	case ScalarFixed64:
		v, ok := readFixed64(data)
		if !ok {
			return incomplete()
		}
		return Fixed64Value(v), data[8:]
	case ScalarSFixed32:
		v, ok := readFixed32(data)
		if !ok {
			return incomplete()
		}
		return SFixed32Value(int32(v)), data[4:]
	case ScalarSFixed64:
		v, ok := readFixed64(data)
		if !ok {
			return incomplete()
		}
		return SFixed64Value(int64(v)), data[8:]
	case ScalarBool:
		v, raw, ok := readVarint(data)
		if !ok {
			return incomplete()
		}
		return BoolValue(v != 0), data[len(raw):]
	case ScalarString:
		payload, n, ok := readLengthDelimited(data)
		if !ok {
			return incomplete()
		}
		if !utf8.Valid(payload) {
			// The length-delimited framing was well-formed, so the exact
			// boundary of this field is known even though its content
			// isn't valid text; keep decoding the rest of the message
			// instead of treating the remainder of the buffer as lost.
			return IncompleteValue{WireType: wt, Raw: original[:n]}, data[n:]
		}
		return StringValue(payload), data[n:]
	case ScalarBytes:
		payload, n, ok := readLengthDelimited(data)
		if !ok {
			return incomplete()
		}
		b := make([]byte, len(payload))
		copy(b, payload)
		return BytesValue(b), data[n:]
	default:
		return incomplete()
	}
}

func decodePacked(data []byte, wt uint8, ft FieldType) (Value, []byte) {
	original := data
	payload, n, ok := readLengthDelimited(data)
	if !ok {
		return IncompleteValue{WireType: wt, Raw: original}, nil
	}
	rest := data[n:]

	kind := packedKindFor(ft)
	pa := PackedArray{Kind: kind}

	for len(payload) > 0 {
		switch kind {
		case PackedDouble:
			v, ok := readFixed64(payload)
			if !ok {
				return IncompleteValue{WireType: wt, Raw: original}, nil
			}
			pa.Doubles = append(pa.Doubles, math.Float64frombits(v))
			payload = payload[8:]
		case PackedFloat:
			v, ok := readFixed32(payload)
			if !ok {
				return IncompleteValue{WireType: wt, Raw: original}, nil
			}
			pa.Floats = append(pa.Floats, math.Float32frombits(v))
			payload = payload[4:]
		case PackedInt32:
			v, raw, ok := readVarint(payload)
			if !ok {
				return IncompleteValue{WireType: wt, Raw: original}, nil
			}
			pa.Int32s = append(pa.Int32s, int32(int64(v)))
			payload = payload[len(raw):]
		case PackedInt64:
			v, raw, ok := readVarint(payload)
			if !ok {
				return IncompleteValue{WireType: wt, Raw: original}, nil
			}
			pa.Int64s = append(pa.Int64s, int64(v))
			payload = payload[len(raw):]
		case PackedUInt32:
			v, raw, ok := readVarint(payload)
			if !ok {
				return IncompleteValue{WireType: wt, Raw: original}, nil
			}
			pa.UInt32s = append(pa.UInt32s, uint32(v))
			payload = payload[len(raw):]
		case PackedUInt64:
			v, raw, ok := readVarint(payload)
			if !ok {
				return IncompleteValue{WireType: wt, Raw: original}, nil
			}
			pa.UInt64s = append(pa.UInt64s, v)
			payload = payload[len(raw):]
		case PackedSInt32:
			v, raw, ok := readVarint(payload)
			if !ok {
				return IncompleteValue{WireType: wt, Raw: original}, nil
			}
			pa.SInt32s = append(pa.SInt32s, zigzagDecode32(uint32(v)))
			payload = payload[len(raw):]
		case PackedSInt64:
			v, raw, ok := readVarint(payload)
			if !ok {
				return IncompleteValue{WireType: wt, Raw: original}, nil
			}
			pa.SInt64s = append(pa.SInt64s, zigzagDecode64(v))
			payload = payload[len(raw):]
		case PackedFixed32:
			v, ok := readFixed32(payload)
			if !ok {
				return IncompleteValue{WireType: wt, Raw: original}, nil
			}
			pa.Fixed32s = append(pa.Fixed32s, v)
			payload = payload[4:]
		case PackedFixed64:
			v, ok := readFixed64(payload)
			if !ok {
				return IncompleteValue{WireType: wt, Raw: original}, nil
			}
			pa.Fixed64s = append(pa.Fixed64s, v)
			payload = payload[8:]
		case PackedSFixed32:
			v, ok := readFixed32(payload)
			if !ok {
				return IncompleteValue{WireType: wt, Raw: original}, nil
			}
			pa.SFixed32s = append(pa.SFixed32s, int32(v))
			payload = payload[4:]
		case PackedSFixed64:
			v, ok := readFixed64(payload)
			if !ok {
				return IncompleteValue{WireType: wt, Raw: original}, nil
			}
			pa.SFixed64s = append(pa.SFixed64s, int64(v))
			payload = payload[8:]
		case PackedBool:
			v, raw, ok := readVarint(payload)
			if !ok {
				return IncompleteValue{WireType: wt, Raw: original}, nil
			}
			pa.Bools = append(pa.Bools, v != 0)
			payload = payload[len(raw):]
		}
	}

	return pa, rest
}

// packedKindFor maps a resolved field type to the PackedArray variant used
// to decode it. Enum fields pack identically to int64 on the wire (a plain
// varint stream, no zig-zag) so they share PackedInt64's decode path; the
// field's own FieldType.EnumID is what a caller uses to interpret the
// numbers afterward.
func packedKindFor(ft FieldType) PackedKind {
	if ft.Category == EnumFieldType {
		return PackedInt64
	}
	switch ft.Scalar {
	case ScalarDouble:
		return PackedDouble
	case ScalarFloat:
		return PackedFloat
	case ScalarInt32:
		return PackedInt32
	case ScalarInt64:
		return PackedInt64
	case ScalarUInt32:
		return PackedUInt32
	case ScalarUInt64:
		return PackedUInt64
	case ScalarSInt32:
		return PackedSInt32
	case ScalarSInt64:
		return PackedSInt64
	case ScalarFixed32:
		return PackedFixed32
	case ScalarFixed64:
		return PackedFixed64
	case ScalarSFixed32:
		return PackedSFixed32
	case ScalarSFixed64:
		return PackedSFixed64
	default:
		return PackedBool
	}
}

func decodeUnknown(data []byte, wt uint8) (Value, []byte) {
	switch wt {
	case varintWireType:
		_, raw, ok := readVarint(data)
		if !ok {
			return IncompleteValue{WireType: wt, Raw: data}, nil
		}
		return UnknownFieldValue{Kind: UnknownVarint, WireType: wt, RawBytes: raw}, data[len(raw):]
	case fixed64WireType:
		if len(data) < 8 {
			return IncompleteValue{WireType: wt, Raw: data}, nil
		}
		return UnknownFieldValue{Kind: UnknownFixed64, WireType: wt, RawBytes: data[:8]}, data[8:]
	case lenWireType:
		payload, n, ok := readLengthDelimited(data)
		if !ok {
			return IncompleteValue{WireType: wt, Raw: data}, nil
		}
		return UnknownFieldValue{Kind: UnknownVariableLength, WireType: wt, RawBytes: payload}, data[n:]
	case fixed32WireType:
		if len(data) < 4 {
			return IncompleteValue{WireType: wt, Raw: data}, nil
		}
		return UnknownFieldValue{Kind: UnknownFixed32, WireType: wt, RawBytes: data[:4]}, data[4:]
	default:
		// The wire type itself is malformed (3, 4, 6 or 7). There is no way
		// to know how many bytes this value occupies, so decoding gives up
		// on the rest of the enclosing message.
		return UnknownFieldValue{Kind: UnknownInvalid, WireType: wt, RawBytes: data}, nil
	}
}
