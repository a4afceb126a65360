package protolens

import "math"

// Encode serializes a decoded message back into protobuf wire format.
// Encoding a MessageValue produced by Decode reproduces canonically encoded
// input exactly, including any Garbage, Unknown or Incomplete values it
// holds, which are written back byte for byte. Tags and known values are
// re-encoded from their decoded form, so a non-minimal varint, a bool sent
// as a number other than 0 or 1, or an int32/uint32 varint carrying more
// than 32 bits comes back in canonical form rather than as the original
// bytes.
func (m *MessageValue) Encode(ctx *Context) []byte {
	var out []byte
	for _, f := range m.Fields {
		wt, body := encodeValue(f.Value, ctx)
		out = appendTag(out, f.Number, wt)
		out = append(out, body...)
	}
	out = append(out, m.Garbage...)
	return out
}

func encodeValue(v Value, ctx *Context) (uint8, []byte) {
	switch t := v.(type) {
	case DoubleValue:
		return fixed64WireType, appendFixed64(nil, math.Float64bits(float64(t)))
	case FloatValue:
		return fixed32WireType, appendFixed32(nil, math.Float32bits(float32(t)))
	case Int32Value:
		return varintWireType, appendVarint(nil, uint64(int64(t)))
	case Int64Value:
		return varintWireType, appendVarint(nil, uint64(int64(t)))
	case UInt32Value:
		return varintWireType, appendVarint(nil, uint64(t))
	case UInt64Value:
		return varintWireType, appendVarint(nil, uint64(t))
	case SInt32Value:
		return varintWireType, appendVarint(nil, uint64(zigzagEncode32(int32(t))))
	case SInt64Value:
		return varintWireType, appendVarint(nil, zigzagEncode64(int64(t)))
	case Fixed32Value:
		return fixed32WireType, appendFixed32(nil, uint32(t))
	case Fixed64Value:
		return fixed64WireType, appendFixed64(nil, uint64(t))
	case SFixed32Value:
		return fixed32WireType, appendFixed32(nil, uint32(t))
	case SFixed64Value:
		return fixed64WireType, appendFixed64(nil, uint64(t))
	case BoolValue:
		v := uint64(0)
		if t {
			v = 1
		}
		return varintWireType, appendVarint(nil, v)
	case StringValue:
		return lenWireType, appendBytes(nil, []byte(t))
	case BytesValue:
		return lenWireType, appendBytes(nil, []byte(t))
	case EnumFieldValue:
		return varintWireType, appendVarint(nil, uint64(t.Number))
	case *MessageValue:
		return lenWireType, appendBytes(nil, t.Encode(ctx))
	case PackedArray:
		return lenWireType, appendBytes(nil, t.encode())
	case UnknownFieldValue:
		return t.WireType, t.encode()
	case IncompleteValue:
		return t.WireType, append([]byte(nil), t.Raw...)
	default:
		// Every Value implementation is handled above; this only triggers
		// if a new Value type is added without updating encodeValue.
		return 0, nil
	}
}

func (u UnknownFieldValue) encode() []byte {
	switch u.Kind {
	case UnknownVariableLength:
		return appendBytes(nil, u.RawBytes)
	default:
		// Varint, Fixed64, Fixed32 and Invalid all store the exact bytes
		// that belong on the wire with no extra framing.
		return append([]byte(nil), u.RawBytes...)
	}
}

func (p PackedArray) encode() []byte {
	var out []byte
	switch p.Kind {
	case PackedDouble:
		for _, v := range p.Doubles {
			out = appendFixed64(out, math.Float64bits(v))
		}
	case PackedFloat:
		for _, v := range p.Floats {
			out = appendFixed32(out, math.Float32bits(v))
		}
	case PackedInt32:
		for _, v := range p.Int32s {
			out = appendVarint(out, uint64(int64(v)))
		}
	case PackedInt64:
		for _, v := range p.Int64s {
			out = appendVarint(out, uint64(v))
		}
	case PackedUInt32:
		for _, v := range p.UInt32s {
			out = appendVarint(out, uint64(v))
		}
	case PackedUInt64:
		for _, v := range p.UInt64s {
			out = appendVarint(out, v)
		}
	case PackedSInt32:
		for _, v := range p.SInt32s {
			out = appendVarint(out, uint64(zigzagEncode32(v)))
		}
	case PackedSInt64:
		for _, v := range p.SInt64s {
			out = appendVarint(out, zigzagEncode64(v))
		}
	case PackedFixed32:
		for _, v := range p.Fixed32s {
			out = appendFixed32(out, v)
		}
	case PackedFixed64:
		for _, v := range p.Fixed64s {
			out = appendFixed64(out, v)
		}
	case PackedSFixed32:
		for _, v := range p.SFixed32s {
			out = appendFixed32(out, uint32(v))
		}
	case PackedSFixed64:
		for _, v := range p.SFixed64s {
			out = appendFixed64(out, uint64(v))
		}
	case PackedBool:
		for _, v := range p.Bools {
			b := uint64(0)
			if v {
				b = 1
			}
			out = appendVarint(out, b)
		}
	}
	return out
}
