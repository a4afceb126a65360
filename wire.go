package protolens

import "google.golang.org/protobuf/encoding/protowire"

// wireType mirrors the three-bit wire type tucked into every field tag.
// Named constants read better than protowire's own Type at call sites that
// only care about the four values relevant to proto3 (0, 1, 2, 5); 3, 4, 6
// and 7 never appear in valid protobuf; decodeUnknown records them as
// UnknownInvalid.
const (
	varintWireType  = uint8(protowire.VarintType)
	fixed64WireType = uint8(protowire.Fixed64Type)
	lenWireType     = uint8(protowire.BytesType)
	fixed32WireType = uint8(protowire.Fixed32Type)
)

// readTag consumes a field tag (field number + wire type) from b, returning
// the number of bytes consumed. ok is false if b did not begin with a valid
// varint-encoded tag.
func readTag(b []byte) (number int, wt uint8, n int, ok bool) {
	num, typ, n := protowire.ConsumeTag(b)
	if n < 0 {
		return 0, 0, 0, false
	}
	return int(num), uint8(typ), n, true
}

func appendTag(dst []byte, number int, wt uint8) []byte {
	return protowire.AppendTag(dst, protowire.Number(number), protowire.Type(wt))
}

// readVarint reads a raw varint and also returns the exact bytes it
// occupied on the wire, so a value that cannot be interpreted (Unknown) can
// still be re-encoded byte for byte. ok is false for a truncated varint and
// for one that does not fit in 64 bits.
func readVarint(b []byte) (v uint64, raw []byte, ok bool) {
	val, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, nil, false
	}
	return val, b[:n], true
}

func readFixed32(b []byte) (v uint32, ok bool) {
	val, n := protowire.ConsumeFixed32(b)
	if n < 0 {
		return 0, false
	}
	return val, true
}

func readFixed64(b []byte) (v uint64, ok bool) {
	val, n := protowire.ConsumeFixed64(b)
	if n < 0 {
		return 0, false
	}
	return val, true
}

// readLengthDelimited reads a LEN-encoded value (the varint length prefix
// followed by that many bytes) and returns the payload plus total bytes
// consumed including the prefix.
func readLengthDelimited(b []byte) (payload []byte, n int, ok bool) {
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, false
	}
	return v, n, true
}

func appendVarint(dst []byte, v uint64) []byte  { return protowire.AppendVarint(dst, v) }
func appendFixed32(dst []byte, v uint32) []byte { return protowire.AppendFixed32(dst, v) }
func appendFixed64(dst []byte, v uint64) []byte { return protowire.AppendFixed64(dst, v) }
func appendBytes(dst []byte, v []byte) []byte   { return protowire.AppendBytes(dst, v) }

func zigzagEncode32(v int32) uint32 {
	return uint32(protowire.EncodeZigZag(int64(v)))
}

func zigzagDecode32(v uint32) int32 {
	return int32(protowire.DecodeZigZag(uint64(v)))
}

func zigzagEncode64(v int64) uint64 {
	return protowire.EncodeZigZag(v)
}

func zigzagDecode64(v uint64) int64 {
	return protowire.DecodeZigZag(v)
}
