package protolens

// Value is the decoded form of a single protobuf field. It is a closed set
// of concrete types; a type switch over Value covers every case the decoder
// can produce.
type Value interface {
	isValue()
}

// DoubleValue, FloatValue and the other scalar Value implementations wrap
// the corresponding Go type for each proto3 scalar kind. Two of the ten
// integer kinds (SInt32/SInt64) differ from their plain counterparts only
// in wire encoding (zig-zag) - by the time they reach a Value they are
// ordinary signed integers.
type (
	DoubleValue   float64
	FloatValue    float32
	Int32Value    int32
	Int64Value    int64
	UInt32Value   uint32
	UInt64Value   uint64
	SInt32Value   int32
	SInt64Value   int64
	Fixed32Value  uint32
	Fixed64Value  uint64
	SFixed32Value int32
	SFixed64Value int64
	BoolValue     bool
	StringValue   string
	BytesValue    []byte
)

func (DoubleValue) isValue()   {}
func (FloatValue) isValue()    {}
func (Int32Value) isValue()    {}
func (Int64Value) isValue()    {}
func (UInt32Value) isValue()   {}
func (UInt64Value) isValue()   {}
func (SInt32Value) isValue()   {}
func (SInt64Value) isValue()   {}
func (Fixed32Value) isValue()  {}
func (Fixed64Value) isValue()  {}
func (SFixed32Value) isValue() {}
func (SFixed64Value) isValue() {}
func (BoolValue) isValue()     {}
func (StringValue) isValue()   {}
func (BytesValue) isValue()    {}

// EnumFieldValue is the decoded value of an enum field: the raw integer
// that was on the wire plus the EnumID of the enum type the schema declared
// for that field. The integer is kept even if it names no known
// EnumConstantElement, since proto3 enums are open (any int32 is valid).
type EnumFieldValue struct {
	EnumID EnumID
	Number int64
}

func (EnumFieldValue) isValue() {}

// MessageValue is the decoded value of a message: either a top-level
// decode result or a nested message field. Fields are kept in wire order,
// including duplicates - a caller that wants "last one wins" semantics for
// a non-repeated field must apply that policy themselves by scanning
// Fields, since the decoder never discards data.
type MessageValue struct {
	MessageID MessageID
	Fields    []FieldValue

	// Garbage holds any bytes left over after a malformed varint tag could
	// not be parsed. It is nil for a cleanly terminated message.
	Garbage []byte
}

func (*MessageValue) isValue() {}

// FieldValue pairs a field number read off the wire with its decoded
// value. The number is preserved verbatim even when Value is Unknown, so a
// caller can inspect fields the schema does not know about.
type FieldValue struct {
	Number int
	Value  Value
}

// PackedKind identifies which scalar type a PackedArray holds.
type PackedKind uint8

const (
	PackedDouble PackedKind = iota
	PackedFloat
	PackedInt32
	PackedInt64
	PackedUInt32
	PackedUInt64
	PackedSInt32
	PackedSInt64
	PackedFixed32
	PackedFixed64
	PackedSFixed32
	PackedSFixed64
	PackedBool
)

// PackedArray is the decoded value of a repeated scalar field with packed
// encoding: a single LEN-delimited run of back-to-back scalar values. Only
// the slice matching Kind is populated.
type PackedArray struct {
	Kind PackedKind

	Doubles   []float64
	Floats    []float32
	Int32s    []int32
	Int64s    []int64
	UInt32s   []uint32
	UInt64s   []uint64
	SInt32s   []int32
	SInt64s   []int64
	Fixed32s  []uint32
	Fixed64s  []uint64
	SFixed32s []int32
	SFixed64s []int64
	Bools     []bool
}

func (PackedArray) isValue() {}

// UnknownKind classifies an UnknownFieldValue by the wire type that was
// actually present on the wire.
type UnknownKind uint8

const (
	// UnknownVarint is wire type 0: field number unknown to the schema.
	UnknownVarint UnknownKind = iota
	// UnknownFixed64 is wire type 1.
	UnknownFixed64
	// UnknownVariableLength is wire type 2 (LEN).
	UnknownVariableLength
	// UnknownFixed32 is wire type 5.
	UnknownFixed32
	// UnknownInvalid means the wire type itself (3, 4, 6 or 7) is not one
	// proto3 defines. Because its length cannot be determined, decoding
	// gives up on the rest of the enclosing message: RawBytes holds
	// everything left in the buffer.
	UnknownInvalid
)

// UnknownFieldValue is produced for a field number the schema does not
// declare, or for a field whose wire type on the wire does not match what
// the schema expects for that field number. RawBytes always holds the
// exact bytes needed to reproduce the value byte-for-byte on re-encode:
// the raw varint, the 4 or 8 little-endian bytes, or the LEN payload
// (without its length prefix, which is regenerated on encode).
type UnknownFieldValue struct {
	Kind     UnknownKind
	WireType uint8
	RawBytes []byte
}

func (UnknownFieldValue) isValue() {}

// IncompleteValue is produced when a value's header was legible but the
// buffer ran out before the value's declared length (or fixed width) was
// satisfied; Raw then holds whatever bytes remained. It is also produced for
// a string field whose payload is not valid UTF-8; Raw then holds that
// field's length prefix and payload, and decoding continues after it.
// Re-encoding an IncompleteValue writes Raw back verbatim.
type IncompleteValue struct {
	WireType uint8
	Raw      []byte
}

func (IncompleteValue) isValue() {}
