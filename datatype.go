package protolens

import (
	"fmt"
	"strings"
)

// DataTypeCategory is an enumeration which represents the possible kinds
// of field datatypes in message, oneof and map declaration constructs.
type DataTypeCategory int

const (
	// ScalarDataTypeCategory indicates a scalar-builtin datatype
	ScalarDataTypeCategory DataTypeCategory = iota
	// MapDataTypeCategory indicates a protobuf map datatype
	MapDataTypeCategory
	// NamedDataTypeCategory indicates a named type-reference, resolved
	// against the Context by the schema compiler.
	NamedDataTypeCategory
)

// DataType is the interface which must be implemented by the field datatypes.
// Name() returns the name of the datatype and Category() returns the category
// of the datatype.
type DataType interface {
	Name() string
	Category() DataTypeCategory
}

// ScalarKind is an enumeration which represents all supported proto3 scalar
// field datatypes.
type ScalarKind int

const (
	// ScalarDouble represents the `double` protobuf type
	ScalarDouble ScalarKind = iota + 1
	// ScalarFloat represents the `float` protobuf type
	ScalarFloat
	// ScalarInt32 represents the `int32` protobuf type
	ScalarInt32
	// ScalarInt64 represents the `int64` protobuf type
	ScalarInt64
	// ScalarUInt32 represents the `uint32` protobuf type
	ScalarUInt32
	// ScalarUInt64 represents the `uint64` protobuf type
	ScalarUInt64
	// ScalarSInt32 represents the `sint32` protobuf type
	ScalarSInt32
	// ScalarSInt64 represents the `sint64` protobuf type
	ScalarSInt64
	// ScalarFixed32 represents the `fixed32` protobuf type
	ScalarFixed32
	// ScalarFixed64 represents the `fixed64` protobuf type
	ScalarFixed64
	// ScalarSFixed32 represents the `sfixed32` protobuf type
	ScalarSFixed32
	// ScalarSFixed64 represents the `sfixed64` protobuf type
	ScalarSFixed64
	// ScalarBool represents the `bool` protobuf type
	ScalarBool
	// ScalarString represents the `string` protobuf type
	ScalarString
	// ScalarBytes represents the `bytes` protobuf type
	ScalarBytes
)

var scalarLookupMap = map[string]ScalarKind{
	"double":   ScalarDouble,
	"float":    ScalarFloat,
	"int32":    ScalarInt32,
	"int64":    ScalarInt64,
	"uint32":   ScalarUInt32,
	"uint64":   ScalarUInt64,
	"sint32":   ScalarSInt32,
	"sint64":   ScalarSInt64,
	"fixed32":  ScalarFixed32,
	"fixed64":  ScalarFixed64,
	"sfixed32": ScalarSFixed32,
	"sfixed64": ScalarSFixed64,
	"bool":     ScalarBool,
	"string":   ScalarString,
	"bytes":    ScalarBytes,
}

// ScalarDataType is a construct which represents a proto3 scalar datatype.
type ScalarDataType struct {
	kind ScalarKind
	name string
}

// Name implements DataType for ScalarDataType.
func (sdt ScalarDataType) Name() string {
	return sdt.name
}

// Category implements DataType for ScalarDataType.
func (sdt ScalarDataType) Category() DataTypeCategory {
	return ScalarDataTypeCategory
}

// Kind returns the specific scalar kind of this datatype.
func (sdt ScalarDataType) Kind() ScalarKind {
	return sdt.kind
}

// newScalarDataType returns the ScalarDataType named by s, and false if s
// does not name a proto3 scalar type.
func newScalarDataType(s string) (ScalarDataType, bool) {
	key := strings.ToLower(s)
	k, ok := scalarLookupMap[key]
	if !ok {
		return ScalarDataType{}, false
	}
	return ScalarDataType{name: key, kind: k}, true
}

// MapDataType is a construct which represents a protobuf map<K,V> datatype.
type MapDataType struct {
	KeyType   DataType
	ValueType DataType
}

// Name implements DataType for MapDataType.
func (mdt MapDataType) Name() string {
	return fmt.Sprintf("map<%s, %s>", mdt.KeyType.Name(), mdt.ValueType.Name())
}

// Category implements DataType for MapDataType.
func (mdt MapDataType) Category() DataTypeCategory {
	return MapDataTypeCategory
}

// NamedDataType is a construct which represents a message or enum datatype
// reference: a field type, or the request/response type of a rpc.
type NamedDataType struct {
	name              string
	supportsStreaming bool
}

// Name implements DataType for NamedDataType.
func (ndt NamedDataType) Name() string {
	return ndt.name
}

// Category implements DataType for NamedDataType.
func (ndt NamedDataType) Category() DataTypeCategory {
	return NamedDataTypeCategory
}

// IsStream returns true if this NamedDataType is a rpc request/response type
// that was preceded by the `stream` keyword.
func (ndt NamedDataType) IsStream() bool {
	return ndt.supportsStreaming
}

// stream marks a NamedDataType as being preceded by a `stream` keyword.
func (ndt *NamedDataType) stream(flag bool) {
	ndt.supportsStreaming = flag
}
