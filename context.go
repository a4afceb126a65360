package protolens

// MessageID is a dense, zero-based reference to a message type within a
// Context. It is only meaningful relative to the Context that produced it.
type MessageID int

// EnumID is a dense, zero-based reference to an enum type within a Context.
type EnumID int

// ServiceID is a dense, zero-based reference to a service within a Context.
type ServiceID int

// FieldTypeCategory distinguishes the three kinds of resolved field types.
// Unlike DataTypeCategory (an AST-level concept, still holding an
// unresolved name), FieldTypeCategory is post-linking: a NamedDataType has
// been resolved down to a concrete MessageID or EnumID.
type FieldTypeCategory uint8

const (
	ScalarFieldType FieldTypeCategory = iota
	MessageFieldType
	EnumFieldType
)

// FieldType is the resolved type of a FieldInfo: a scalar kind, or a
// reference to a message or enum type elsewhere in the same Context.
type FieldType struct {
	Category  FieldTypeCategory
	Scalar    ScalarKind
	MessageID MessageID
	EnumID    EnumID
}

// wireType returns the protobuf wire type this FieldType is encoded with
// when it appears unpacked. Packed encoding (wire type LEN) only applies
// to repeated scalar fields and is decided by Multiplicity, not FieldType.
func (ft FieldType) wireType() uint8 {
	if ft.Category == MessageFieldType {
		return lenWireType
	}
	if ft.Category == EnumFieldType {
		return varintWireType
	}
	switch ft.Scalar {
	case ScalarDouble, ScalarFixed64, ScalarSFixed64:
		return fixed64WireType
	case ScalarFloat, ScalarFixed32, ScalarSFixed32:
		return fixed32WireType
	case ScalarString, ScalarBytes:
		return lenWireType
	default:
		return varintWireType
	}
}

// Multiplicity describes how many times a field may appear on the wire and,
// for repeated scalars, whether they are packed into a single LEN value.
// A field explicitly declared `optional` is Optional rather than Singular:
// the two decode identically, but Optional records that the schema author
// asked for explicit presence tracking, which callers building a higher
// level "has this field been set" API need to distinguish from a bare
// proto3 scalar default.
type Multiplicity uint8

const (
	Singular Multiplicity = iota
	Optional
	Repeated
	RepeatedPacked
)

// FieldInfo is a fully resolved field of a message: a linked FieldElement.
type FieldInfo struct {
	Name         string
	Number       int
	Type         FieldType
	Multiplicity Multiplicity
	Options      []OptionElement

	// OneofIndex is the index into the owning MessageInfo's Oneofs slice, or
	// -1 if this field is not part of a oneof.
	OneofIndex int
}

// OneofInfo is a fully resolved oneof: the field numbers sharing storage.
type OneofInfo struct {
	Name         string
	Options      []OptionElement
	FieldNumbers []int
}

// MessageInfo is a fully resolved message type.
type MessageInfo struct {
	id       MessageID
	Name     string
	FullName string
	Fields   []*FieldInfo
	Oneofs   []*OneofInfo

	// IsMapEntry is true for the synthetic two-field message the compiler
	// generates for each `map<K, V>` field. The entry is registered under
	// its generated name like any other nested message.
	IsMapEntry bool

	fieldsByNumber map[int]*FieldInfo
	fieldsByName   map[string]*FieldInfo
}

// ID returns the MessageID that resolves this MessageInfo within its Context.
func (m *MessageInfo) ID() MessageID { return m.id }

// FieldByNumber looks up a field by its wire field number.
func (m *MessageInfo) FieldByNumber(number int) (*FieldInfo, bool) {
	f, ok := m.fieldsByNumber[number]
	return f, ok
}

// FieldByName looks up a field by its declared name.
func (m *MessageInfo) FieldByName(name string) (*FieldInfo, bool) {
	f, ok := m.fieldsByName[name]
	return f, ok
}

// EnumInfo is a fully resolved enum type.
type EnumInfo struct {
	id       EnumID
	Name     string
	FullName string
	Options  []OptionElement
	Values   []EnumConstantElement

	byNumber map[int64]string
	byName   map[string]int64
}

// ID returns the EnumID that resolves this EnumInfo within its Context.
func (e *EnumInfo) ID() EnumID { return e.id }

// NameOf returns the constant name declared for number, if any. Proto3
// enums are open wire-format-wise, so a decoded value with no matching name
// is not an error; callers just get ok=false.
func (e *EnumInfo) NameOf(number int64) (string, bool) {
	name, ok := e.byNumber[number]
	return name, ok
}

// NumberOf returns the number declared for the named constant.
func (e *EnumInfo) NumberOf(name string) (int64, bool) {
	n, ok := e.byName[name]
	return n, ok
}

// RPCInfo is a fully resolved rpc method.
type RPCInfo struct {
	Name              string
	Options           []OptionElement
	RequestMessageID  MessageID
	RequestStreaming  bool
	ResponseMessageID MessageID
	ResponseStreaming bool
}

// ServiceInfo is a fully resolved service.
type ServiceInfo struct {
	id       ServiceID
	Name     string
	FullName string
	Options  []OptionElement
	RPCs     []*RPCInfo

	rpcsByName map[string]*RPCInfo
}

// ID returns the ServiceID that resolves this ServiceInfo within its Context.
func (s *ServiceInfo) ID() ServiceID { return s.id }

// RPCByName looks up a method by its declared name.
func (s *ServiceInfo) RPCByName(name string) (*RPCInfo, bool) {
	r, ok := s.rpcsByName[name]
	return r, ok
}

// Context is the immutable, linked view of every message, enum and service
// declared across the sources passed to Parse. It is the handle a caller
// holds on to for decoding: every MessageID, EnumID and ServiceID is only
// meaningful relative to the Context that produced it.
type Context struct {
	messages []*MessageInfo
	enums    []*EnumInfo
	services []*ServiceInfo

	messagesByName map[string]MessageID
	enumsByName    map[string]EnumID
	servicesByName map[string]ServiceID
}

// GetMessage looks up a message by its fully-qualified name, e.g.
// "example.Address" or "example.Outer.Inner" for a nested type.
func (c *Context) GetMessage(fullName string) (*MessageInfo, bool) {
	id, ok := c.messagesByName[fullName]
	if !ok {
		return nil, false
	}
	return c.messages[id], true
}

// GetEnum looks up an enum by its fully-qualified name.
func (c *Context) GetEnum(fullName string) (*EnumInfo, bool) {
	id, ok := c.enumsByName[fullName]
	if !ok {
		return nil, false
	}
	return c.enums[id], true
}

// GetService looks up a service by its fully-qualified name.
func (c *Context) GetService(fullName string) (*ServiceInfo, bool) {
	id, ok := c.servicesByName[fullName]
	if !ok {
		return nil, false
	}
	return c.services[id], true
}

// MessageByID resolves a MessageID obtained from a FieldType or RPCInfo
// back to its MessageInfo. It panics if id did not come from this Context.
func (c *Context) MessageByID(id MessageID) *MessageInfo {
	return c.messages[id]
}

// EnumByID resolves an EnumID obtained from a FieldType back to its
// EnumInfo. It panics if id did not come from this Context.
func (c *Context) EnumByID(id EnumID) *EnumInfo {
	return c.enums[id]
}

// ServiceByID resolves a ServiceID back to its ServiceInfo.
func (c *Context) ServiceByID(id ServiceID) *ServiceInfo {
	return c.services[id]
}

// Decode decodes data as an instance of the message identified by id. It
// never returns an error: malformed or truncated input is represented as
// Incomplete/Unknown values within the returned MessageValue rather than
// aborting decoding. Decode panics if id did not come from this Context.
func (c *Context) Decode(id MessageID, data []byte) *MessageValue {
	return c.messages[id].Decode(data, c)
}
