package protolens

import (
	"strings"
)

// Parse compiles a set of proto3 source strings into a Context. Sources may
// reference each other's message and enum types freely regardless of
// declaration order or which source they came from; import statements are
// recorded on the AST during parsing but are never followed or required to
// resolve, since Parse already has every relevant source in hand.
//
// Parse returns a *ParseError if any source fails to match the proto3
// grammar, or a *SchemaError if the sources parse individually but do not
// link: a duplicate type name, an unresolved type reference, or a field
// number in the reserved range.
func Parse(sources []string) (*Context, error) {
	fds := make([]*FileDescriptor, len(sources))
	for i, src := range sources {
		fd, perr := parseSource(i, src)
		if perr != nil {
			return nil, wrapParse(perr)
		}
		fds[i] = fd
	}

	c := newCompiler()
	for _, fd := range fds {
		if err := c.collectFile(fd); err != nil {
			return nil, wrapParse(err)
		}
	}

	ctx, err := c.link()
	if err != nil {
		return nil, wrapParse(err)
	}
	return ctx, nil
}

// nameKind classifies an entry in the compiler's name registry.
type nameKind uint8

const (
	nameKindMessage nameKind = iota
	nameKindEnum
	nameKindService
)

type nameEntry struct {
	kind nameKind
	idx  int // index into compiler.messages / .enums / .services
}

type rawField struct {
	name    string
	number  int
	label   string // "", "optional", "required" or "repeated"
	dtype   DataType
	options []OptionElement

	oneofIndex int // -1 if not part of a oneof
}

type rawOneof struct {
	name    string
	options []OptionElement
}

type rawMessage struct {
	qualifiedName string
	name          string
	fields        []rawField
	oneofs        []rawOneof
	isMapEntry    bool
}

type rawEnum struct {
	qualifiedName string
	name          string
	options       []OptionElement
	constants     []EnumConstantElement
}

type rawRPC struct {
	name         string
	options      []OptionElement
	requestType  NamedDataType
	responseType NamedDataType
}

type rawService struct {
	qualifiedName string
	name          string
	options       []OptionElement
	rpcs          []rawRPC
}

// compiler accumulates the flattened, not-yet-linked declarations from
// every source file (pass 1: collectFile) and then resolves every type
// reference against the full set (pass 2: link). Splitting the work this
// way is what lets two messages in different files, in any order, refer to
// each other.
type compiler struct {
	messages []*rawMessage
	enums    []*rawEnum
	services []*rawService

	names map[string]nameEntry
}

func newCompiler() *compiler {
	return &compiler{names: make(map[string]nameEntry)}
}

func (c *compiler) register(qualifiedName string, kind nameKind, idx int) *SchemaError {
	if _, exists := c.names[qualifiedName]; exists {
		return &SchemaError{Kind: ErrDuplicateType, FullName: qualifiedName}
	}
	c.names[qualifiedName] = nameEntry{kind: kind, idx: idx}
	return nil
}

func (c *compiler) collectFile(fd *FileDescriptor) *SchemaError {
	for _, me := range fd.Messages {
		if err := c.collectMessage(me); err != nil {
			return err
		}
	}
	for _, ee := range fd.Enums {
		if err := c.collectEnum(ee); err != nil {
			return err
		}
	}
	for _, se := range fd.Services {
		if err := c.collectService(se); err != nil {
			return err
		}
	}
	return nil
}

func (c *compiler) collectMessage(me MessageElement) *SchemaError {
	rm := &rawMessage{qualifiedName: me.QualifiedName, name: me.Name}
	idx := len(c.messages)
	c.messages = append(c.messages, rm)
	if err := c.register(me.QualifiedName, nameKindMessage, idx); err != nil {
		return err
	}

	for oi, oo := range me.OneOfs {
		rm.oneofs = append(rm.oneofs, rawOneof{name: oo.Name, options: oo.Options})
		for _, f := range oo.Fields {
			rm.fields = append(rm.fields, rawField{
				name: f.Name, number: f.Tag, label: f.Label,
				dtype: f.Type, options: f.Options, oneofIndex: oi,
			})
		}
	}

	for _, f := range me.Fields {
		if mdt, ok := f.Type.(MapDataType); ok {
			entryName, err := c.synthesizeMapEntry(me.QualifiedName, f.Name, mdt)
			if err != nil {
				return err
			}
			rm.fields = append(rm.fields, rawField{
				name: f.Name, number: f.Tag, label: "repeated",
				dtype: NamedDataType{name: "." + entryName}, options: f.Options,
				oneofIndex: -1,
			})
			continue
		}
		rm.fields = append(rm.fields, rawField{
			name: f.Name, number: f.Tag, label: f.Label,
			dtype: f.Type, options: f.Options, oneofIndex: -1,
		})
	}

	for _, ne := range me.Messages {
		if err := c.collectMessage(ne); err != nil {
			return err
		}
	}
	for _, ne := range me.Enums {
		if err := c.collectEnum(ne); err != nil {
			return err
		}
	}
	return nil
}

// synthesizeMapEntry registers the implicit two-field message every
// `map<K, V>` field compiles down to on the wire, mirroring what protoc
// itself generates: a message named after the field (camel-cased, with an
// "Entry" suffix) holding `key = 1` and `value = 2`.
func (c *compiler) synthesizeMapEntry(parentQualifiedName, fieldName string, mdt MapDataType) (string, *SchemaError) {
	entryName := titleCase(fieldName) + "Entry"
	qualifiedName := parentQualifiedName + "." + entryName

	rm := &rawMessage{qualifiedName: qualifiedName, name: entryName, isMapEntry: true}
	rm.fields = append(rm.fields,
		rawField{name: "key", number: 1, dtype: mdt.KeyType, oneofIndex: -1},
		rawField{name: "value", number: 2, dtype: mdt.ValueType, oneofIndex: -1},
	)
	idx := len(c.messages)
	c.messages = append(c.messages, rm)
	// Map entry names are derived from the field name, so this collides if
	// another map field of the same message yields the same generated name
	// or a user-written nested message already has it; either is reported
	// as a duplicate type.
	if err := c.register(qualifiedName, nameKindMessage, idx); err != nil {
		return "", err
	}
	return qualifiedName, nil
}

func titleCase(s string) string {
	var sb strings.Builder
	upperNext := true
	for _, r := range s {
		if r == '_' {
			upperNext = true
			continue
		}
		if upperNext && r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		upperNext = false
		sb.WriteRune(r)
	}
	return sb.String()
}

func (c *compiler) collectEnum(ee EnumElement) *SchemaError {
	re := &rawEnum{qualifiedName: ee.QualifiedName, name: ee.Name, options: ee.Options, constants: ee.EnumConstants}
	idx := len(c.enums)
	c.enums = append(c.enums, re)
	return c.register(ee.QualifiedName, nameKindEnum, idx)
}

func (c *compiler) collectService(se ServiceElement) *SchemaError {
	rs := &rawService{qualifiedName: se.QualifiedName, name: se.Name, options: se.Options}
	for _, rpc := range se.RPCs {
		rs.rpcs = append(rs.rpcs, rawRPC{
			name: rpc.Name, options: rpc.Options,
			requestType: rpc.RequestType, responseType: rpc.ResponseType,
		})
	}
	idx := len(c.services)
	c.services = append(c.services, rs)
	return c.register(se.QualifiedName, nameKindService, idx)
}

// resolveTypeName implements proto3's lexical scoping: a relative name is
// searched for first alongside the referencing declaration, then in each
// enclosing scope outward to the file's package, exactly as protoc
// resolves bare type names. A name starting with "." is absolute and is
// looked up directly with no scope walk.
func (c *compiler) resolveTypeName(relativeName, currentPath string) (nameEntry, bool) {
	if strings.HasPrefix(relativeName, ".") {
		e, ok := c.names[relativeName[1:]]
		return e, ok
	}

	path := currentPath
	for {
		var lookup string
		if path == "" {
			lookup = relativeName
		} else {
			lookup = path + "." + relativeName
		}
		if e, ok := c.names[lookup]; ok {
			return e, true
		}
		if path == "" {
			return nameEntry{}, false
		}
		if i := strings.LastIndexByte(path, '.'); i >= 0 {
			path = path[:i]
		} else {
			path = ""
		}
	}
}

func findOption(options []OptionElement, name string) (OptionElement, bool) {
	for _, o := range options {
		if o.Name == name {
			return o, true
		}
	}
	return OptionElement{}, false
}

func resolveMultiplicity(label string, ft FieldType, options []OptionElement) Multiplicity {
	if label != "repeated" {
		if label == "optional" {
			return Optional
		}
		return Singular
	}

	if ft.wireType() == lenWireType {
		return Repeated
	}

	if opt, ok := findOption(options, "packed"); ok {
		if opt.Value == "false" {
			return Repeated
		}
		return RepeatedPacked
	}

	// proto3 packs repeated scalars by default.
	return RepeatedPacked
}

const reservedFieldNumberLow = 19000
const reservedFieldNumberHigh = 19999

// link resolves every field, rpc argument and enum reference collected
// during collectFile against the full name registry, producing the
// immutable Context returned by Parse.
func (c *compiler) link() (*Context, error) {
	ctx := &Context{
		messagesByName: make(map[string]MessageID),
		enumsByName:    make(map[string]EnumID),
		servicesByName: make(map[string]ServiceID),
	}

	for i, rm := range c.messages {
		mi := &MessageInfo{
			id: MessageID(i), Name: rm.name, FullName: rm.qualifiedName,
			IsMapEntry:     rm.isMapEntry,
			fieldsByNumber: make(map[int]*FieldInfo),
			fieldsByName:   make(map[string]*FieldInfo),
		}
		for _, ro := range rm.oneofs {
			mi.Oneofs = append(mi.Oneofs, &OneofInfo{Name: ro.name, Options: ro.options})
		}
		ctx.messages = append(ctx.messages, mi)
		ctx.messagesByName[rm.qualifiedName] = MessageID(i)
	}
	for i, re := range c.enums {
		ei := &EnumInfo{
			id: EnumID(i), Name: re.name, FullName: re.qualifiedName, Options: re.options,
			Values:   re.constants,
			byNumber: make(map[int64]string),
			byName:   make(map[string]int64),
		}
		for _, v := range re.constants {
			if _, exists := ei.byNumber[int64(v.Tag)]; !exists {
				ei.byNumber[int64(v.Tag)] = v.Name
			}
			ei.byName[v.Name] = int64(v.Tag)
		}
		ctx.enums = append(ctx.enums, ei)
		ctx.enumsByName[re.qualifiedName] = EnumID(i)
	}
	for i, rs := range c.services {
		si := &ServiceInfo{
			id: ServiceID(i), Name: rs.name, FullName: rs.qualifiedName, Options: rs.options,
			rpcsByName: make(map[string]*RPCInfo),
		}
		ctx.services = append(ctx.services, si)
		ctx.servicesByName[rs.qualifiedName] = ServiceID(i)
	}

	for i, rm := range c.messages {
		mi := ctx.messages[i]
		for _, rf := range rm.fields {
			if rf.number >= reservedFieldNumberLow && rf.number <= reservedFieldNumberHigh {
				return nil, &SchemaError{Kind: ErrInvalidFieldNumber, FullName: rm.qualifiedName, Number: rf.number}
			}

			ft, err := c.resolveFieldType(rf.dtype, rm.qualifiedName)
			if err != nil {
				return nil, err
			}

			fi := &FieldInfo{
				Name: rf.name, Number: rf.number, Type: ft, Options: rf.options,
				Multiplicity: resolveMultiplicity(rf.label, ft, rf.options),
				OneofIndex:   rf.oneofIndex,
			}
			mi.Fields = append(mi.Fields, fi)
			mi.fieldsByNumber[rf.number] = fi
			mi.fieldsByName[rf.name] = fi
			if rf.oneofIndex >= 0 && rf.oneofIndex < len(mi.Oneofs) {
				mi.Oneofs[rf.oneofIndex].FieldNumbers = append(mi.Oneofs[rf.oneofIndex].FieldNumbers, rf.number)
			}
		}
	}

	for i, rs := range c.services {
		si := ctx.services[i]
		for _, rpc := range rs.rpcs {
			reqID, err := c.resolveMessageArg(rpc.requestType.Name(), rs.qualifiedName)
			if err != nil {
				return nil, err
			}
			respID, err := c.resolveMessageArg(rpc.responseType.Name(), rs.qualifiedName)
			if err != nil {
				return nil, err
			}
			ri := &RPCInfo{
				Name: rpc.name, Options: rpc.options,
				RequestMessageID: reqID, RequestStreaming: rpc.requestType.IsStream(),
				ResponseMessageID: respID, ResponseStreaming: rpc.responseType.IsStream(),
			}
			si.RPCs = append(si.RPCs, ri)
			si.rpcsByName[ri.Name] = ri
		}
	}

	return ctx, nil
}

func (c *compiler) resolveFieldType(dtype DataType, scope string) (FieldType, *SchemaError) {
	switch t := dtype.(type) {
	case ScalarDataType:
		return FieldType{Category: ScalarFieldType, Scalar: t.Kind()}, nil
	case NamedDataType:
		entry, ok := c.resolveTypeName(t.Name(), scope)
		if !ok {
			return FieldType{}, &SchemaError{Kind: ErrUnresolvedType, FullName: scope, Referent: t.Name()}
		}
		switch entry.kind {
		case nameKindMessage:
			return FieldType{Category: MessageFieldType, MessageID: MessageID(entry.idx)}, nil
		case nameKindEnum:
			return FieldType{Category: EnumFieldType, EnumID: EnumID(entry.idx)}, nil
		default:
			return FieldType{}, &SchemaError{Kind: ErrInvalidTypeKind, FullName: scope, Referent: t.Name()}
		}
	default:
		// MapDataType fields are rewritten into a NamedDataType pointing at
		// their synthesized entry message during collectMessage, so this
		// path is unreachable for well-formed input from the parser.
		return FieldType{}, &SchemaError{Kind: ErrUnresolvedType, FullName: scope, Referent: dtype.Name()}
	}
}

func (c *compiler) resolveMessageArg(name, scope string) (MessageID, *SchemaError) {
	entry, ok := c.resolveTypeName(name, scope)
	if !ok {
		return 0, &SchemaError{Kind: ErrUnresolvedType, FullName: scope, Referent: name}
	}
	if entry.kind != nameKindMessage {
		return 0, &SchemaError{Kind: ErrInvalidTypeKind, FullName: scope, Referent: name}
	}
	return MessageID(entry.idx), nil
}
