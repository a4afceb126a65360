package protolens

// OptionElement is a datastructure which models the option construct in a
// protobuf file. Option constructs exist at various levels/contexts like
// file, message, field, etc. Apart from a repeated field's `packed` option,
// which decides its Multiplicity, options are captured but not interpreted
// by the schema compiler.
type OptionElement struct {
	Name            string
	Value           string
	IsParenthesized bool
}

// EnumConstantElement is a datastructure which models the fields within an
// enum construct. Enum constants can also have inline options specified.
type EnumConstantElement struct {
	Name          string
	Documentation string
	Options       []OptionElement
	Tag           int
}

// EnumElement is a datastructure which models the enum construct in a
// protobuf file. Enums are defined standalone or as nested entities within
// messages.
type EnumElement struct {
	Name          string
	QualifiedName string
	Documentation string
	Options       []OptionElement
	EnumConstants []EnumConstantElement
}

// RPCElement is a datastructure which models the rpc construct in a
// protobuf file. RPCs are defined nested within ServiceElements.
type RPCElement struct {
	Name          string
	Documentation string
	Options       []OptionElement
	RequestType   NamedDataType
	ResponseType  NamedDataType
}

// ServiceElement is a datastructure which models the service construct in a
// protobuf file. A service construct defines the rpcs (apis) it offers.
type ServiceElement struct {
	Name          string
	QualifiedName string
	Documentation string
	Options       []OptionElement
	RPCs          []RPCElement
}

// FieldElement is a datastructure which models a field of a message or a
// field of a oneof element in a protobuf file.
type FieldElement struct {
	Name          string
	Documentation string
	Options       []OptionElement
	Label         string /* "", "optional", "required" or "repeated" */
	Type          DataType
	Tag           int
}

// OneOfElement is a datastructure which models a oneof construct in a
// protobuf file. All the fields in a oneof construct share storage, and at
// most one field can be logically set at any time.
type OneOfElement struct {
	Name          string
	Documentation string
	Options       []OptionElement
	Fields        []FieldElement
}

// ExtensionsElement is a datastructure which models an extensions construct
// in a protobuf message. Parsed for grammar completeness; the schema
// compiler never consults it, since extension ranges are not fields.
type ExtensionsElement struct {
	Documentation string
	Start         int
	End           int
}

// ReservedRangeElement is a datastructure which models a numeric reserved
// range in a protobuf message.
type ReservedRangeElement struct {
	Documentation string
	Start         int
	End           int
}

// MessageElement is a datastructure which models the message construct in a
// protobuf file.
type MessageElement struct {
	Name           string
	QualifiedName  string
	Documentation  string
	Options        []OptionElement
	Fields         []FieldElement
	Enums          []EnumElement
	Messages       []MessageElement
	OneOfs         []OneOfElement
	Extensions     []ExtensionsElement
	ReservedRanges []ReservedRangeElement
	ReservedNames  []string
}

// ExtendElement is a datastructure which models the extend construct used
// to add fields to a previously declared message type. Parsed for grammar
// completeness only: the schema compiler never links against an
// ExtendElement's fields, and decoding never consults them.
type ExtendElement struct {
	Name          string
	QualifiedName string
	Documentation string
	Fields        []FieldElement
}

// FileDescriptor is a datastructure which represents the parsed AST of a
// single .proto source string: its package name, syntax, import statements
// (recorded but never followed), options, and top-level declarations.
//
// FileDescriptors exist only during compilation; the schema compiler merges
// them into a Context and discards them.
type FileDescriptor struct {
	PackageName        string
	Syntax             string
	Dependencies       []string
	PublicDependencies []string
	Options            []OptionElement
	Enums              []EnumElement
	Messages           []MessageElement
	Services           []ServiceElement
	ExtendDeclarations []ExtendElement
}
