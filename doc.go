/*
Package protolens is a library for parsing protocol buffer v3 ("proto3") schema
files and decoding arbitrary wire-format messages against them, without shelling
out to protoc or any other external schema compiler.

The library exposes one entry point for building a type registry:

	func Parse(sources []string) (*Context, error)

Parse accepts the full text of one or more .proto files as a slice of strings.
Multiple files are resolved together as a single namespace; import statements
are recognized and skipped syntactically but never followed onto disk — every
file whose types are referenced must be present in the sources slice.

Context datastructure

Parse returns a *Context, an immutable, concurrency-safe catalogue of every
message, enum and service declared across the given sources:

	func (c *Context) GetMessage(fullName string) (*MessageInfo, bool)
	func (c *Context) GetEnum(fullName string) (*EnumInfo, bool)
	func (c *Context) GetService(fullName string) (*ServiceInfo, bool)
	func (c *Context) MessageByID(id MessageID) *MessageInfo
	func (c *Context) EnumByID(id EnumID) *EnumInfo

Decoding

Once a MessageInfo is in hand, arbitrary wire bytes can be decoded against it:

	func (m *MessageInfo) Decode(data []byte, ctx *Context) *MessageValue

Decode never returns an error and never panics on malformed input. Every byte
either becomes part of a typed FieldValue or is captured verbatim as an
UnknownFieldValue, an IncompleteValue or the Garbage of the enclosing message, so the
resulting MessageValue is always a complete, inspectable record of what the
wire actually contained.

Design considerations

This library consciously chooses to log no information on its own. Schema
parsing failures are communicated back to the caller as a *ParseError or
*SchemaError; decode-time anomalies are never errors at all, they are data,
recorded directly in the returned value tree per the two-surface error model
described in the package's design documentation.

In case of a grammar error, the returned *ParseError carries a file index and
a line/column position. In case of a linking error (an unresolved type
reference or a duplicate type name), the returned *SchemaError carries enough
context to identify the offending declaration.
*/
package protolens
