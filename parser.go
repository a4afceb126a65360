package protolens

import (
	"bufio"
	"strconv"
	"strings"
)

// parseSource parses a single proto3 source string into a FileDescriptor.
// fileIndex identifies the source within the slice passed to Parse and is
// attached to any *ParseError produced.
func parseSource(fileIndex int, source string) (*FileDescriptor, *ParseError) {
	fd := &FileDescriptor{}

	br := bufio.NewReader(strings.NewReader(source))
	p := &parser{br: br, loc: &location{line: 1}, fileIndex: fileIndex}

	if err := p.run(fd); err != nil {
		return nil, err
	}
	return fd, nil
}

// location tracks the current line/column of the parse process.
type location struct {
	line   int
	column int
}

// parser holds the mutable state of a single hand-written recursive-descent
// pass over one proto3 source string. It has no lookahead beyond a single
// rune of pushback, so every production either commits to a branch after
// reading one keyword/word, or backtracks by unreading that single rune —
// the grammar is written to make that sufficient (PEG-style ordered choice
// without a separate tokenizer stage).
type parser struct {
	br  *bufio.Reader
	loc *location

	fileIndex  int
	eofReached bool

	// prefix is the current package name plus the dotted chain of enclosing
	// message names, used to build each declaration's QualifiedName.
	prefix string
}

func (p *parser) run(fd *FileDescriptor) *ParseError {
	for {
		documentation, err := p.readDocumentationIfFound()
		if err != nil {
			return err
		}
		if p.eofReached {
			return nil
		}

		p.skipWhitespace()
		if p.eofReached {
			return nil
		}

		if err := p.readDeclaration(fd, documentation, scope{kind: fileScope, node: fd}); err != nil {
			return err
		}
		if p.eofReached {
			return nil
		}
	}
}

func (p *parser) errorf(format string, args ...interface{}) *ParseError {
	return newParseError(p.fileIndex, p.loc.line, p.loc.column, format, args...)
}

func (p *parser) readDocumentationIfFound() (string, *ParseError) {
	var docs []string
	for {
		c := p.read()
		switch {
		case c == eof:
			p.eofReached = true
			return strings.Join(docs, "\n"), nil
		case isWhitespace(c):
			p.skipWhitespace()
		case isStartOfComment(c):
			doc, err := p.readDocumentation()
			if err != nil {
				return "", err
			}
			docs = append(docs, doc)
		default:
			p.unread()
			return strings.Join(docs, "\n"), nil
		}
	}
}

func (p *parser) readDeclaration(fd *FileDescriptor, documentation string, ctx scope) *ParseError {
	// Skip stray semicolons between declarations.
	if c := p.read(); c != ';' {
		p.unread()
	} else {
		return nil
	}

	label := p.readWord()
	if _, isKeyword := keywordScopes[label]; isKeyword && !ctx.allows(label) {
		return p.errorf("%q is not allowed in a %v scope", label, ctx)
	}

	switch label {
	case "package":
		p.skipWhitespace()
		fd.PackageName = p.readWord()
		p.prefix = fd.PackageName + "."
		return p.expectSemicolon()

	case "syntax":
		return p.readSyntax(fd)

	case "import":
		return p.readImport(fd)

	case "option":
		return p.readOption(documentation, ctx)

	case "message":
		return p.readMessage(fd, ctx, documentation)

	case "enum":
		return p.readEnum(fd, ctx, documentation)

	case "extend":
		return p.readExtend(fd, ctx, documentation)

	case "service":
		return p.readService(fd, documentation)

	case "rpc":
		se := ctx.node.(*ServiceElement)
		return p.readRPC(se, documentation)

	case "oneof":
		return p.readOneOf(documentation, ctx)

	case "extensions":
		return p.readExtensions(documentation, ctx)

	case "reserved":
		return p.readReserved(documentation, ctx)
	}

	switch ctx.kind {
	case messageScope, extendScope, oneofScope:
		if !ctx.allowsField() {
			return p.errorf("fields must be nested within a message, oneof or extend block")
		}
		return p.readField(label, documentation, ctx)

	case enumScope:
		p.skipWhitespace()
		if c := p.read(); c != '=' {
			return p.errorf("'=', but found %s", strconv.QuoteRune(c))
		}
		p.skipWhitespace()
		tag, err := p.readInt()
		if err != nil {
			return err
		}
		ee := ctx.node.(*EnumElement)
		ee.EnumConstants = append(ee.EnumConstants, EnumConstantElement{
			Name: label, Tag: tag, Documentation: documentation,
		})
		return p.expectSemicolon()
	}

	return p.errorf("a declaration, but found %q", label)
}

func (p *parser) expectSemicolon() *ParseError {
	if c := p.read(); c != ';' {
		return p.errorf("';', but found %s", strconv.QuoteRune(c))
	}
	return nil
}

func (p *parser) readReserved(documentation string, ctx scope) *ParseError {
	p.skipWhitespace()
	me := ctx.node.(*MessageElement)
	c := p.read()
	p.unread()
	if isDigit(c) {
		return p.readReservedRanges(documentation, me)
	}
	return p.readReservedNames(me)
}

func (p *parser) readReservedRanges(documentation string, me *MessageElement) *ParseError {
	for {
		start, err := p.readInt()
		if err != nil {
			return err
		}
		rr := ReservedRangeElement{Start: start, End: start, Documentation: documentation}

		c := p.read()
		switch c {
		case ';':
			me.ReservedRanges = append(me.ReservedRanges, rr)
			return nil
		case ',':
			me.ReservedRanges = append(me.ReservedRanges, rr)
			p.skipWhitespace()
		default:
			p.unread()
			p.skipWhitespace()
			if w := p.readWord(); w != "to" {
				return p.errorf("'to', but found %q", w)
			}
			p.skipWhitespace()
			endWord := p.readWord()
			end := 536870911 // proto3 "max"
			if endWord != "max" {
				v, cerr := strconv.Atoi(endWord)
				if cerr != nil {
					return p.errorf("an integer or 'max', but found %q", endWord)
				}
				end = v
			}
			rr.End = end

			c2 := p.read()
			switch c2 {
			case ';':
				me.ReservedRanges = append(me.ReservedRanges, rr)
				return nil
			case ',':
				me.ReservedRanges = append(me.ReservedRanges, rr)
				p.skipWhitespace()
			default:
				return p.errorf("',' or ';', but found %s", strconv.QuoteRune(c2))
			}
		}
	}
}

func (p *parser) readReservedNames(me *MessageElement) *ParseError {
	for {
		name, err := p.readQuotedString()
		if err != nil {
			return err
		}
		me.ReservedNames = append(me.ReservedNames, name)

		c := p.read()
		if c == ';' {
			return nil
		}
		if c != ',' {
			return p.errorf("',', but found %s", strconv.QuoteRune(c))
		}
		p.skipWhitespace()
	}
}

func (p *parser) readField(label string, documentation string, ctx scope) *ParseError {
	if (label == "required" || label == "optional" || label == "repeated") && ctx.kind == oneofScope {
		return p.errorf("label %q is disallowed on a oneof field", label)
	}

	fe := FieldElement{Documentation: documentation}

	var dataTypeStr string
	if label == "optional" || label == "repeated" || label == "required" {
		fe.Label = label
		p.skipWhitespace()
		dataTypeStr = p.readWord()
	} else {
		dataTypeStr = label
	}

	dataType, err := p.readDataTypeInternal(dataTypeStr)
	if err != nil {
		return err
	}
	fe.Type = dataType

	p.skipWhitespace()
	name, _, err := p.readName()
	if err != nil {
		return err
	}
	fe.Name = name

	p.skipWhitespace()
	if c := p.read(); c != '=' {
		return p.errorf("'=', but found %s", strconv.QuoteRune(c))
	}

	p.skipWhitespace()
	tag, err := p.readInt()
	if err != nil {
		return err
	}
	fe.Tag = tag

	p.skipWhitespace()
	c := p.read()
	if c == '[' {
		options, err := p.readFieldOptions()
		if err != nil {
			return err
		}
		fe.Options = options
		if c2 := p.read(); c2 != ';' {
			return p.errorf("';', but found %s", strconv.QuoteRune(c2))
		}
	} else if c != ';' {
		return p.errorf("';', but found %s", strconv.QuoteRune(c))
	}

	switch ctx.kind {
	case messageScope:
		me := ctx.node.(*MessageElement)
		me.Fields = append(me.Fields, fe)
	case extendScope:
		ee := ctx.node.(*ExtendElement)
		ee.Fields = append(ee.Fields, fe)
	case oneofScope:
		oe := ctx.node.(*OneOfElement)
		oe.Fields = append(oe.Fields, fe)
	}
	return nil
}

func (p *parser) readFieldOptions() ([]OptionElement, *ParseError) {
	var options []OptionElement
	optionsStr := p.readUntil(']')
	for _, pair := range strings.Split(optionsStr, ",") {
		arr := strings.SplitN(pair, "=", 2)
		if len(arr) != 2 {
			return nil, p.errorf("a 'name=value' field option, but found %q", pair)
		}
		oname, hasParenthesis := stripParenthesis(strings.TrimSpace(arr[0]))
		oval := stripQuotes(strings.TrimSpace(arr[1]))
		options = append(options, OptionElement{Name: oname, Value: oval, IsParenthesized: hasParenthesis})
	}
	return options, nil
}

func (p *parser) readOption(documentation string, ctx scope) *ParseError {
	p.skipWhitespace()
	oname, enc, err := p.readName()
	if err != nil {
		return err
	}

	p.skipWhitespace()
	if c := p.read(); c != '=' {
		return p.errorf("'=', but found %s", strconv.QuoteRune(c))
	}
	p.skipWhitespace()

	var oval string
	c := p.read()
	p.unread()
	if c == '"' {
		oval, err = p.readQuotedString()
		if err != nil {
			return err
		}
	} else {
		oval = p.readWord()
	}

	p.skipWhitespace()
	if c := p.read(); c != ';' {
		return p.errorf("';', but found %s", strconv.QuoteRune(c))
	}

	oe := OptionElement{Name: oname, Value: oval, IsParenthesized: enc == parenthesis}
	switch ctx.kind {
	case messageScope:
		ctx.node.(*MessageElement).Options = append(ctx.node.(*MessageElement).Options, oe)
	case oneofScope:
		ctx.node.(*OneOfElement).Options = append(ctx.node.(*OneOfElement).Options, oe)
	case enumScope:
		ctx.node.(*EnumElement).Options = append(ctx.node.(*EnumElement).Options, oe)
	case serviceScope:
		ctx.node.(*ServiceElement).Options = append(ctx.node.(*ServiceElement).Options, oe)
	case rpcScope:
		ctx.node.(*RPCElement).Options = append(ctx.node.(*RPCElement).Options, oe)
	case fileScope:
		ctx.node.(*FileDescriptor).Options = append(ctx.node.(*FileDescriptor).Options, oe)
	}
	return nil
}

func (p *parser) readMessage(fd *FileDescriptor, ctx scope, documentation string) *ParseError {
	p.skipWhitespace()
	name, _, err := p.readName()
	if err != nil {
		return err
	}

	me := MessageElement{Name: name, QualifiedName: p.prefix + name, Documentation: documentation}

	previousPrefix := p.prefix
	p.prefix = p.prefix + name + "."
	defer func() { p.prefix = previousPrefix }()

	p.skipWhitespace()
	if c := p.read(); c != '{' {
		return p.errorf("'{', but found %s", strconv.QuoteRune(c))
	}

	for {
		nestedDoc, derr := p.readDocumentationIfFound()
		if derr != nil {
			return derr
		}
		if p.eofReached {
			return p.errorf("'}' before end of file")
		}
		if c := p.read(); c == '}' {
			break
		}
		p.unread()

		nested := scope{kind: messageScope, node: &me}
		if err := p.readDeclaration(fd, nestedDoc, nested); err != nil {
			return err
		}
	}

	if ctx.kind == messageScope {
		parent := ctx.node.(*MessageElement)
		parent.Messages = append(parent.Messages, me)
	} else {
		fd.Messages = append(fd.Messages, me)
	}
	return nil
}

func (p *parser) readExtensions(documentation string, ctx scope) *ParseError {
	p.skipWhitespace()
	start, err := p.readInt()
	if err != nil {
		return err
	}

	xe := ExtensionsElement{Documentation: documentation, Start: start, End: start}

	if c := p.read(); c != ';' {
		p.unread()
		p.skipWhitespace()
		if w := p.readWord(); w != "to" {
			return p.errorf("'to', but found %q", w)
		}
		p.skipWhitespace()
		endStr := p.readWord()
		if endStr == "max" {
			xe.End = 536870911
		} else {
			end, cerr := strconv.Atoi(endStr)
			if cerr != nil {
				return p.errorf("an integer or 'max', but found %q", endStr)
			}
			xe.End = end
		}
		if c2 := p.read(); c2 != ';' {
			return p.errorf("';', but found %s", strconv.QuoteRune(c2))
		}
	}

	me := ctx.node.(*MessageElement)
	me.Extensions = append(me.Extensions, xe)
	return nil
}

func (p *parser) readOneOf(documentation string, ctx scope) *ParseError {
	p.skipWhitespace()
	name, _, err := p.readName()
	if err != nil {
		return err
	}

	oe := OneOfElement{Name: name, Documentation: documentation}

	p.skipWhitespace()
	if c := p.read(); c != '{' {
		return p.errorf("'{', but found %s", strconv.QuoteRune(c))
	}

	for {
		nestedDoc, derr := p.readDocumentationIfFound()
		if derr != nil {
			return derr
		}
		if p.eofReached {
			return p.errorf("'}' before end of file")
		}
		if c := p.read(); c == '}' {
			break
		}
		p.unread()

		nested := scope{kind: oneofScope, node: &oe}
		if err := p.readDeclaration(nil, nestedDoc, nested); err != nil {
			return err
		}
	}

	me := ctx.node.(*MessageElement)
	me.OneOfs = append(me.OneOfs, oe)
	return nil
}

func (p *parser) readExtend(fd *FileDescriptor, ctx scope, documentation string) *ParseError {
	p.skipWhitespace()
	name, _, err := p.readName()
	if err != nil {
		return err
	}
	qualifiedName := name
	if !strings.Contains(name, ".") && p.prefix != "" {
		qualifiedName = p.prefix + name
	}
	ee := ExtendElement{Name: name, QualifiedName: qualifiedName, Documentation: documentation}

	p.skipWhitespace()
	if c := p.read(); c != '{' {
		return p.errorf("'{', but found %s", strconv.QuoteRune(c))
	}

	for {
		nestedDoc, derr := p.readDocumentationIfFound()
		if derr != nil {
			return derr
		}
		if p.eofReached {
			return p.errorf("'}' before end of file")
		}
		if c := p.read(); c == '}' {
			break
		}
		p.unread()

		nested := scope{kind: extendScope, node: &ee}
		if err := p.readDeclaration(fd, nestedDoc, nested); err != nil {
			return err
		}
	}

	fd.ExtendDeclarations = append(fd.ExtendDeclarations, ee)
	return nil
}

func (p *parser) readService(fd *FileDescriptor, documentation string) *ParseError {
	p.skipWhitespace()
	name, _, err := p.readName()
	if err != nil {
		return err
	}
	p.skipWhitespace()
	if c := p.read(); c != '{' {
		return p.errorf("'{', but found %s", strconv.QuoteRune(c))
	}

	se := ServiceElement{Name: name, QualifiedName: p.prefix + name, Documentation: documentation}

	for {
		nestedDoc, derr := p.readDocumentationIfFound()
		if derr != nil {
			return derr
		}
		if p.eofReached {
			return p.errorf("'}' before end of file")
		}
		if c := p.read(); c == '}' {
			break
		}
		p.unread()

		nested := scope{kind: serviceScope, node: &se}
		if err := p.readDeclaration(fd, nestedDoc, nested); err != nil {
			return err
		}
	}

	fd.Services = append(fd.Services, se)
	return nil
}

func (p *parser) readRPC(se *ServiceElement, documentation string) *ParseError {
	p.skipWhitespace()
	name, _, err := p.readName()
	if err != nil {
		return err
	}

	rpc := RPCElement{Name: name, Documentation: documentation}

	p.skipWhitespace()
	if c := p.read(); c != '(' {
		return p.errorf("'(', but found %s", strconv.QuoteRune(c))
	}
	requestType, err := p.readRequestResponseType()
	if err != nil {
		return err
	}
	rpc.RequestType = requestType
	if c := p.read(); c != ')' {
		return p.errorf("')', but found %s", strconv.QuoteRune(c))
	}

	p.skipWhitespace()
	if keyword := p.readWord(); keyword != "returns" {
		return p.errorf("'returns', but found %q", keyword)
	}

	p.skipWhitespace()
	if c := p.read(); c != '(' {
		return p.errorf("'(', but found %s", strconv.QuoteRune(c))
	}
	responseType, err := p.readRequestResponseType()
	if err != nil {
		return err
	}
	rpc.ResponseType = responseType
	if c := p.read(); c != ')' {
		return p.errorf("')', but found %s", strconv.QuoteRune(c))
	}

	p.skipWhitespace()
	c := p.read()
	if c == '{' {
		for {
			rpcDoc, derr := p.readDocumentationIfFound()
			if derr != nil {
				return derr
			}
			if p.eofReached {
				return p.errorf("'}' before end of file")
			}
			if c2 := p.read(); c2 == '}' {
				break
			}
			p.unread()
			nested := scope{kind: rpcScope, node: &rpc}
			if err := p.readDeclaration(nil, rpcDoc, nested); err != nil {
				return err
			}
		}
	} else if c != ';' {
		return p.errorf("';', but found %s", strconv.QuoteRune(c))
	}

	se.RPCs = append(se.RPCs, rpc)
	return nil
}

func (p *parser) readEnum(fd *FileDescriptor, ctx scope, documentation string) *ParseError {
	p.skipWhitespace()
	name, _, err := p.readName()
	if err != nil {
		return err
	}
	ee := EnumElement{Name: name, QualifiedName: p.prefix + name, Documentation: documentation}

	p.skipWhitespace()
	if c := p.read(); c != '{' {
		return p.errorf("'{', but found %s", strconv.QuoteRune(c))
	}

	for {
		valueDoc, derr := p.readDocumentationIfFound()
		if derr != nil {
			return derr
		}
		if p.eofReached {
			return p.errorf("'}' before end of file")
		}
		if c := p.read(); c == '}' {
			break
		}
		p.unread()

		nested := scope{kind: enumScope, node: &ee}
		if err := p.readDeclaration(fd, valueDoc, nested); err != nil {
			return err
		}
	}

	if ctx.kind == messageScope {
		parent := ctx.node.(*MessageElement)
		parent.Enums = append(parent.Enums, ee)
	} else {
		fd.Enums = append(fd.Enums, ee)
	}
	return nil
}

func (p *parser) readImport(fd *FileDescriptor) *ParseError {
	p.skipWhitespace()
	c := p.read()
	p.unread()
	if c == '"' {
		importString, err := p.readQuotedString()
		if err != nil {
			return err
		}
		fd.Dependencies = append(fd.Dependencies, importString)
	} else {
		publicStr := p.readWord()
		if publicStr != "public" {
			return p.errorf("'public', but found %q", publicStr)
		}
		p.skipWhitespace()
		importString, err := p.readQuotedString()
		if err != nil {
			return err
		}
		fd.PublicDependencies = append(fd.PublicDependencies, importString)
	}
	return p.expectSemicolon()
}

func (p *parser) readSyntax(fd *FileDescriptor) *ParseError {
	p.skipWhitespace()
	if c := p.read(); c != '=' {
		return p.errorf("'=', but found %s", strconv.QuoteRune(c))
	}
	p.skipWhitespace()
	syntax, err := p.readQuotedString()
	if err != nil {
		return err
	}
	if syntax != "proto3" {
		return p.errorf("syntax \"proto3\" (proto2 is not supported), but found %q", syntax)
	}
	if err := p.expectSemicolon(); err != nil {
		return err
	}
	fd.Syntax = syntax
	return nil
}

func (p *parser) readQuotedString() (string, *ParseError) {
	if c := p.read(); c != '"' {
		return "", p.errorf("a starting '\"', but found %s", strconv.QuoteRune(c))
	}
	str := p.readUntil('"')
	if p.eofReached {
		return "", p.errorf("a closing '\"' before end of file")
	}
	return str, nil
}

func (p *parser) readRequestResponseType() (NamedDataType, *ParseError) {
	name := p.readWord()

	var streaming bool
	if name == "stream" {
		streaming = true
		p.skipWhitespace()
		name = p.readWord()
	}
	p.skipWhitespace()

	dt, err := p.readDataTypeInternal(name)
	if err != nil {
		return NamedDataType{}, err
	}
	ndt, ok := dt.(NamedDataType)
	if !ok {
		return NamedDataType{}, p.errorf("a message type, but found scalar/map type %q", name)
	}
	ndt.stream(streaming)
	return ndt, nil
}

func (p *parser) readDataType() (DataType, *ParseError) {
	name := p.readWord()
	p.skipWhitespace()
	return p.readDataTypeInternal(name)
}

func (p *parser) readDataTypeInternal(name string) (DataType, *ParseError) {
	if name == "map" {
		if c := p.read(); c != '<' {
			return nil, p.errorf("'<', but found %s", strconv.QuoteRune(c))
		}
		keyType, err := p.readDataType()
		if err != nil {
			return nil, err
		}
		if c := p.read(); c != ',' {
			return nil, p.errorf("',', but found %s", strconv.QuoteRune(c))
		}
		p.skipWhitespace()
		valueType, err := p.readDataType()
		if err != nil {
			return nil, err
		}
		if c := p.read(); c != '>' {
			return nil, p.errorf("'>', but found %s", strconv.QuoteRune(c))
		}
		return MapDataType{KeyType: keyType, ValueType: valueType}, nil
	}

	if sdt, ok := newScalarDataType(name); ok {
		return sdt, nil
	}

	return NamedDataType{name: name}, nil
}

func (p *parser) readName() (string, enclosure, *ParseError) {
	enc := unenclosed
	c := p.read()
	switch c {
	case '(':
		name := p.readWord()
		if c2 := p.read(); c2 != ')' {
			return "", parenthesis, p.errorf("a closing ')'")
		}
		return name, parenthesis, nil
	case '[':
		name := p.readWord()
		if c2 := p.read(); c2 != ']' {
			return "", bracket, p.errorf("a closing ']'")
		}
		return name, bracket, nil
	default:
		p.unread()
		return p.readWord(), enc, nil
	}
}

func (p *parser) readWord() string {
	var sb strings.Builder
	for {
		c := p.read()
		if isValidCharInWord(c) {
			sb.WriteRune(c)
		} else {
			p.unread()
			break
		}
	}
	return sb.String()
}

func (p *parser) readInt() (int, *ParseError) {
	var sb strings.Builder
	if c := p.read(); c == '-' {
		sb.WriteRune(c)
	} else {
		p.unread()
	}
	for {
		c := p.read()
		if isDigit(c) {
			sb.WriteRune(c)
		} else {
			p.unread()
			break
		}
	}
	v, err := strconv.Atoi(sb.String())
	if err != nil {
		return 0, p.errorf("an integer, but found %q", sb.String())
	}
	return v, nil
}

func (p *parser) readDocumentation() (string, *ParseError) {
	c := p.read()
	switch c {
	case '/':
		return p.readSingleLineComment(), nil
	case '*':
		return p.readMultiLineComment(), nil
	}
	return "", p.errorf("'/' or '*' to start a comment, but found %s", strconv.QuoteRune(c))
}

func (p *parser) readMultiLineComment() string {
	var sb strings.Builder
	for {
		c := p.read()
		if c == eof {
			p.eofReached = true
			break
		}
		if c != '*' {
			sb.WriteRune(c)
			continue
		}
		c2 := p.read()
		if c2 == '/' {
			break
		}
		sb.WriteRune(c2)
	}
	return strings.TrimSpace(sb.String())
}

func (p *parser) readSingleLineComment() string {
	return strings.TrimSpace(p.readUntilNewline())
}

func (p *parser) readUntil(terminator rune) string {
	var sb strings.Builder
	for {
		c := p.read()
		if c == terminator {
			break
		}
		if c == eof {
			p.eofReached = true
			break
		}
		sb.WriteRune(c)
	}
	return sb.String()
}

func (p *parser) readUntilNewline() string {
	var sb strings.Builder
	for {
		c := p.read()
		if c == '\n' {
			break
		}
		if c == eof {
			p.eofReached = true
			break
		}
		sb.WriteRune(c)
	}
	return sb.String()
}

func (p *parser) unread() {
	_ = p.br.UnreadRune()
	p.loc.column--
}

func (p *parser) read() rune {
	c, _, err := p.br.ReadRune()
	if err != nil {
		return eof
	}
	if c == '\n' {
		p.loc.line++
		p.loc.column = 0
	} else {
		p.loc.column++
	}
	return c
}

func (p *parser) skipWhitespace() {
	for {
		c := p.read()
		if c == eof {
			p.eofReached = true
			return
		}
		if !isWhitespace(c) {
			p.unread()
			return
		}
	}
}

func stripParenthesis(s string) (string, bool) {
	if len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')' {
		return s[1 : len(s)-1], true
	}
	return s, false
}

func stripQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func isValidCharInWord(c rune) bool {
	return isLetter(c) || isDigit(c) || c == '_' || c == '-' || c == '.'
}

func isStartOfComment(c rune) bool {
	return c == '/'
}

func isWhitespace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

// eof is returned by parser.read when the underlying reader is exhausted.
var eof = rune(0)

// enclosure records how readName's identifier was bounded, distinguishing
// custom-option names like `(cue.val)` from plain identifiers.
type enclosure int

const (
	parenthesis enclosure = iota
	bracket
	unenclosed
)
