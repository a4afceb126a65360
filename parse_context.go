package protolens

// scope tracks where the parser currently sits in the declaration tree:
// which keywords are legal here, and which AST node a matched declaration
// should be attached to. readDeclaration is one recursive function reused
// for every kind of body (file, message, oneof, enum, extend, service, rpc),
// and scope is what lets it reject "package" inside a message or "rpc"
// outside a service without a separate grammar per body kind.
type scope struct {
	node interface{}
	kind scopeKind
}

// scopeKind names a position in the declaration tree.
type scopeKind int

const (
	fileScope scopeKind = iota
	messageScope
	oneofScope
	enumScope
	rpcScope
	extendScope
	serviceScope
)

func (k scopeKind) String() string {
	switch k {
	case fileScope:
		return "file"
	case messageScope:
		return "message"
	case oneofScope:
		return "oneof"
	case enumScope:
		return "enum"
	case rpcScope:
		return "rpc"
	case extendScope:
		return "extend"
	case serviceScope:
		return "service"
	default:
		return "unknown"
	}
}

func (s scope) String() string { return s.kind.String() }

// keywordScopes maps each declaration keyword to the scopes it may appear
// in. A keyword absent from this map (the bare field/enum-constant
// productions) is gated by fieldScopes/kind switches directly, since those
// two productions share one grammar slot rather than a distinct keyword.
var keywordScopes = map[string]map[scopeKind]bool{
	"package":    {fileScope: true},
	"syntax":     {fileScope: true},
	"import":     {fileScope: true},
	"service":    {fileScope: true},
	"option":     {fileScope: true, messageScope: true, oneofScope: true, enumScope: true, serviceScope: true, rpcScope: true},
	"message":    {fileScope: true, messageScope: true},
	"enum":       {fileScope: true, messageScope: true},
	"extend":     {fileScope: true, messageScope: true},
	"rpc":        {serviceScope: true},
	"oneof":      {messageScope: true},
	"extensions": {messageScope: true},
	"reserved":   {messageScope: true},
}

// allows reports whether keyword is a legal declaration at this scope.
func (s scope) allows(keyword string) bool {
	return keywordScopes[keyword][s.kind]
}

// fieldScopes are the scopes in which a bare "<type> <name> = <tag>;"
// production (with no leading keyword) is a field declaration rather than
// a syntax error.
var fieldScopes = map[scopeKind]bool{
	messageScope: true,
	oneofScope:   true,
	extendScope:  true,
}

func (s scope) allowsField() bool {
	return fieldScopes[s.kind]
}
