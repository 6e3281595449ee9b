package pumllexer

// Kind identifies the grammatical role of a lexical token.
type Kind int

const (
	KindText        Kind = iota // noise: blank lines, directives, comments
	KindError                   // unlexable line
	KindState                   // state name from a state declaration
	KindAlias                   // alias name from a 'state "Long" as X' form
	KindStateAttr               // description text attached to a state
	KindScopeOpen               // '{' opening a superstate body
	KindScopeClose              // '}' closing a superstate body
	KindTransSource             // source endpoint of a transition
	KindTransDest               // destination endpoint of a transition
	KindTransAttr               // label text attached to a transition
)

var kindNames = map[Kind]string{
	KindText:        "text",
	KindError:       "error",
	KindState:       "state",
	KindAlias:       "alias",
	KindStateAttr:   "state-attr",
	KindScopeOpen:   "scope-open",
	KindScopeClose:  "scope-close",
	KindTransSource: "trans-source",
	KindTransDest:   "trans-dest",
	KindTransAttr:   "trans-attr",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Position tracks a source location for diagnostics.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset into source
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Kind  Kind
	Value string // literal content (name, description text, delimiter)
	Pos   Position
}
