package pumllexer

import "strings"

// Lexer tokenizes PlantUML state-diagram source text, line by line, into a
// stream of (kind, value) tokens. Noise lines (directives, comments, blank
// lines) come out as KindText and unrecognizable lines as KindError; both are
// dropped by the model builder, so the lexer never fails.
type Lexer struct {
	src     []byte
	pos     int // byte offset of the next unread line
	line    int // 1-based number of the next unread line
	pending []Token
	inBlock bool // inside a /' ... '/ block comment
}

// New creates a Lexer for the given source bytes.
func New(src []byte) *Lexer {
	return &Lexer{src: src, line: 1}
}

// Next returns the next token. The second result is false once the source is
// exhausted.
func (l *Lexer) Next() (Token, bool) {
	for len(l.pending) == 0 {
		if l.pos >= len(l.src) {
			return Token{}, false
		}
		l.scanLine()
	}
	tok := l.pending[0]
	l.pending = l.pending[1:]
	return tok, true
}

// Tokenize scans the whole source in one call.
func Tokenize(src []byte) []Token {
	lex := New(src)
	var tokens []Token
	for {
		tok, ok := lex.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// directives are leading keywords of lines that carry no model content.
var directives = map[string]bool{
	"hide":      true,
	"show":      true,
	"scale":     true,
	"title":     true,
	"skinparam": true,
	"note":      true,
	"legend":    true,
	"endlegend": true,
	"header":    true,
	"endheader": true,
	"footer":    true,
	"endfooter": true,
	"caption":   true,
	"end":       true, // "end note", "end legend"
}

func (l *Lexer) scanLine() {
	lineStart := l.pos
	lineNo := l.line

	end := lineStart
	for end < len(l.src) && l.src[end] != '\n' {
		end++
	}
	raw := string(l.src[lineStart:end])
	l.pos = end + 1
	l.line++

	raw = strings.TrimSuffix(raw, "\r")
	trimmed := strings.TrimSpace(raw)
	base := strings.Index(raw, trimmed) // leading whitespace width

	emit := func(kind Kind, value string, col int) {
		l.pending = append(l.pending, Token{
			Kind:  kind,
			Value: value,
			Pos:   Position{Line: lineNo, Column: base + col + 1, Offset: lineStart + base + col},
		})
	}
	text := func() { emit(KindText, trimmed, 0) }

	// Block comments may span lines; everything inside is noise.
	if l.inBlock {
		if strings.Contains(trimmed, "'/") {
			l.inBlock = false
		}
		text()
		return
	}

	switch {
	case trimmed == "":
		text()
		return
	case strings.HasPrefix(trimmed, "'"):
		text()
		return
	case strings.HasPrefix(trimmed, "/'"):
		if !strings.Contains(trimmed[2:], "'/") {
			l.inBlock = true
		}
		text()
		return
	case strings.HasPrefix(trimmed, "@"):
		text()
		return
	case trimmed == "}":
		emit(KindScopeClose, "}", 0)
		return
	}

	if word, _ := firstWord(trimmed); directives[word] {
		text()
		return
	}

	if strings.HasPrefix(trimmed, "state ") || strings.HasPrefix(trimmed, "state\t") {
		l.scanStateDecl(trimmed, emit)
		return
	}

	if start, arrowEnd, ok := findArrow(trimmed); ok {
		l.scanTransition(trimmed, start, arrowEnd, emit)
		return
	}

	// "Name : description" shorthand attaches an attribute to a state.
	if idx := strings.Index(trimmed, ":"); idx > 0 {
		name := strings.TrimSpace(trimmed[:idx])
		desc := strings.TrimSpace(trimmed[idx+1:])
		if isName(name) {
			emit(KindState, name, 0)
			if desc != "" {
				emit(KindStateAttr, desc, idx+1)
			}
			return
		}
	}

	emit(KindError, trimmed, 0)
}

// scanStateDecl handles the 'state ...' declaration forms:
//
//	state Name
//	state Name {
//	state Name : description
//	state "Long Name" as Name
func (l *Lexer) scanStateDecl(line string, emit func(Kind, string, int)) {
	rest := strings.TrimSpace(line[len("state"):])
	restCol := strings.Index(line, rest)

	if strings.HasPrefix(rest, `"`) {
		closing := strings.Index(rest[1:], `"`)
		if closing < 0 {
			emit(KindError, line, 0)
			return
		}
		long := rest[1 : 1+closing]
		after := strings.TrimSpace(rest[closing+2:])
		if !strings.HasPrefix(after, "as ") {
			emit(KindError, line, 0)
			return
		}
		alias, tail := firstWord(strings.TrimSpace(after[len("as "):]))
		if alias == "" {
			emit(KindError, line, 0)
			return
		}
		emit(KindState, long, restCol+1)
		emit(KindAlias, alias, strings.Index(line, alias))
		l.scanStateTail(line, tail, emit)
		return
	}

	name, tail := firstWord(rest)
	if !isName(name) {
		emit(KindError, line, 0)
		return
	}
	emit(KindState, name, restCol)
	l.scanStateTail(line, tail, emit)
}

// scanStateTail handles what may follow a declared state name: a scope-opening
// brace, a ': description' attribute, or nothing.
func (l *Lexer) scanStateTail(line, tail string, emit func(Kind, string, int)) {
	tail = strings.TrimSpace(tail)
	if tail == "" {
		return
	}
	switch {
	case tail == "{":
		emit(KindScopeOpen, "{", strings.LastIndex(line, "{"))
	case strings.HasPrefix(tail, ":"):
		desc := strings.TrimSpace(tail[1:])
		if desc != "" {
			emit(KindStateAttr, desc, strings.Index(line, desc))
		}
	default:
		emit(KindError, tail, strings.Index(line, tail))
	}
}

// scanTransition handles 'A --> B' lines with an optional ': label' suffix.
func (l *Lexer) scanTransition(line string, arrowStart, arrowEnd int, emit func(Kind, string, int)) {
	source := strings.TrimSpace(line[:arrowStart])
	after := line[arrowEnd:]

	dest := after
	label := ""
	if idx := strings.Index(after, ":"); idx >= 0 {
		dest = after[:idx]
		label = strings.TrimSpace(after[idx+1:])
	}
	dest = strings.TrimSpace(dest)

	if !isEndpoint(source) || !isEndpoint(dest) {
		emit(KindError, line, 0)
		return
	}

	emit(KindTransSource, source, 0)
	emit(KindTransDest, dest, strings.Index(line, dest))
	if label != "" {
		emit(KindTransAttr, label, strings.Index(line, label))
	}
}

// findArrow locates a transition arrow such as ->, -->, -up->, -[dotted]-> or
// ..> within a line. Returns the start offset and the offset just past '>'.
func findArrow(s string) (start, end int, ok bool) {
	for i := 0; i < len(s); i++ {
		if s[i] != '-' && s[i] != '.' {
			continue
		}
		if e, matched := arrowAt(s, i); matched {
			return i, e, true
		}
	}
	return 0, 0, false
}

func arrowAt(s string, i int) (end int, ok bool) {
	j := i
	for j < len(s) && (s[j] == '-' || s[j] == '.') {
		j++
	}
	if j == i {
		return 0, false
	}
	// Optional direction word or [style] block, then more dashes.
	if j < len(s) && (isLetter(s[j]) || s[j] == '[') {
		k := j
		if s[k] == '[' {
			for k < len(s) && s[k] != ']' {
				k++
			}
			if k == len(s) {
				return 0, false
			}
			k++
		} else {
			for k < len(s) && isLetter(s[k]) {
				k++
			}
		}
		if k >= len(s) || (s[k] != '-' && s[k] != '.') {
			return 0, false
		}
		for k < len(s) && (s[k] == '-' || s[k] == '.') {
			k++
		}
		j = k
	}
	if j < len(s) && s[j] == '>' {
		return j + 1, true
	}
	return 0, false
}

func firstWord(s string) (word, rest string) {
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' || s[i] == '\t' {
			return s[:i], s[i:]
		}
	}
	return s, ""
}

// isName reports whether s is a bare state identifier.
func isName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if !isLetter(ch) && !isDigit(ch) && ch != '_' && ch != '.' {
			return false
		}
	}
	return !isDigit(s[0])
}

// isEndpoint reports whether s can stand as a transition endpoint: a bare
// identifier or the [*] start/end marker.
func isEndpoint(s string) bool {
	return s == "[*]" || isName(s)
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
