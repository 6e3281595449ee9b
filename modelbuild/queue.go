package modelbuild

import "github.com/pathgen/stategraph/pumllexer"

// tokenQueue is an unbounded FIFO buffer of tokens. Handlers pop from the
// front; the dispatcher pushes newly read tokens at the back.
type tokenQueue struct {
	toks []pumllexer.Token
	head int
}

func (q *tokenQueue) pushBack(tok pumllexer.Token) {
	q.toks = append(q.toks, tok)
}

func (q *tokenQueue) popFront() pumllexer.Token {
	tok := q.toks[q.head]
	q.head++
	if q.head == len(q.toks) {
		q.toks = q.toks[:0]
		q.head = 0
	}
	return tok
}

func (q *tokenQueue) front() (pumllexer.Token, bool) {
	if q.head >= len(q.toks) {
		return pumllexer.Token{}, false
	}
	return q.toks[q.head], true
}

func (q *tokenQueue) len() int {
	return len(q.toks) - q.head
}

func (q *tokenQueue) reset() {
	q.toks = q.toks[:0]
	q.head = 0
}
