// Package pumllexer tokenizes PlantUML state-diagram source text.
//
// The lexer is line oriented: each line yields zero or more (kind, value)
// tokens describing state declarations, superstate scope delimiters, and
// transitions. Directive lines, comments, and blank lines come out as
// KindText and unrecognizable lines as KindError; both kinds are dropped by
// the model builder, so lexing never fails and malformed regions degrade to
// noise instead of aborting the scan.
//
// The [*] start/end marker is passed through literally as an endpoint value;
// canonicalizing it to the shared START/END sentinel states is the graph
// model's job.
package pumllexer
