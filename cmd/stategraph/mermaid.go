package main

import (
	"fmt"
	"strings"

	"github.com/pathgen/stategraph/statemodel"
)

// renderMermaid produces Mermaid flowchart syntax from a flattened graph.
// Sentinel states render as circles, everything else as rectangles; edges
// synthesized while collapsing a superstate render as dotted arrows.
func renderMermaid(g *statemodel.FlatGraph) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, st := range g.States() {
		opener, closer := "[", "]"
		if st.Name == statemodel.StartName || st.Name == statemodel.EndName {
			opener, closer = "((", "))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", sanitizeMermaidID(st.Name), opener, st.Name, closer)
	}

	for _, e := range g.Edges() {
		arrow := "-->"
		switch {
		case e.Trans == nil:
			arrow = "-.->"
		case firstAttr(e.Trans) != "":
			label := strings.ReplaceAll(firstAttr(e.Trans), "\"", "'")
			arrow = fmt.Sprintf("-- \"%s\" -->", label)
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", sanitizeMermaidID(e.From.Name), arrow, sanitizeMermaidID(e.To.Name))
	}
	return sb.String()
}

func sanitizeMermaidID(id string) string {
	var sb strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}
