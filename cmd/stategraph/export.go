package main

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/pathgen/stategraph/statemodel"
)

// diagramDoc is the export shape of the nested diagram model.
type diagramDoc struct {
	States      []stateDoc      `yaml:"states" json:"states"`
	Transitions []transitionDoc `yaml:"transitions,omitempty" json:"transitions,omitempty"`
}

type stateDoc struct {
	Name       string     `yaml:"name" json:"name"`
	Attributes []string   `yaml:"attributes,omitempty" json:"attributes,omitempty"`
	Substates  []stateDoc `yaml:"substates,omitempty" json:"substates,omitempty"`
}

type transitionDoc struct {
	From       string   `yaml:"from" json:"from"`
	To         string   `yaml:"to" json:"to"`
	Scope      string   `yaml:"scope,omitempty" json:"scope,omitempty"`
	Attributes []string `yaml:"attributes,omitempty" json:"attributes,omitempty"`
}

// flatDoc is the export shape of a flattened graph.
type flatDoc struct {
	States []string      `yaml:"states" json:"states"`
	Edges  []flatEdgeDoc `yaml:"edges,omitempty" json:"edges,omitempty"`
}

type flatEdgeDoc struct {
	From  string `yaml:"from" json:"from"`
	To    string `yaml:"to" json:"to"`
	Label string `yaml:"label,omitempty" json:"label,omitempty"`
}

func newDiagramDoc(d *statemodel.Diagram) diagramDoc {
	doc := diagramDoc{States: stateDocs(d)}
	doc.Transitions = collectTransitions(d, "")
	return doc
}

func stateDocs(d *statemodel.Diagram) []stateDoc {
	var docs []stateDoc
	for _, st := range d.States() {
		doc := stateDoc{Name: st.Name, Attributes: st.Attrs}
		if st.HasSubstates() {
			doc.Substates = stateDocs(st.Substates())
		}
		docs = append(docs, doc)
	}
	return docs
}

func collectTransitions(d *statemodel.Diagram, scope string) []transitionDoc {
	var docs []transitionDoc
	for _, e := range d.Edges() {
		docs = append(docs, transitionDoc{
			From:       e.Source.Name,
			To:         e.Dest.Name,
			Scope:      scope,
			Attributes: e.Trans.Attrs,
		})
	}
	for _, st := range d.States() {
		if st.HasSubstates() {
			docs = append(docs, collectTransitions(st.Substates(), st.Name)...)
		}
	}
	return docs
}

func newFlatDoc(g *statemodel.FlatGraph) flatDoc {
	doc := flatDoc{}
	for _, st := range g.States() {
		doc.States = append(doc.States, st.Name)
	}
	for _, e := range g.Edges() {
		doc.Edges = append(doc.Edges, flatEdgeDoc{
			From:  e.From.Name,
			To:    e.To.Name,
			Label: firstAttr(e.Trans),
		})
	}
	return doc
}

func encodeDoc(doc any, format string) ([]byte, error) {
	switch format {
	case "yaml":
		return yaml.Marshal(doc)
	case "json":
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want yaml or json)", format)
	}
}
