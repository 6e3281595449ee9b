package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pathgen/stategraph/statemodel"
)

var flattenCmd = &cobra.Command{
	Use:   "flatten <diagram.puml>",
	Short: "Flatten nested superstates into a single graph",
	Long:  "Parse a PlantUML state diagram, collapse every superstate scope into one flat graph, and write the result.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFlatten,
}

func init() {
	flattenCmd.Flags().String("format", "text", "Output format: text, yaml, json, or mermaid")
	flattenCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	rootCmd.AddCommand(flattenCmd)
}

func runFlatten(cmd *cobra.Command, args []string) error {
	verbose := viper.GetBool("verbose")
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("output")

	diagram, diags, err := buildDiagram(args[0], verbose)
	if err != nil {
		return err
	}
	printDiagnostics(diags)

	flat := diagram.FlattenGraph()

	var out []byte
	switch format {
	case "text":
		out = []byte(renderFlatText(flat))
	case "mermaid":
		out = []byte(renderMermaid(flat))
	case "yaml", "json":
		out, err = encodeDoc(newFlatDoc(flat), format)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (want text, yaml, json, or mermaid)", format)
	}

	if outPath == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	return os.WriteFile(outPath, out, 0o644)
}

func renderFlatText(g *statemodel.FlatGraph) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "states (%d):\n", len(g.States()))
	for _, st := range g.States() {
		fmt.Fprintf(&sb, "  %s\n", st.Name)
	}
	fmt.Fprintf(&sb, "edges (%d):\n", len(g.Edges()))
	for _, e := range g.Edges() {
		if label := firstAttr(e.Trans); label != "" {
			fmt.Fprintf(&sb, "  %s -> %s : %s\n", e.From.Name, e.To.Name, label)
		} else {
			fmt.Fprintf(&sb, "  %s -> %s\n", e.From.Name, e.To.Name)
		}
	}
	return sb.String()
}

func firstAttr(t *statemodel.Transition) string {
	if t == nil || len(t.Attrs) == 0 {
		return ""
	}
	return t.Attrs[0]
}
