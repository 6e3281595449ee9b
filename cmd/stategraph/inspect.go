package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pathgen/stategraph/statemodel"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <diagram.puml>",
	Short: "Parse a state diagram and summarize the model",
	Long:  "Parse a PlantUML state diagram and print state/transition counts, start and end states, and any build diagnostics.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().String("format", "text", "Output format: text, yaml, or json")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	verbose := viper.GetBool("verbose")
	format, _ := cmd.Flags().GetString("format")

	diagram, diags, err := buildDiagram(args[0], verbose)
	if err != nil {
		return err
	}
	printDiagnostics(diags)

	if format != "text" {
		out, err := encodeDoc(newDiagramDoc(diagram), format)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	}

	fmt.Printf("States:      %d\n", diagram.StateCount())
	fmt.Printf("Transitions: %d\n", diagram.TransitionCount())
	fmt.Printf("Start:       %s\n", joinStateNames(diagram.GetStartStates()))
	fmt.Printf("End:         %s\n", joinStateNames(diagram.GetEndStates()))
	return nil
}

func joinStateNames(states []*statemodel.State) string {
	if len(states) == 0 {
		return "(none)"
	}
	names := make([]string, 0, len(states))
	for _, st := range states {
		names = append(names, st.Name)
	}
	return strings.Join(names, ", ")
}
