package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pathgen/stategraph/statemodel"
)

var lintCmd = &cobra.Command{
	Use:   "lint <diagram.puml>",
	Short: "Validate a state diagram",
	Long:  "Parse a PlantUML state diagram and run validation rules against the model. Exits non-zero on error-severity findings.",
	Args:  cobra.ExactArgs(1),
	RunE:  runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	verbose := viper.GetBool("verbose")

	diagram, buildDiags, err := buildDiagram(args[0], verbose)
	if err != nil {
		return err
	}

	diags := append(buildDiags, statemodel.Validate(diagram)...)
	if len(diags) == 0 {
		fmt.Fprintln(os.Stderr, "no findings")
		return nil
	}

	errors := 0
	for _, d := range diags {
		fmt.Println(d.String())
		if d.Severity == statemodel.Error {
			errors++
		}
	}
	if errors > 0 {
		return fmt.Errorf("%d error-severity finding(s)", errors)
	}
	return nil
}
