package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pathgen/stategraph/internal/logging"
	"github.com/pathgen/stategraph/modelbuild"
	"github.com/pathgen/stategraph/pumllexer"
	"github.com/pathgen/stategraph/statemodel"
)

var rootCmd = &cobra.Command{
	Use:   "stategraph",
	Short: "State diagram graph tool",
	Long:  "Stategraph parses PlantUML state diagrams into a hierarchical graph model and flattens it for test-path analysis.",
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	viper.SetEnvPrefix("STATEGRAPH")
	viper.AutomaticEnv()
}

func newLogger() *slog.Logger {
	var level slog.Level
	switch viper.GetString("log_level") {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}
	return logging.New(level)
}

// buildDiagram parses the given diagram file. In verbose mode build events
// are echoed to stderr as they happen.
func buildDiagram(path string, verbose bool) (*statemodel.Diagram, []statemodel.Diagnostic, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading diagram file: %w", err)
	}

	builder := modelbuild.NewBuilder(modelbuild.WithLogger(newLogger()))
	if verbose {
		builder.Events().On(terminalEventListener)
	}

	diagram, err := builder.Build(pumllexer.New(src))
	if err != nil {
		return nil, nil, fmt.Errorf("building model: %w", err)
	}
	return diagram, builder.Diagnostics(), nil
}

func terminalEventListener(event modelbuild.Event) {
	fmt.Fprintf(os.Stderr, "[build] %s", event.Type)
	for _, key := range []string{"name", "source", "dest", "scope", "kind", "value", "line"} {
		if v, ok := event.Data[key]; ok && v != "" {
			fmt.Fprintf(os.Stderr, " %s=%v", key, v)
		}
	}
	fmt.Fprintln(os.Stderr)
}

func printDiagnostics(diags []statemodel.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d.String())
	}
}
