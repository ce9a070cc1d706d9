// Package main provides the CLI entry point for hashbench, a password-hashing
// benchmark and load-simulation tool.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	root := newRootCmd(logger)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	var noColor bool

	root := &cobra.Command{
		Use:   "hashbench",
		Short: "Password-hashing benchmark and load-simulation tool",
		Long: `Hashbench measures bcrypt and argon2id hashing/verification latency,
throughput, memory footprint, and CPU utilization under configurable parameter
sets, and simulates authentication load against a Redis-backed user store.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			color.NoColor = color.NoColor || noColor
		},
	}

	root.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored output")

	root.AddCommand(newBenchCmd(logger))
	root.AddCommand(newLoadtestCmd(logger))
	root.AddCommand(newMonitorCmd(logger))

	return root
}
