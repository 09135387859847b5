package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gobeam/internal/logging"
	"github.com/alexiusacademia/gobeam/internal/version"
)

var (
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "gobeam",
	Short: "Simply Supported Beam Statics Tool",
	Long: `gobeam - Go Beam Statics Engine

A CLI tool for the static analysis of beams on one pinned and one
rolling support.

This tool helps structural engineers perform:
  - Support reaction calculation
  - Normal force, shear force and bending moment diagrams
  - Exact integration of polynomial, trigonometric and exponential
    distributed loads
  - NSCP 2015 load combination envelopes

Beams are described in JSON or YAML files; see 'gobeam example'.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(cmd.ErrOrStderr(), verbose, !noColor)
	},
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintf(out, "  ║   gobeam v%-48s║\n", version.Version)
		fmt.Fprintln(out, "  ║   Go Beam Statics Engine                                  ║")
		fmt.Fprintln(out, "  ║   Alexius S. Academia ©  2025                             ║")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintln(out, "  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  A CLI tool for the static analysis of simply supported beams.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Features:")
		fmt.Fprintln(out, "    • Support reactions from the equilibrium equations")
		fmt.Fprintln(out, "    • Exact N, V and M diagrams for point, distributed and torque loads")
		fmt.Fprintln(out, "    • Terminal plots and PNG/SVG/PDF diagram export")
		fmt.Fprintln(out, "    • Factored diagrams using NSCP load combinations")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Use 'gobeam --help' to see available commands.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ─────────────────────────────────────────────────────────────")
		fmt.Fprintf(out, "  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Fprintln(out)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceErrors = true

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored log output")
}
