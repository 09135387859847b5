package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gobeam/internal/nscp"
)

var (
	// Unfactored moments (kN-m)
	momentDead       float64
	momentLive       float64
	momentRoof       float64
	momentWind       float64
	momentEarthquake float64
	momentRain       float64

	// Options
	showAll       bool
	useSimplified bool
)

var momentCmd = &cobra.Command{
	Use:   "moment",
	Short: "Calculate factored moment using NSCP load combinations",
	Long: `Calculate the factored moment (Mu) based on NSCP 2015 load combinations.

Provide unfactored moments from different load types and this command will
compute the factored moments for all applicable NSCP load combinations.
To derive the unfactored moments from a beam definition use 'gobeam envelope'.

Load Types:
  D  - Dead load
  L  - Live load
  Lr - Roof live load
  W  - Wind load
  E  - Earthquake load
  R  - Rain load

Examples:
  # Simple gravity loads (dead + live)
  gobeam moment --dead 50 --live 30

  # With wind load
  gobeam moment --dead 50 --live 30 --wind 20

  # Show all combinations
  gobeam moment --dead 50 --live 30 --all`,
	RunE: runMoment,
}

func init() {
	rootCmd.AddCommand(momentCmd)

	// Load moment flags
	momentCmd.Flags().Float64VarP(&momentDead, "dead", "d", 0, "Moment due to dead load (kN-m)")
	momentCmd.Flags().Float64VarP(&momentLive, "live", "l", 0, "Moment due to live load (kN-m)")
	momentCmd.Flags().Float64VarP(&momentRoof, "roof", "r", 0, "Moment due to roof live load (kN-m)")
	momentCmd.Flags().Float64VarP(&momentWind, "wind", "w", 0, "Moment due to wind load (kN-m)")
	momentCmd.Flags().Float64VarP(&momentEarthquake, "earthquake", "e", 0, "Moment due to earthquake load (kN-m)")
	momentCmd.Flags().Float64VarP(&momentRain, "rain", "R", 0, "Moment due to rain load (kN-m)")

	// Options
	momentCmd.Flags().BoolVarP(&showAll, "all", "a", false, "Show all load combination results")
	momentCmd.Flags().BoolVarP(&useSimplified, "simplified", "s", false, "Use simplified combinations (gravity only: 1.4D and 1.2D+1.6L)")
}

func runMoment(cmd *cobra.Command, args []string) error {
	moments := nscp.CaseSamples{}
	for c, m := range map[nscp.LoadCase]float64{
		nscp.Dead:       momentDead,
		nscp.Live:       momentLive,
		nscp.Roof:       momentRoof,
		nscp.Wind:       momentWind,
		nscp.Earthquake: momentEarthquake,
		nscp.Rain:       momentRain,
	} {
		if m != 0 {
			moments[c] = []float64{m}
		}
	}

	// Check if any moment is provided
	if len(moments) == 0 {
		return fmt.Errorf("please provide at least one unfactored moment; use 'gobeam moment --help' for usage information")
	}

	combos := combinations(useSimplified)
	out := cmd.OutOrStdout()

	// Print header
	printHeader(out, "     NSCP 2015 FACTORED MOMENT CALCULATION")

	// Print input moments
	printSection(out, "Unfactored moments (kN-m)")
	names := map[nscp.LoadCase]string{
		nscp.Dead:       "Dead Load",
		nscp.Live:       "Live Load",
		nscp.Roof:       "Roof Live Load",
		nscp.Wind:       "Wind Load",
		nscp.Earthquake: "Earthquake Load",
		nscp.Rain:       "Rain Load",
	}
	w := newTabWriter(out)
	for _, c := range nscp.LoadCases {
		if m, ok := moments[c]; ok {
			fmt.Fprintf(w, "  %s (%s):\t%.2f\n", names[c], c, m[0])
		}
	}
	w.Flush()
	fmt.Fprintln(out)

	// Calculate governing moment
	gov, _ := nscp.CalculateGoverning(moments, 1, combos)

	if showAll {
		// Show all combinations
		printSection(out, "Load combinations (NSCP 2015 Section 203.3)")
		w = newTabWriter(out)
		fmt.Fprintf(w, "  #\tCombination\tMu (kN-m)\n")
		fmt.Fprintf(w, "  ─\t───────────\t─────────\n")
		for _, p := range nscp.CalculatePeaks(moments, 1, combos) {
			marker := ""
			if p.Combination.ID == gov.Combination.ID {
				marker = " ← GOVERNS"
			}
			fmt.Fprintf(w, "  %s\t%s\t%.2f%s\n", p.Combination.ID, p.Combination.Description, p.Value, marker)
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	// Print result
	printSection(out, "Result")
	fmt.Fprintf(out, "  Governing Combination: %s (%s)\n", gov.Combination.ID, gov.Combination.Description)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  ╔═══════════════════════════════════╗\n")
	fmt.Fprintf(out, "  ║  FACTORED MOMENT (Mu) = %.2f kN-m  \n", gov.Value)
	fmt.Fprintf(out, "  ╚═══════════════════════════════════╝\n")
	fmt.Fprintln(out)
	return nil
}
