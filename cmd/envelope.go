package cmd

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gobeam/internal/beamfile"
	"github.com/alexiusacademia/gobeam/internal/nscp"
	"github.com/alexiusacademia/gobeam/internal/piecewise"
)

var (
	envelopeFile       string
	envelopeSimplified bool
	envelopePoints     int
)

var envelopeCmd = &cobra.Command{
	Use:   "envelope",
	Short: "Find the governing NSCP load combination for a beam",
	Long: `Analyse a beam once per load case and superpose the results with every
NSCP 2015 load combination (Section 203.3). Reports the peak bending moment
and shear force of each combination and the combination with the largest
bending moment.

Load cases are read from the 'case' field of each load (D, L, Lr, W, E, R;
default D).

Examples:
  gobeam envelope -f beam.yaml

  # Gravity combinations only
  gobeam envelope -f beam.yaml --simplified`,
	RunE: runEnvelope,
}

func init() {
	rootCmd.AddCommand(envelopeCmd)

	envelopeCmd.Flags().StringVarP(&envelopeFile, "file", "f", "", "Beam definition file (.json, .yaml, .yml) [required]")
	envelopeCmd.Flags().BoolVarP(&envelopeSimplified, "simplified", "s", false, "Use simplified combinations (gravity only: 1.4D and 1.2D+1.6L)")
	envelopeCmd.Flags().IntVarP(&envelopePoints, "points", "n", 0, "Number of sample points (default min(1000·L+1, 10000))")

	envelopeCmd.MarkFlagRequired("file")
}

func runEnvelope(cmd *cobra.Command, args []string) error {
	def, err := beamfile.LoadFromFile(envelopeFile)
	if err != nil {
		return err
	}
	n := envelopePoints
	if n <= 0 {
		n = piecewise.Resolution(def.X1 - def.X0)
	}
	xs := piecewise.Linspace(def.X0, def.X1, n)

	moments, shears := nscp.CaseSamples{}, nscp.CaseSamples{}
	cases := def.Cases()
	for _, c := range cases {
		b, err := def.CaseBeam(c, beamLogger())
		if err != nil {
			return fmt.Errorf("load case %s: %w", c, err)
		}
		s := b.Diagrams().Sample(xs)
		moments[c] = s.Moment
		shears[c] = s.Shear
		slog.Debug("load case analysed", slog.String("case", string(c)), slog.Int("loads", len(b.Loads())))
	}

	combos := combinations(envelopeSimplified)
	mPeaks := nscp.CalculatePeaks(moments, len(xs), combos)
	vPeaks := nscp.CalculatePeaks(shears, len(xs), combos)
	gov, ok := nscp.CalculateGoverning(moments, len(xs), combos)

	out := cmd.OutOrStdout()
	printHeader(out, "NSCP 2015 LOAD COMBINATION ENVELOPE")

	printSection(out, "Load cases")
	w := newTabWriter(out)
	for _, c := range cases {
		count := 0
		for _, cl := range def.Loads {
			if cl.Case == c {
				count++
			}
		}
		fmt.Fprintf(w, "  %s:\t%d load(s)\n", c, count)
	}
	w.Flush()
	fmt.Fprintln(out)

	printSection(out, "Load combinations (NSCP 2015 Section 203.3)")
	w = newTabWriter(out)
	fmt.Fprintf(w, "  #\tCombination\tMu\tat x\tVu\tat x\n")
	fmt.Fprintf(w, "  ─\t───────────\t──\t────\t──\t────\n")
	for i, mp := range mPeaks {
		vp := vPeaks[i]
		marker := ""
		if ok && mp.Combination.ID == gov.Combination.ID {
			marker = " ← GOVERNS"
		}
		fmt.Fprintf(w, "  %s\t%s\t%.2f\t%.4g\t%.2f\t%.4g%s\n",
			mp.Combination.ID, mp.Combination.Description,
			clean(mp.Value), xs[mp.Index], clean(vp.Value), xs[vp.Index], marker)
	}
	w.Flush()
	fmt.Fprintln(out)

	printSection(out, "Result")
	if !ok || math.Abs(gov.Value) == 0 {
		fmt.Fprintln(out, "  No load produces a bending moment.")
		fmt.Fprintln(out)
		return nil
	}
	fmt.Fprintf(out, "  Governing Combination: %s (%s)\n", gov.Combination.ID, gov.Combination.Description)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  ╔═══════════════════════════════════════════╗\n")
	fmt.Fprintf(out, "  ║  FACTORED MOMENT (Mu) = %.2f at x = %.4g\n", gov.Value, xs[gov.Index])
	fmt.Fprintf(out, "  ╚═══════════════════════════════════════════╝\n")
	fmt.Fprintln(out)
	return nil
}
