package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/beamfile"
	"github.com/alexiusacademia/gobeam/internal/diagram"
	"github.com/alexiusacademia/gobeam/internal/nscp"
)

var (
	solveFile       string
	solveCombo      string
	solveSimplified bool
	solveDiagram    bool
	solveOutput     string
	solvePoints     int
	solveWidth      int
	solveHeight     int
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a beam definition: reactions, extreme values and diagrams",
	Long: `Solve the beam described in a JSON or YAML definition file.

Reports the support reactions and the extreme normal force, shear force and
bending moment. Optionally plots the diagrams in the terminal and exports
them, together with a schematic of the loaded beam, to an image file.

Loads may be tagged with an NSCP load case (D, L, Lr, W, E, R). With
--combo every load is scaled by the combination's factor for its case.

Examples:
  # Reactions and extreme values
  gobeam solve -f beam.yaml

  # Factored by NSCP combination 2, with terminal diagrams
  gobeam solve -f beam.yaml --combo 2 --diagram

  # Export the diagrams
  gobeam solve -f beam.json -o diagrams/beam.png`,
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().StringVarP(&solveFile, "file", "f", "", "Beam definition file (.json, .yaml, .yml) [required]")
	solveCmd.Flags().StringVarP(&solveCombo, "combo", "c", "", "NSCP load combination ID to apply (S for unfactored service loads)")
	solveCmd.Flags().BoolVarP(&solveSimplified, "simplified", "s", false, "Use simplified combinations (gravity only: 1.4D and 1.2D+1.6L)")
	solveCmd.Flags().BoolVarP(&solveDiagram, "diagram", "d", false, "Plot the diagrams in the terminal")
	solveCmd.Flags().StringVarP(&solveOutput, "output", "o", "", "Export diagrams to an image file (.png, .svg, .pdf)")
	solveCmd.Flags().IntVarP(&solvePoints, "points", "n", 0, "Number of sample points (default min(1000·L+1, 10000))")
	solveCmd.Flags().IntVar(&solveWidth, "width", 60, "Terminal plot width")
	solveCmd.Flags().IntVar(&solveHeight, "height", 10, "Terminal plot height")

	solveCmd.MarkFlagRequired("file")
}

func runSolve(cmd *cobra.Command, args []string) error {
	def, b, lc, err := loadBeam(solveFile, solveCombo, solveSimplified)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printHeader(out, "SIMPLY SUPPORTED BEAM ANALYSIS")

	printBeam(out, def, b, lc)

	title := def.Name
	if lc != nil {
		title = fmt.Sprintf("%s (combination %s: %s)", def.Name, lc.ID, lc.Description)
	}
	data := diagram.FromBeam(title, b, solvePoints)

	printSection(out, "Schematic")
	fmt.Fprint(out, diagram.DrawBeamSchematic(data, solveWidth))
	fmt.Fprintln(out)

	fmt.Fprint(out, reactionsBox(b.Reactions()))
	fmt.Fprintln(out)

	printExtremes(out, data.Samples)

	if solveDiagram {
		printSection(out, "Diagrams")
		fmt.Fprint(out, diagram.DrawASCIIDiagrams(data, solveWidth, solveHeight))
		fmt.Fprintln(out)
	}

	if solveOutput != "" {
		path, err := diagram.ExportDiagrams(data, solveOutput)
		if err != nil {
			return fmt.Errorf("exporting diagrams: %w", err)
		}
		slog.Info("diagrams exported", slog.String("path", path))
		fmt.Fprintf(out, "  Diagrams written to %s\n\n", path)
	}
	return nil
}

func printBeam(out io.Writer, def *beamfile.Definition, b *beam.Beam, lc *nscp.LoadCombination) {
	printSection(out, "Beam")
	w := newTabWriter(out)
	if def.Name != "" {
		fmt.Fprintf(w, "  Name:\t%s\n", def.Name)
	}
	x0, x1 := b.Span()
	fmt.Fprintf(w, "  Span:\t[%g, %g]\n", x0, x1)
	fmt.Fprintf(w, "  Pinned support (A):\t%g\n", b.PinnedSupport())
	fmt.Fprintf(w, "  Rolling support (B):\t%g\n", b.RollingSupport())
	if lc != nil {
		fmt.Fprintf(w, "  Load combination:\t%s (%s)\n", lc.ID, lc.Description)
	}
	w.Flush()
	fmt.Fprintln(out)

	printSection(out, "Loads")
	w = newTabWriter(out)
	fmt.Fprintf(w, "  #\tCase\tFactor\tLoad\n")
	fmt.Fprintf(w, "  ─\t────\t──────\t────\n")
	for i, cl := range def.Loads {
		factor := 1.0
		if lc != nil {
			factor = lc.Factor(cl.Case)
		}
		fmt.Fprintf(w, "  %d\t%s\t%g\t%s\n", i+1, cl.Case, factor, cl.Load)
	}
	w.Flush()
	fmt.Fprintln(out)
}

func printExtremes(out io.Writer, s beam.Samples) {
	printSection(out, "Extreme values")
	w := newTabWriter(out)
	fmt.Fprintf(w, "  \tmin\tat x\tmax\tat x\n")
	for _, row := range []struct {
		name string
		ys   []float64
	}{
		{"Normal force N", s.Normal},
		{"Shear force V", s.Shear},
		{"Bending moment M", s.Moment},
	} {
		minX, minY, maxX, maxY := extremes(s.X, row.ys)
		fmt.Fprintf(w, "  %s:\t%.4f\t%.4g\t%.4f\t%.4g\n", row.name, clean(minY), minX, clean(maxY), maxX)
	}
	w.Flush()
	fmt.Fprintln(out)
}
