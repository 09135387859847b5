package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"gonum.org/v1/gonum/floats"

	"github.com/alexiusacademia/gobeam/internal/beam"
	"github.com/alexiusacademia/gobeam/internal/beamfile"
	"github.com/alexiusacademia/gobeam/internal/nscp"
)

const rule = "───────────────────────────────────────────────────────────────"

// loadBeam reads a definition file and builds its beam, factored by the
// combination comboID when one is given.
func loadBeam(path, comboID string, simplified bool) (*beamfile.Definition, *beam.Beam, *nscp.LoadCombination, error) {
	if path == "" {
		return nil, nil, nil, fmt.Errorf("a beam definition file is required (--file)")
	}
	def, err := beamfile.LoadFromFile(path)
	if err != nil {
		return nil, nil, nil, err
	}
	slog.Debug("loaded beam definition",
		slog.String("file", path),
		slog.Float64("x0", def.X0),
		slog.Float64("x1", def.X1),
		slog.Int("loads", len(def.Loads)),
	)

	logger := beamLogger()
	if comboID == "" {
		b, err := def.Beam(logger)
		return def, b, nil, err
	}
	lc, err := nscp.Lookup(comboID, combinations(simplified))
	if err != nil {
		return nil, nil, nil, err
	}
	b, err := def.Factored(lc, logger)
	return def, b, &lc, err
}

func beamLogger() beam.Option {
	return beam.WithLogger(slog.Default())
}

func combinations(simplified bool) []nscp.LoadCombination {
	if simplified {
		return nscp.SimplifiedCombinations
	}
	return nscp.LoadCombinations
}

func printHeader(out io.Writer, title string) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintf(out, "     %s\n", title)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)
}

func printSection(out io.Writer, title string) {
	fmt.Fprintf(out, "%s:\n", strings.ToUpper(title))
	fmt.Fprintln(out, rule)
}

func newTabWriter(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

// extremes returns the smallest and largest sample and where they occur.
func extremes(xs, ys []float64) (minX, minY, maxX, maxY float64) {
	lo, hi := floats.MinIdx(ys), floats.MaxIdx(ys)
	return xs[lo], ys[lo], xs[hi], ys[hi]
}

// clean maps tiny values to zero so round-off does not print as -0.0000.
func clean(v float64) float64 {
	if v > -1e-9 && v < 1e-9 {
		return 0
	}
	return v
}
