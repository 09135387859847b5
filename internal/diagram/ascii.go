package diagram

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/alexiusacademia/gobeam/internal/load"
)

// DrawASCIIDiagrams plots every panel of d with asciigraph. Panels that are
// zero everywhere are skipped, except the bending moment.
func DrawASCIIDiagrams(d Data, width, height int) string {
	var sb strings.Builder

	for _, p := range d.Panels() {
		if p.IsZero() && p.Title != "Bending moment" {
			continue
		}
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("  %s\n", strings.ToUpper(p.Title)))
		sb.WriteString(fmt.Sprintf("  %s\n\n", strings.Repeat("─", len(p.Title))))

		ys := p.Y
		if len(ys) == 0 {
			continue
		}
		if len(ys) == 1 {
			ys = []float64{ys[0], ys[0]}
		}
		sb.WriteString(asciigraph.Plot(ys,
			asciigraph.Width(width),
			asciigraph.Height(height),
			asciigraph.Offset(4),
			asciigraph.Precision(2),
			asciigraph.Caption(fmt.Sprintf("%s over x = %g … %g", p.Label, d.X0, d.X1)),
		))
		sb.WriteString("\n")
		for _, e := range p.Extrema() {
			sb.WriteString(fmt.Sprintf("    extremum %s = %.4g at x = %.4g\n", p.Label, e.Y, e.X))
		}
	}
	return sb.String()
}

// DrawBeamSchematic draws the beam as a line of the given width with its
// loads above and supports below.
//
//	↓    vvvvvvvvv
//	══════════════
//	△         ○
func DrawBeamSchematic(d Data, width int) string {
	if width < 2 {
		width = 2
	}
	loads := []rune(strings.Repeat(" ", width))
	beam := []rune(strings.Repeat("═", width))
	supports := []rune(strings.Repeat(" ", width))

	col := func(x float64) int {
		c := int(math.Round((x - d.X0) / (d.X1 - d.X0) * float64(width-1)))
		return min(max(c, 0), width-1)
	}

	// distributed loads first so point loads are drawn over them
	for _, l := range d.Loads {
		var mark rune
		var iv load.Interval
		switch v := l.(type) {
		case load.DistributedV:
			mark, iv = 'v', v.Span
		case load.DistributedH:
			mark, iv = '>', v.Span
		default:
			continue
		}
		for c := col(iv.Left); c <= col(iv.Right); c++ {
			loads[c] = mark
		}
	}
	for _, l := range d.Loads {
		switch v := l.(type) {
		case load.PointV:
			loads[col(v.Coord)] = pick(v.Force < 0, '↓', '↑')
		case load.PointH:
			loads[col(v.Coord)] = pick(v.Force < 0, '←', '→')
		case load.Torque:
			loads[col(v.Coord)] = pick(v.Torque < 0, '↺', '↻')
		}
	}
	supports[col(d.Pinned)] = '△'
	supports[col(d.Rolling)] = '○'

	var sb strings.Builder
	sb.WriteString("  " + strings.TrimRight(string(loads), " ") + "\n")
	sb.WriteString("  " + string(beam) + "\n")
	sb.WriteString("  " + strings.TrimRight(string(supports), " ") + "\n")
	left, right := fmt.Sprintf("%g", d.X0), fmt.Sprintf("%g", d.X1)
	gap := max(width-len(left)-len(right), 1)
	sb.WriteString("  " + left + strings.Repeat(" ", gap) + right + "\n")
	return sb.String()
}

func pick(cond bool, a, b rune) rune {
	if cond {
		return a
	}
	return b
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
