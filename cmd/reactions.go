package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gobeam/internal/diagram"
	"github.com/alexiusacademia/gobeam/internal/statics"
)

var (
	reactionsPinned  float64
	reactionsRolling float64
	reactionsFx      float64
	reactionsFy      float64
	reactionsMoment  float64
)

var reactionsCmd = &cobra.Command{
	Use:   "reactions",
	Short: "Solve support reactions for a given load resultant",
	Long: `Solve the three support reactions of a beam on a pinned support A and a
rolling support B for a known load resultant.

The resultant is given as the total horizontal force, the total vertical
force and the total moment about x = 0 (forces counterclockwise positive,
F·x; clockwise torques count negative). The reactions satisfy

  F_Ax + Fx = 0
  F_Ay + F_By + Fy = 0
  F_Ay·xA + F_By·xB + M = 0

Examples:
  # Pinned at 2, roller at 7
  gobeam reactions --pinned 2 --rolling 7 --fx -20 --fy -150 --moment -505`,
	RunE: runReactions,
}

func init() {
	rootCmd.AddCommand(reactionsCmd)

	reactionsCmd.Flags().Float64VarP(&reactionsPinned, "pinned", "a", 0, "Pinned support coordinate xA [required]")
	reactionsCmd.Flags().Float64VarP(&reactionsRolling, "rolling", "b", 0, "Rolling support coordinate xB [required]")
	reactionsCmd.Flags().Float64Var(&reactionsFx, "fx", 0, "Resultant horizontal force")
	reactionsCmd.Flags().Float64Var(&reactionsFy, "fy", 0, "Resultant vertical force")
	reactionsCmd.Flags().Float64VarP(&reactionsMoment, "moment", "m", 0, "Resultant moment about x = 0")

	reactionsCmd.MarkFlagRequired("pinned")
	reactionsCmd.MarkFlagRequired("rolling")
}

func runReactions(cmd *cobra.Command, args []string) error {
	r := statics.Resultant{Fx: reactionsFx, Fy: reactionsFy, M: reactionsMoment}
	re, err := statics.Solve(reactionsPinned, reactionsRolling, r)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printHeader(out, "SUPPORT REACTIONS")

	printSection(out, "Input data")
	w := newTabWriter(out)
	fmt.Fprintf(w, "  Pinned support (xA):\t%g\n", reactionsPinned)
	fmt.Fprintf(w, "  Rolling support (xB):\t%g\n", reactionsRolling)
	fmt.Fprintf(w, "  Resultant force (Fx, Fy):\t(%g, %g)\n", r.Fx, r.Fy)
	fmt.Fprintf(w, "  Resultant moment (M):\t%g\n", r.M)
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprint(out, reactionsBox(re))
	fmt.Fprintln(out)
	return nil
}

func reactionsBox(re statics.Reactions) string {
	return diagram.DrawSummaryBox("REACTIONS", []string{
		fmt.Sprintf("F_Ax = %.4f", clean(re.Ax)),
		fmt.Sprintf("F_Ay = %.4f", clean(re.Ay)),
		fmt.Sprintf("F_By = %.4f", clean(re.By)),
	})
}
