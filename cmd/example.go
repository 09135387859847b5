package cmd

import (
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gobeam/internal/beamfile"
	"github.com/alexiusacademia/gobeam/internal/expr"
	"github.com/alexiusacademia/gobeam/internal/load"
	"github.com/alexiusacademia/gobeam/internal/nscp"
)

var exampleYAML bool

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Print an example beam definition",
	Long: `Print an example beam definition to use as a starting point.

The example is a 9 m beam pinned at x = 2 with a roller at x = 7, carrying
a uniform dead load, a live point load, a triangular live load and a
clockwise torque.

Examples:
  gobeam example > beam.json
  gobeam example --yaml > beam.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := beamfile.JSON
		if exampleYAML {
			format = beamfile.YAML
		}
		return beamfile.Encode(cmd.OutOrStdout(), exampleDefinition().File(), format)
	},
}

func init() {
	rootCmd.AddCommand(exampleCmd)

	exampleCmd.Flags().BoolVar(&exampleYAML, "yaml", false, "Write YAML instead of JSON")
}

func exampleDefinition() *beamfile.Definition {
	return &beamfile.Definition{
		Name:     "example",
		X0:       0,
		X1:       9,
		Pinned:   2,
		Rolling:  7,
		Variable: "x",
		Loads: []beamfile.CaseLoad{
			{Case: nscp.Dead, Load: load.UniformV(-10, 3, 9)},
			{Case: nscp.Dead, Load: load.UniformV(-20, 0, 2)},
			{Case: nscp.Live, Load: load.PointV{Force: -20, Coord: 3}},
			{Case: nscp.Live, Load: load.DistributedV{
				Intensity: expr.MustParse("-4*x", "x"),
				Span:      load.Interval{Left: 7, Right: 9},
			}},
			{Case: nscp.Dead, Load: load.Torque{Torque: 5, Coord: 8}},
		},
	}
}
