package loop

import (
	"errors"
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/pid2go/cmd/global"
	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/control_loop"
	"github.com/markusressel/pid2go/internal/controller"
	"github.com/markusressel/pid2go/internal/persistence"
	"github.com/markusressel/pid2go/internal/pid"
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/markusressel/pid2go/internal/util"
	"github.com/spf13/cobra"
)

var (
	simulateDt         float64
	simulateSteps      int
	simulateAxis       string
	simulateSavedGains bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a loop against its plant and plot error and action",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(loopId) <= 0 {
			return errors.New("a loop id is required, use --id")
		}
		if simulateDt <= 0 {
			return fmt.Errorf("dt must be positive, got %g", simulateDt)
		}
		if simulateSteps <= 0 {
			return errors.New("steps must be positive")
		}

		loadConfig()

		loopConf, err := getLoopConfig(loopId, configuration.CurrentConfig.Loops)
		if err != nil {
			return err
		}
		loop, err := control_loop.NewControlLoop(*loopConf)
		if err != nil {
			return err
		}

		if simulateSavedGains {
			dbPath := configuration.CurrentConfig.DbPath
			ui.Info("Using persistence at: %s", dbPath)
			pers := persistence.NewPersistence(dbPath)
			if err = pers.Init(); err != nil {
				return err
			}
			err = controller.RestoreGains(pers, loop)
			if err != nil {
				return err
			}
		}

		samples := controller.Simulate(loop, simulateDt, simulateSteps)

		errorValues := make([]float64, 0, len(samples))
		actionValues := make([]float64, 0, len(samples))
		for _, sample := range samples {
			errorValues = append(errorValues, component(sample.Error, simulateAxis))
			actionValues = append(actionValues, component(sample.Action, simulateAxis))
		}

		caption := fmt.Sprintf("%s: error / action over %d steps of %gs", loop.GetId(), simulateSteps, simulateDt)
		options := []asciigraph.Option{
			asciigraph.Height(15),
			asciigraph.Width(100),
			asciigraph.Caption(caption),
			asciigraph.SeriesLegends("error", "action"),
		}
		if !global.NoColor {
			options = append(options, asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue))
		}
		graph := asciigraph.PlotMany([][]float64{errorValues, actionValues}, options...)
		ui.Printfln(graph)

		last := samples[len(samples)-1]
		tableString, err := ui.RenderTable(
			[]string{"Error", "Integral", "Action", "Measured", "Min Error", "Max Action", "Avg Action"},
			[][]string{{
				last.Error.String(),
				last.Integral.String(),
				last.Action.String(),
				last.Measured.String(),
				fmt.Sprintf("%g", util.Min(errorValues)),
				fmt.Sprintf("%g", util.Max(actionValues)),
				fmt.Sprintf("%g", util.Avg(actionValues)),
			}},
			!global.NoColor,
		)
		if err != nil {
			return err
		}
		ui.Printfln(tableString)
		return nil
	},
}

func component(v pid.Vec3d, axis string) float64 {
	switch axis {
	case "y":
		return v.Y
	case "z":
		return v.Z
	default:
		return v.X
	}
}

func init() {
	simulateCmd.Flags().Float64Var(&simulateDt, "dt", 0.02, "Time step of a single cycle in seconds")
	simulateCmd.Flags().IntVarP(&simulateSteps, "steps", "n", 500, "Number of cycles to simulate")
	simulateCmd.Flags().StringVar(&simulateAxis, "axis", "x", "Axis to plot for vector loops (x, y or z)")
	simulateCmd.Flags().BoolVar(&simulateSavedGains, "saved-gains", false, "Use the gains saved in the database")
	Command.AddCommand(simulateCmd)
}
