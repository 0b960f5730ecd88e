package loop

import (
	"fmt"

	"github.com/markusressel/pid2go/cmd/global"
	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/control_loop"
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the configured loops to console",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loadConfig()

		var rows [][]string
		for _, loopConf := range configuration.CurrentConfig.Loops {
			loop, err := control_loop.NewControlLoop(loopConf)
			if err != nil {
				return err
			}

			setPoint := fmt.Sprintf("%g", loopConf.SetPoint)
			if loop.IsVector() {
				setPoint = loopConf.SetPointVector.String()
			}
			var link string
			if loopConf.PI != nil {
				link = loopConf.PI.Link
			}

			rows = append(rows, []string{
				loop.GetId(),
				loop.GetControllerType(),
				setPoint,
				fmt.Sprintf("%v", loop.Gains()),
				link,
			})
		}

		tableString, err := ui.RenderTable(
			[]string{"ID", "Type", "Set Point", "Gains", "Link"},
			rows,
			!global.NoColor,
		)
		if err != nil {
			return err
		}
		ui.Printfln(tableString)
		return nil
	},
}

func init() {
	Command.AddCommand(listCmd)
}
