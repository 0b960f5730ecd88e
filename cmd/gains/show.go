package gains

import (
	"fmt"

	"github.com/markusressel/pid2go/cmd/global"
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/markusressel/pid2go/internal/util"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved gains to console",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openPersistence()
		if err != nil {
			return err
		}

		all, err := loadAllGains(p, loopId)
		if err != nil {
			return err
		}

		var rows [][]string
		for _, node := range nodes {
			saved := all[node]
			for _, id := range util.SortedKeys(saved) {
				rows = append(rows, []string{id, node, fmt.Sprintf("%v", saved[id])})
			}
		}
		if len(rows) <= 0 {
			ui.Warning("No saved gains found")
			return nil
		}

		tableString, err := ui.RenderTable([]string{"ID", "Node", "Gains"}, rows, !global.NoColor)
		if err != nil {
			return err
		}
		ui.Printfln(tableString)
		return nil
	},
}

func init() {
	Command.AddCommand(showCmd)
}
