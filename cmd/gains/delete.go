package gains

import (
	"errors"

	"github.com/markusressel/pid2go/internal/ui"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the saved gains of a loop",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(loopId) <= 0 {
			return errors.New("a loop id is required, use --id")
		}

		p, err := openPersistence()
		if err != nil {
			return err
		}

		for _, node := range nodes {
			err = p.DeleteGains(node, loopId)
			if err != nil {
				return err
			}
		}

		ui.Success("Deleted saved gains of %s", loopId)
		return nil
	},
}

func init() {
	Command.AddCommand(deleteCmd)
}
