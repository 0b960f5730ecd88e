package gains

import (
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/markusressel/pid2go/internal/util"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the saved gains as YAML",
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

		data, err := yaml.Marshal(all)
		if err != nil {
			return err
		}

		if len(exportOutput) <= 0 {
			ui.Printfln("%s", data)
			return nil
		}

		err = util.WriteFileAtomic(exportOutput, data)
		if err != nil {
			return err
		}
		ui.Success("Gains written to %s", exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "File to write to, prints to console if empty")
	Command.AddCommand(exportCmd)
}
