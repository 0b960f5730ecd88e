package gains

import (
	"encoding/json"

	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/persistence"
	"github.com/markusressel/pid2go/internal/pid"
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/spf13/cobra"
)

var loopId string

var nodes = []string{pid.PINodeName, pid.PIDNodeName}

var Command = &cobra.Command{
	Use:              "gains",
	Short:            "Commands for the gains saved in the database",
	TraverseChildren: true,
}

func init() {
	Command.PersistentFlags().StringVarP(
		&loopId,
		"id", "i",
		"",
		"Loop ID as specified in the config",
	)
}

func openPersistence() (persistence.Persistence, error) {
	configPath := configuration.DetectAndReadConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()

	dbPath := configuration.CurrentConfig.DbPath
	ui.Info("Using persistence at: %s", dbPath)
	p := persistence.NewPersistence(dbPath)
	return p, p.Init()
}

// loadAllGains returns the decoded gains of every node, keyed by node and loop id.
// If id is not empty, only the gains of that loop are returned.
func loadAllGains(p persistence.Persistence, id string) (map[string]map[string]interface{}, error) {
	result := map[string]map[string]interface{}{}
	for _, node := range nodes {
		saved, err := p.ListGains(node)
		if err != nil {
			return nil, err
		}
		for key, data := range saved {
			if len(id) > 0 && key != id {
				continue
			}
			var value interface{}
			err = json.Unmarshal(data, &value)
			if err != nil {
				ui.Warning("Skipping unreadable gains of %s: %v", key, err)
				continue
			}
			if result[node] == nil {
				result[node] = map[string]interface{}{}
			}
			result[node][key] = value
		}
	}
	return result, nil
}
