package configuration

import (
	"os"
	"time"

	"github.com/markusressel/pid2go/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Configuration struct {
	DbPath string `json:"dbPath"`

	// Interval between two ticks of the host loop
	TickRate time.Duration `json:"tickRate"`
	// Restore gains from the database on startup, overriding the config file values
	RestoreGains bool `json:"restoreGains"`
	// Number of actions kept per loop for statistics
	ActionWindowSize int `json:"actionWindowSize"`

	Statistics StatisticsConfig `json:"statistics"`
	Api        ApiConfig        `json:"api"`

	Loops []LoopConfig `json:"loops"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("pid2go")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/pid2go/")
	}

	viper.SetEnvPrefix("pid2go")
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("dbpath", "/etc/pid2go/pid2go.db")
	viper.SetDefault("TickRate", 20*time.Millisecond)
	viper.SetDefault("RestoreGains", true)
	viper.SetDefault("ActionWindowSize", 50)

	viper.SetDefault("statistics", StatisticsConfig{
		Enabled: false,
		Port:    9000,
	})
	viper.SetDefault("api", ApiConfig{
		Enabled: false,
		Host:    "localhost",
		Port:    8090,
	})

	viper.SetDefault("loops", []LoopConfig{})
}

// DetectAndReadConfigFile reads the config file and returns its path.
func DetectAndReadConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		// config file is required, so we fail here
		ui.Fatal("Error reading config file, %s", err)
	}
	// this is only populated _after_ ReadInConfig()
	return viper.ConfigFileUsed()
}

func LoadConfig() {
	// load default configuration values
	err := viper.Unmarshal(
		&CurrentConfig,
		viper.DecodeHook(
			mapstructure.ComposeDecodeHookFunc(
				Vec3HookFunc(),
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		),
	)
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
}
