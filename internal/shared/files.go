package shared

import (
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/leocov-dev/launchwiz/config"
)

// GetConfigPath returns the absolute path of the config file in use, whether or not it exists yet
func GetConfigPath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = config.DefaultConfigFile()
	}
	return filepath.Abs(configFile)
}
