package fileio

import (
	"github.com/pelletier/go-toml/v2"

	"github.com/leocov-dev/launchwiz/config"
)

// WriteConfig writes cfg as TOML to configFile
func WriteConfig(cfg config.LauncherConfig, configFile string) error {
	raw, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return WriteFileAtomic(configFile, raw)
}
