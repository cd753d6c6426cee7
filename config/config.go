package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/mitchellh/mapstructure"

	"github.com/leocov-dev/launchwiz/core"
)

var Version string

func SetVersion(version string) {
	Version = version
}

const CurrentConfigFormat = "launchwiz:1.0.0"

var ConfigFormatConstraintAccepted = mustParseConstraint("~1")

func mustParseConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(err)
	}
	return c
}

// LauncherConfig is the user configuration handed to the launch pipeline
type LauncherConfig struct {
	ConfigFormat   string `mapstructure:"config-format" toml:"config-format"`
	GameDirectory  string `mapstructure:"game-directory" toml:"game-directory"`
	JavaExecutable string `mapstructure:"java-executable" toml:"java-executable,omitempty"`

	// Heap sizes in megabytes
	MinMemory uint32   `mapstructure:"min-memory" toml:"min-memory"`
	MaxMemory uint32   `mapstructure:"max-memory" toml:"max-memory"`
	JvmArgs   []string `mapstructure:"jvm-args" toml:"jvm-args"`

	PlayerName string `mapstructure:"player-name" toml:"player-name"`
	PlayerUUID string `mapstructure:"player-uuid" toml:"player-uuid,omitempty"`

	// DownloadTimeout is in seconds
	DownloadTimeout     int    `mapstructure:"download-timeout" toml:"download-timeout"`
	MaxRetries          int    `mapstructure:"max-retries" toml:"max-retries"`
	ConcurrentDownloads int    `mapstructure:"concurrent-downloads" toml:"concurrent-downloads"`
	ModLoader           string `mapstructure:"mod-loader" toml:"mod-loader"`

	ShowSnapshots    bool `mapstructure:"show-snapshots" toml:"show-snapshots"`
	ShowBetaVersions bool `mapstructure:"show-beta-versions" toml:"show-beta-versions"`
}

func Default() LauncherConfig {
	return LauncherConfig{
		ConfigFormat:        CurrentConfigFormat,
		GameDirectory:       DefaultGameDirectory(),
		MinMemory:           1024,
		MaxMemory:           4096,
		JvmArgs:             []string{},
		PlayerName:          "Player",
		DownloadTimeout:     30,
		MaxRetries:          3,
		ConcurrentDownloads: 8,
		ModLoader:           core.DefaultLoader,
	}
}

func DefaultGameDirectory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".launchwiz"
	}
	return filepath.Join(home, ".launchwiz")
}

// DefaultConfigFile is where the CLI looks for a config file when none is given
func DefaultConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(dir, "launchwiz", "config.toml")
}

// FromMap decodes settings (as produced by viper.AllSettings) over the defaults
func FromMap(settings map[string]interface{}) (LauncherConfig, error) {
	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ZeroFields:       false,
	})
	if err != nil {
		return cfg, err
	}
	if err := decoder.Decode(settings); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ToMap flattens the config into its keyed form, used to seed viper defaults
func (c LauncherConfig) ToMap() (map[string]interface{}, error) {
	out := map[string]interface{}{}
	if err := mapstructure.Decode(c, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Validate checks the configuration before it is handed to the pipeline
func (c LauncherConfig) Validate() error {
	if len(c.ConfigFormat) == 0 {
		return errors.New("config-format field is missing")
	}
	if !strings.HasPrefix(c.ConfigFormat, "launchwiz:") {
		return errors.New("config-format field does not indicate a launchwiz config")
	}
	ver, err := semver.StrictNewVersion(strings.TrimPrefix(c.ConfigFormat, "launchwiz:"))
	if err != nil {
		return fmt.Errorf("config-format field is not valid semver: %w", err)
	}
	if !ConfigFormatConstraintAccepted.Check(ver) {
		return errors.New("the config file is incompatible with this version of launchwiz; please update")
	}

	if c.MinMemory > c.MaxMemory {
		return errors.New("min-memory cannot be greater than max-memory")
	}
	if c.MaxMemory < 512 {
		return errors.New("max-memory must be at least 512MB")
	}
	if strings.TrimSpace(c.GameDirectory) == "" {
		return errors.New("game-directory cannot be empty")
	}
	if strings.TrimSpace(c.PlayerName) == "" {
		return errors.New("player-name cannot be empty")
	}
	if len(c.PlayerName) > 16 {
		return errors.New("player-name cannot be longer than 16 characters")
	}
	if _, ok := core.LoaderKinds[c.ModLoader]; !ok {
		return fmt.Errorf("unsupported mod-loader %q", c.ModLoader)
	}
	if c.DownloadTimeout <= 0 {
		return errors.New("download-timeout must be positive")
	}
	if c.MaxRetries < 0 {
		return errors.New("max-retries cannot be negative")
	}
	return nil
}

// HeapArgs returns -Xms/-Xmx followed by the user's extra flags
func (c LauncherConfig) HeapArgs() []string {
	args := []string{
		fmt.Sprintf("-Xms%dM", c.MinMemory),
		fmt.Sprintf("-Xmx%dM", c.MaxMemory),
	}
	return append(args, c.JvmArgs...)
}

func (c LauncherConfig) Java() string {
	if c.JavaExecutable == "" {
		return "java"
	}
	return c.JavaExecutable
}

func (c LauncherConfig) Timeout() time.Duration {
	return time.Duration(c.DownloadTimeout) * time.Second
}

func (c LauncherConfig) Loader() core.LoaderKind {
	if kind, ok := core.LoaderKinds[c.ModLoader]; ok {
		return kind
	}
	return core.LoaderKinds[core.DefaultLoader]
}
