package cmd

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/leocov-dev/launchwiz/config"
	"github.com/leocov-dev/launchwiz/fileio"
	"github.com/leocov-dev/launchwiz/internal/cmdshared"
	"github.com/leocov-dev/launchwiz/internal/shared"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the launcher configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		configFile, err := shared.GetConfigPath()
		if err != nil {
			shared.Exitln(err)
		}

		exists, err := fileio.FileExists(configFile)
		if err != nil {
			shared.Exitln(err)
		}
		if exists && !viper.GetBool("config.init.force") {
			if !cmdshared.PromptYesNo(fmt.Sprintf("%s already exists, overwrite it? [y/N] ", configFile), false) {
				fmt.Println("Use --force to overwrite the existing config file")
				return
			}
		}

		cfg := config.Default()
		if gameDir := viper.GetString("game-directory"); gameDir != "" {
			cfg.GameDirectory = gameDir
		}
		if err := fileio.WriteConfig(cfg, configFile); err != nil {
			shared.Exitf("Failed to write config file: %v\n", err)
		}
		fmt.Printf("Config written to %s\n", configFile)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		raw, err := toml.Marshal(cfg)
		if err != nil {
			shared.Exitln(err)
		}
		configFile, _ := shared.GetConfigPath()
		fmt.Printf("# %s\n", configFile)
		fmt.Print(string(raw))
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")
	_ = viper.BindPFlag("config.init.force", configInitCmd.Flags().Lookup("force"))
}
