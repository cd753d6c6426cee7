package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/leocov-dev/launchwiz/config"
	"github.com/leocov-dev/launchwiz/core"
	"github.com/leocov-dev/launchwiz/internal/cmdshared"
	"github.com/leocov-dev/launchwiz/internal/shared"
	"github.com/leocov-dev/launchwiz/launcher"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "launchwiz",
	Short: "A command line Minecraft launcher",
	Long: `launchwiz downloads, verifies and launches Minecraft versions in offline mode.
When the mods folder holds any mods, a mod loader (Fabric by default) is installed
and the game is launched through it.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	rootCmd.Version = config.Version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "The launcher config file to use (default "+config.DefaultConfigFile()+")")
	rootCmd.PersistentFlags().String("game-dir", "", "The game directory to use (overrides game-directory in the config file)")
	_ = viper.BindPFlag("game-directory", rootCmd.PersistentFlags().Lookup("game-dir"))
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Never prompt; use the default choice instead")
	_ = viper.BindPFlag("non-interactive", rootCmd.PersistentFlags().Lookup("non-interactive"))
}

// initConfig reads in the config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigFile(config.DefaultConfigFile())
	}
	viper.SetConfigType("toml")

	defaults, err := config.Default().ToMap()
	if err != nil {
		shared.Exitln(err)
	}
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}

	viper.SetEnvPrefix("launchwiz")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			shared.Exitf("Failed to read config file %s: %v\n", viper.ConfigFileUsed(), err)
		}
	}
}

// loadConfig decodes the merged flag, env and file settings and validates them
func loadConfig() config.LauncherConfig {
	cfg, err := config.FromMap(viper.AllSettings())
	if err != nil {
		shared.Exitln(err)
	}
	if err := cfg.Validate(); err != nil {
		shared.Exitf("Invalid configuration: %v\n", err)
	}
	return cfg
}

// commandContext is cancelled on interrupt so downloads stop between files
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func newLauncher(reporter core.Reporter) *launcher.Launcher {
	return launcher.New(launcher.WithReporter(reporter))
}

// versionKinds lists the catalog kinds to show, from the config and the given overrides
func versionKinds(cfg config.LauncherConfig, snapshots, old bool) []core.VersionKind {
	kinds := []core.VersionKind{core.KindRelease}
	if snapshots || cfg.ShowSnapshots {
		kinds = append(kinds, core.KindSnapshot)
	}
	if old || cfg.ShowBetaVersions {
		kinds = append(kinds, core.KindOldBeta, core.KindOldAlpha)
	}
	return kinds
}

// versionFromArgs returns the version argument, or asks the user to pick one
func versionFromArgs(ctx context.Context, cfg config.LauncherConfig, args []string) string {
	if len(args) > 0 {
		return args[0]
	}

	fmt.Println("Loading version list...")
	catalog, err := newLauncher(core.NopReporter).Resolver(cfg).FetchCatalog(ctx)
	if err != nil {
		shared.Exitf("Failed to load the version list: %v\n", err)
	}
	cancelled, version, err := cmdshared.PickVersion(catalog, versionKinds(cfg, false, false))
	if err != nil {
		shared.Exitln(err)
	}
	if cancelled {
		os.Exit(0)
	}
	return version
}

// exitPipelineError prints a pipeline failure, with suggestions for unknown versions
func exitPipelineError(ctx context.Context, cfg config.LauncherConfig, err error) {
	if errors.Is(err, context.Canceled) {
		shared.Exitln("Cancelled!")
	}

	var notFound *core.VersionNotFoundError
	if errors.As(err, &notFound) {
		fmt.Printf("Version %s does not exist.\n", notFound.ID)
		catalog, catalogErr := newLauncher(core.NopReporter).Resolver(cfg).FetchCatalog(ctx)
		if catalogErr == nil {
			if suggestions := cmdshared.SuggestVersions(notFound.ID, catalog, 3); len(suggestions) > 0 {
				fmt.Printf("Did you mean: %s?\n", strings.Join(suggestions, ", "))
			}
		}
		os.Exit(1)
	}

	var stageErr *core.StageError
	if errors.As(err, &stageErr) {
		shared.Exitf("Failed during %s: %v\n", stageErr.Stage, stageErr.Err)
	}
	shared.Exitln(err)
}
