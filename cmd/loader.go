package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leocov-dev/launchwiz/config"
	"github.com/leocov-dev/launchwiz/core"
	"github.com/leocov-dev/launchwiz/fileio"
	"github.com/leocov-dev/launchwiz/internal/shared"
)

// loaderCmd represents the loader command
var loaderCmd = &cobra.Command{
	Use:   "loader",
	Short: "Manage the mod loader installation for a game version",
}

var loaderStatusCmd = &cobra.Command{
	Use:   "status [version]",
	Short: "Show whether a valid mod loader is installed for a version",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		ctx, cancel := commandContext()
		defer cancel()

		mcVersion := resolveAlias(ctx, cfg, args[0])
		bootstrapper := newLauncher(core.NopReporter).Bootstrapper(cfg)
		profile, err := bootstrapper.DetectExisting(ctx, mcVersion, fileio.NewLayout(cfg.GameDirectory))
		if err != nil {
			shared.Exitln(err)
		}
		if profile == nil {
			fmt.Printf("No valid %s installation for %s\n", bootstrapper.Kind().FriendlyName, mcVersion)
			return
		}
		printProfile(bootstrapper.Kind(), profile)
	},
}

var loaderInstallCmd = &cobra.Command{
	Use:   "install [version]",
	Short: "Install the latest mod loader for a version, replacing any existing installation",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		ctx, cancel := commandContext()
		defer cancel()

		mcVersion := resolveAlias(ctx, cfg, args[0])
		reporter := newCliReporter()
		bootstrapper := newLauncher(reporter).Bootstrapper(cfg)
		profile, err := bootstrapper.Install(ctx, mcVersion, fileio.NewLayout(cfg.GameDirectory))
		reporter.Wait()
		if err != nil {
			shared.Exitf("Failed to install %s: %v\n", bootstrapper.Kind().FriendlyName, err)
		}
		printProfile(bootstrapper.Kind(), profile)
	},
}

func printProfile(kind core.LoaderKind, profile *core.LoaderProfile) {
	fmt.Printf("%s %s for %s\n", kind.FriendlyName, profile.LoaderVersion, profile.InheritsFrom)
	fmt.Printf("Profile: %s\n", profile.ID)
	fmt.Printf("Main class: %s\n", profile.MainClass)
	fmt.Printf("Libraries: %d\n", len(profile.Libraries))
}

// resolveAlias turns latest/latest-snapshot into a concrete version id
func resolveAlias(ctx context.Context, cfg config.LauncherConfig, version string) string {
	if version != core.LatestRelease && version != core.LatestSnapshot {
		return version
	}
	catalog, err := newLauncher(core.NopReporter).Resolver(cfg).FetchCatalog(ctx)
	if err != nil {
		shared.Exitf("Failed to load the version list: %v\n", err)
	}
	if version == core.LatestSnapshot {
		return catalog.Latest.Snapshot
	}
	return catalog.Latest.Release
}

func init() {
	rootCmd.AddCommand(loaderCmd)
	loaderCmd.AddCommand(loaderStatusCmd)
	loaderCmd.AddCommand(loaderInstallCmd)
}
