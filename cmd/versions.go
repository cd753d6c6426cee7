package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/leocov-dev/launchwiz/core"
	"github.com/leocov-dev/launchwiz/fileio"
	"github.com/leocov-dev/launchwiz/internal/shared"
)

// versionsCmd represents the versions command
var versionsCmd = &cobra.Command{
	Use:     "versions",
	Short:   "List the game versions that can be launched",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		ctx, cancel := commandContext()
		defer cancel()

		catalog, err := newLauncher(core.NopReporter).Resolver(cfg).FetchCatalog(ctx)
		if err != nil {
			shared.Exitf("Failed to load the version list: %v\n", err)
		}

		layout := fileio.NewLayout(cfg.GameDirectory)
		kinds := versionKinds(cfg, viper.GetBool("versions.snapshots"), viper.GetBool("versions.old"))
		for _, v := range catalog.Filter(kinds...) {
			installed, _ := fileio.FileExists(layout.VersionJar(v.ID))
			switch {
			case installed:
				fmt.Printf("%s (%s, installed)\n", v.ID, v.Kind)
			case v.Kind != core.KindRelease:
				fmt.Printf("%s (%s)\n", v.ID, v.Kind)
			default:
				fmt.Println(v.ID)
			}
		}
		fmt.Printf("Latest release: %s, latest snapshot: %s\n", catalog.Latest.Release, catalog.Latest.Snapshot)
	},
}

func init() {
	rootCmd.AddCommand(versionsCmd)

	versionsCmd.Flags().BoolP("snapshots", "s", false, "Include snapshots")
	_ = viper.BindPFlag("versions.snapshots", versionsCmd.Flags().Lookup("snapshots"))
	versionsCmd.Flags().Bool("old", false, "Include old beta and alpha versions")
	_ = viper.BindPFlag("versions.old", versionsCmd.Flags().Lookup("old"))
}
