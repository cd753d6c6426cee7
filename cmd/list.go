package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/leocov-dev/launchwiz/fileio"
	"github.com/leocov-dev/launchwiz/internal/shared"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the installed versions and mods in the game directory",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		layout := fileio.NewLayout(cfg.GameDirectory)

		ids, err := fileio.InstalledVersions(layout)
		if err != nil {
			shared.Exitln(err)
		}
		if len(ids) == 0 {
			fmt.Println("No versions installed")
		} else {
			fmt.Println("Installed versions:")
			for _, id := range ids {
				fmt.Printf("  %s\n", id)
			}
		}

		if !viper.GetBool("list.mods") {
			return
		}
		mods, err := fileio.ListModJars(layout.ModsDir())
		if err != nil {
			shared.Exitln(err)
		}
		if len(mods) == 0 {
			fmt.Println("No mods installed")
			return
		}
		fmt.Println("Mods:")
		for _, mod := range mods {
			fmt.Printf("  %s\n", strings.TrimSuffix(mod, ".jar"))
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolP("mods", "m", false, "Also list the enabled mods")
	_ = viper.BindPFlag("list.mods", listCmd.Flags().Lookup("mods"))
}
