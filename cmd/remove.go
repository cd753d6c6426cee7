package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leocov-dev/launchwiz/fileio"
	"github.com/leocov-dev/launchwiz/internal/cmdshared"
	"github.com/leocov-dev/launchwiz/internal/shared"
)

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:     "remove [version]",
	Short:   "Remove an installed version and its mod loader profiles; shared libraries and assets are kept",
	Aliases: []string{"delete", "uninstall", "rm"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		layout := fileio.NewLayout(cfg.GameDirectory)

		if !cmdshared.PromptYesNo(fmt.Sprintf("Remove %s from %s? [Y/n] ", args[0], cfg.GameDirectory), true) {
			fmt.Println("Cancelled!")
			return
		}

		removed, err := fileio.RemoveVersion(layout, args[0])
		if err != nil {
			shared.Exitf("Failed to remove %s: %v\n", args[0], err)
		}
		if len(removed) == 0 {
			shared.Exitf("%s is not installed\n", args[0])
		}
		for _, name := range removed {
			fmt.Printf("Removed %s\n", name)
		}
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
