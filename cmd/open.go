package cmd

import (
	"fmt"
	"os"

	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"

	"github.com/leocov-dev/launchwiz/internal/shared"
)

// openCmd represents the open command
var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open the game directory in your file browser",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		if err := os.MkdirAll(cfg.GameDirectory, os.ModePerm); err != nil {
			shared.Exitln(err)
		}
		fmt.Println("Opening game directory...")
		if err := open.Start(cfg.GameDirectory); err != nil {
			fmt.Println("Opening the directory failed, it is located at:")
			fmt.Println(cfg.GameDirectory)
		}
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
