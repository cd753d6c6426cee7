package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// prepareCmd represents the prepare command
var prepareCmd = &cobra.Command{
	Use:     "prepare [version]",
	Short:   "Download and verify everything needed to launch a version, without launching it",
	Aliases: []string{"install"},
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		ctx, cancel := commandContext()
		defer cancel()

		version := versionFromArgs(ctx, cfg, args)

		reporter := newCliReporter()
		plan, err := newLauncher(reporter).Prepare(ctx, cfg, version)
		reporter.Wait()
		if err != nil {
			exitPipelineError(ctx, cfg, err)
		}
		fmt.Printf("Version %s is ready to launch (main class %s)\n", version, plan.MainClass)
	},
}

func init() {
	rootCmd.AddCommand(prepareCmd)
}
