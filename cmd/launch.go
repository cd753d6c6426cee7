package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// launchCmd represents the launch command
var launchCmd = &cobra.Command{
	Use:     "launch [version]",
	Short:   "Prepare and launch a game version",
	Long:    "Prepare and launch a game version. With no version, a version is picked from a menu (or the latest release is used in non-interactive mode).",
	Aliases: []string{"play", "run"},
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		ctx, cancel := commandContext()
		defer cancel()

		version := versionFromArgs(ctx, cfg, args)

		reporter := newCliReporter()
		l := newLauncher(reporter)

		if viper.GetBool("launch.dry-run") {
			plan, err := l.Prepare(ctx, cfg, version)
			reporter.Wait()
			if err != nil {
				exitPipelineError(ctx, cfg, err)
			}
			fmt.Println(plan.CommandLine())
			return
		}

		wait := viper.GetBool("launch.wait")
		if wait {
			l.Composer.Stdout = os.Stdout
			l.Composer.Stderr = os.Stderr
		}

		_, proc, err := l.Run(ctx, cfg, version)
		reporter.Wait()
		if err != nil {
			exitPipelineError(ctx, cfg, err)
		}
		fmt.Printf("Game started (pid %d)\n", proc.Pid)

		if wait {
			state, err := proc.Wait()
			if err != nil {
				fmt.Printf("Failed to wait for the game: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Game exited: %s\n", state)
			os.Exit(state.ExitCode())
		}
		_ = proc.Release()
	},
}

func init() {
	rootCmd.AddCommand(launchCmd)

	launchCmd.Flags().Bool("dry-run", false, "Prepare the version and print the launch command instead of running it")
	_ = viper.BindPFlag("launch.dry-run", launchCmd.Flags().Lookup("dry-run"))
	launchCmd.Flags().BoolP("wait", "w", false, "Stay attached to the game, showing its output")
	_ = viper.BindPFlag("launch.wait", launchCmd.Flags().Lookup("wait"))
}
