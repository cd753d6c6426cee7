package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/leocov-dev/launchwiz/core"
	"github.com/leocov-dev/launchwiz/internal/shared"
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify [version]",
	Short: "Check the downloaded files of an installed version without using the network",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		ctx, cancel := commandContext()
		defer cancel()

		l := newLauncher(core.NopReporter)
		report, err := l.Verify(ctx, cfg, args[0])
		if err != nil {
			var notFound *core.VersionNotFoundError
			if errors.As(err, &notFound) {
				shared.Exitf("%s is not installed; run launchwiz prepare %s first\n", args[0], args[0])
			}
			shared.Exitln(err)
		}

		if report.OK() {
			fmt.Printf("All %d files of %s are valid\n", report.Checked, args[0])
			return
		}
		for _, path := range report.Invalid {
			fmt.Printf("Missing or corrupt: %s\n", path)
		}
		fmt.Printf("%d of %d files need to be downloaded again\n", len(report.Invalid), report.Checked)

		if !viper.GetBool("verify.repair") {
			shared.Exitf("Run launchwiz verify --repair %s to fix them\n", args[0])
		}
		reporter := newCliReporter()
		l = newLauncher(reporter)
		_, _, err = l.Repair(ctx, cfg, args[0])
		reporter.Wait()
		if err != nil {
			exitPipelineError(ctx, cfg, err)
		}

		report, err = l.Verify(ctx, cfg, args[0])
		if err != nil {
			shared.Exitln(err)
		}
		if !report.OK() {
			shared.Exitf("%d files of %s could not be repaired\n", len(report.Invalid), args[0])
		}
		fmt.Printf("%s repaired\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().Bool("repair", false, "Download missing or corrupt files again")
	_ = viper.BindPFlag("verify.repair", verifyCmd.Flags().Lookup("repair"))
}
