package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"odoscan.dev/pkg/odoscan/internal/domain"
	m "odoscan.dev/pkg/odoscan/internal/model"
)

var scanDepthFlag int
var scanParallelFlag int
var scanSkipTestsFlag bool
var scanSkipLogFlag bool

// scanCmd represents the scan command. It is built in init() so the flag
// defaults pick up the viper defaults registered by config.go.
var scanCmd *cobra.Command

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run the full analysis and write the JSON report",
		Long:  scanLongDescription,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.Scan(cmd.Context(), domain.ScanArgs{
				Root:        m.Path(viper.GetString(rootConfigKey)),
				LogPath:     m.Path(viper.GetString(logFileConfigKey)),
				Output:      m.Path(viper.GetString(outputFlagName)),
				Depth:       viper.GetInt(depthConfigKey),
				Threads:     viper.GetInt(parallelConfigKey),
				TestTimeout: viper.GetDuration(testTimeoutConfigKey),
				SkipTests:   scanSkipTestsFlag,
				SkipLog:     scanSkipLogFlag,
			})
		},
	}

	configureScanFlags(cmd)

	return cmd
}

func init() {
	scanCmd = newScanCmd()
	rootCmd.AddCommand(scanCmd)
}

func configureScanFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&scanDepthFlag, depthFlagName, "d", viper.GetInt(depthConfigKey), "maximum directory depth searched for module manifests")
	bindFlagToConfig(cmd.Flags().Lookup(depthFlagName), depthConfigKey)

	cmd.Flags().IntVarP(&scanParallelFlag, parallelFlagName, "p", viper.GetInt(parallelConfigKey), "number of parallel workers for test execution")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), parallelConfigKey)

	cmd.Flags().Duration(testTimeoutFlagName, viper.GetDuration(testTimeoutConfigKey), "timeout for one module's test suite")
	bindFlagToConfig(cmd.Flags().Lookup(testTimeoutFlagName), testTimeoutConfigKey)

	cmd.Flags().BoolVar(&scanSkipTestsFlag, skipTestsFlagName, false, "skip module test execution")
	cmd.Flags().BoolVar(&scanSkipLogFlag, skipLogFlagName, false, "skip server log analysis")
}
