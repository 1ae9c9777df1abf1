// Package cmd provides the root command and CLI setup for odoscan.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"odoscan.dev/pkg/odoscan/internal/adapter"
	"odoscan.dev/pkg/odoscan/internal/controller"
	"odoscan.dev/pkg/odoscan/internal/domain"
)

var fsAdapter adapter.ModuleFSAdapter
var testAdapter adapter.TestRunnerAdapter
var reportStore adapter.ReportStore
var moduleDiscovery domain.Discovery
var logAnalyzer domain.LogAnalyzer
var orchestrator domain.Orchestrator
var workflow domain.Workflow
var ui controller.UI

// reportOutputFlag is a root-level flag shared by commands that read/write
// the report.
var reportOutputFlag string

// installRootFlag points at the Odoo installation to scan.
var installRootFlag string

// logFileFlag points at the server log to analyze.
var logFileFlag string

// verboseFlag switches file logging to debug level.
var verboseFlag bool

func init() {
	// Flags are configured here rather than in the rootCmd initializer so
	// the viper defaults from config.go are in place first.
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalModuleFSAdapter()
	testAdapter = adapter.NewLocalTestRunnerAdapter()
	reportStore = adapter.NewJSONReportStore()
	moduleDiscovery = domain.NewDiscovery(fsAdapter)
	logAnalyzer = domain.NewLogAnalyzer()
	orchestrator = domain.NewOrchestrator(fsAdapter, testAdapter, ui)
	workflow = domain.NewWorkflow(moduleDiscovery, logAnalyzer, orchestrator, reportStore, ui)
}

const rootLongDescription = `Odoscan inspects an Odoo installation: it discovers addon modules through
their manifest descriptors, classifies server log lines into error and
scheduled-task events, optionally runs each module's unit test suite, and
writes everything into a single JSON report.`

const scanLongDescription = `Run the full pipeline for the configured installation root and server log:

  1. discover addon modules (bounded-depth manifest search)
  2. classify log lines into error and cron events
  3. run each module's test suite on a bounded worker pool
  4. write the consolidated JSON report`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "odoscan",
		Short: "Odoo installation and log analyzer",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger("", viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

// newRootCmd builds a fully configured root command. The package-level
// rootCmd gets its flags from init() instead, after config.go has
// registered the viper defaults the flag help relies on.
func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportOutputFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output path for the JSON analysis report",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().
		StringVarP(
			&installRootFlag, rootFlagName, "r",
			viper.GetString(rootConfigKey),
			"Odoo installation root to scan for modules",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(rootFlagName), rootConfigKey)

	cmd.PersistentFlags().
		StringVarP(
			&logFileFlag, logFileFlagName, "l",
			viper.GetString(logFileConfigKey),
			"Odoo server log file to analyze",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFileConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "enable debug logging")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values
// feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
