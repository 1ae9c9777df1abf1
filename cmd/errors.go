package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	m "odoscan.dev/pkg/odoscan/internal/model"
)

// errorsCmd represents the errors command.
var errorsCmd = newErrorsCmd()

func newErrorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "errors",
		Short: "Show the error-frequency table for the server log",
		Long: `Analyze the configured server log and print how often each distinct
error line occurred, without discovering modules or running tests.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tally, err := workflow.ErrorTally(cmd.Context(), m.Path(viper.GetString(logFileConfigKey)))
			if err != nil {
				return err
			}

			return ui.DisplayErrorPatterns(cmd.Context(), tally)
		},
	}
}

func init() {
	rootCmd.AddCommand(errorsCmd)
}
