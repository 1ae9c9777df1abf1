package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"odoscan.dev/pkg/odoscan/internal/controller"
	m "odoscan.dev/pkg/odoscan/internal/model"
)

var modulesFormatFlag string

// modulesCmd represents the modules command. It is built in init() so the
// depth flag default picks up the viper default registered by config.go.
var modulesCmd *cobra.Command

func newModulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modules",
		Short: "List discovered addon modules",
		Long: `Discover addon modules under the installation root and print the
inventory without analyzing logs or running tests.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := controller.ParseFormat(modulesFormatFlag)
			if err != nil {
				return err
			}

			depth := viper.GetInt(depthConfigKey)
			if cmd.Flags().Changed(depthFlagName) {
				depth, err = cmd.Flags().GetInt(depthFlagName)
				if err != nil {
					return err
				}
			}

			modules, err := workflow.Modules(
				cmd.Context(),
				m.Path(viper.GetString(rootConfigKey)),
				depth,
			)
			if err != nil {
				return err
			}

			return ui.DisplayModules(cmd.Context(), modules, format)
		},
	}

	cmd.Flags().StringVarP(&modulesFormatFlag, formatFlagName, "f", string(controller.FormatTable), "output format: table, json or yaml")
	cmd.Flags().IntP(depthFlagName, "d", viper.GetInt(depthConfigKey), "maximum directory depth searched for module manifests")

	return cmd
}

func init() {
	modulesCmd = newModulesCmd()
	rootCmd.AddCommand(modulesCmd)
}
