package cli

import (
	"github.com/spf13/cobra"
)

var baselineCmd = &cobra.Command{
	Use:   "baseline",
	Short: "Manage the saved win-probability baseline",
}

var baselineSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Overwrite the baseline with the current card index",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().SaveBaseline(cmd.Context())
	},
}

var baselineShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show per-card changes since the saved baseline",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().ShowBaseline(cmd.Context())
	},
}

func init() {
	baselineCmd.AddCommand(baselineSaveCmd)
	baselineCmd.AddCommand(baselineShowCmd)
}
