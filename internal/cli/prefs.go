package cli

import (
	"github.com/spf13/cobra"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Manage persisted display preferences",
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <name> <value>",
	Short: "Persist a display preference flag",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().SetDisplayPref(cmd.Context(), args[0], args[1])
	},
}

var prefsGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Print a display preference flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().GetDisplayPref(cmd.Context(), args[0])
	},
}

func init() {
	prefsCmd.AddCommand(prefsSetCmd)
	prefsCmd.AddCommand(prefsGetCmd)
}
