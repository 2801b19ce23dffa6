package cli

import (
	"github.com/spf13/cobra"
)

var cardCmd = &cobra.Command{
	Use:   "card <card-id>",
	Short: "Display one card's grid with live probabilities",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().Card(cmd.Context(), args[0])
	},
}
