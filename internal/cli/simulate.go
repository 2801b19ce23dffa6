package cli

import (
	"github.com/spf13/cobra"

	"bingo-watch/internal/app"
)

var (
	simulateSlug string
	simulateOld  float64
	simulateNew  float64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Send a synthetic movement alert through the configured channels",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.SimulateOptions{
			Slug:    simulateSlug,
			OldProb: simulateOld,
			NewProb: simulateNew,
		}
		return getApp().SimulateAlert(cmd.Context(), opts)
	},
}

func init() {
	simulateCmd.Flags().StringVar(&simulateSlug, "slug", "simulated-market", "Market slug for the synthetic alert")
	simulateCmd.Flags().Float64Var(&simulateOld, "old", 0.3, "Probability 24h ago")
	simulateCmd.Flags().Float64Var(&simulateNew, "new", 0.6, "Current probability")
}
