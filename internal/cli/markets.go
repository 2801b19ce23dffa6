package cli

import (
	"github.com/spf13/cobra"

	"bingo-watch/internal/app"
)

var (
	marketsSort   string
	marketsAsc    bool
	marketsLimit  int
	marketsActive bool
)

var marketsCmd = &cobra.Command{
	Use:   "markets",
	Short: "Display the market movers table across all cards",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.MarketsOptions{
			SortColumn: marketsSort,
			Ascending:  marketsAsc,
			Limit:      marketsLimit,
			ActiveOnly: marketsActive,
		}
		return getApp().Markets(cmd.Context(), opts)
	},
}

func init() {
	marketsCmd.Flags().StringVar(&marketsSort, "sort", "", "Sort column (change, prob, cards, slug, question)")
	marketsCmd.Flags().BoolVar(&marketsAsc, "asc", false, "Sort ascending instead of the column default")
	marketsCmd.Flags().IntVar(&marketsLimit, "limit", 20, "Limit the number of rows (0 = all)")
	marketsCmd.Flags().BoolVar(&marketsActive, "active-only", false, "Only show markets with bets in the last 24h")
}
