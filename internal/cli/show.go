package cli

import (
	"github.com/spf13/cobra"

	"bingo-watch/internal/app"
)

var (
	showSort  string
	showAsc   bool
	showLimit int
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the card leaderboard with live win probabilities",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.ShowOptions{
			SortColumn: showSort,
			Ascending:  showAsc,
			Limit:      showLimit,
		}
		return getApp().Show(cmd.Context(), opts)
	},
}

func init() {
	showCmd.Flags().StringVar(&showSort, "sort", "", "Sort column (live, change, high, low, delta, price, user)")
	showCmd.Flags().BoolVar(&showAsc, "asc", false, "Sort ascending instead of the column default")
	showCmd.Flags().IntVar(&showLimit, "limit", 0, "Limit the number of rows (0 = all)")
}
