package cli

import (
	"github.com/spf13/cobra"

	"bingo-watch/internal/app"
)

var (
	exportSlug      string
	exportPNG       string
	exportCSV       string
	exportMaxPoints int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export one market's probability timeline as CSV and/or PNG",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.ExportOptions{
			Slug:      exportSlug,
			PNGPath:   exportPNG,
			CSVPath:   exportCSV,
			MaxPoints: exportMaxPoints,
		}
		return getApp().Export(cmd.Context(), opts)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportSlug, "slug", "", "Market slug to export")
	exportCmd.Flags().StringVar(&exportPNG, "png", "", "Write a PNG chart to this path")
	exportCmd.Flags().StringVar(&exportCSV, "csv", "", "Write a CSV file to this path")
	exportCmd.Flags().IntVar(&exportMaxPoints, "max-points", 0, "Maximum data points (0 = config default)")
	_ = exportCmd.MarkFlagRequired("slug")
}
