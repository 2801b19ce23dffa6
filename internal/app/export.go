package app

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"bingo-watch/internal/stats"
)

// Export renders one market's probability timeline as CSV and/or PNG.
func (a *App) Export(ctx context.Context, opts ExportOptions) error {
	if opts.Slug == "" {
		return errors.New("--slug is required")
	}
	if opts.CSVPath == "" && opts.PNGPath == "" {
		return errors.New("at least one of --csv or --png must be provided")
	}

	opts.MaxPoints = a.Config.ResolveMaxPoints(opts.MaxPoints)

	markets := a.newMarketFetcher()
	live, err := markets.FetchMarket(ctx, opts.Slug)
	if err != nil {
		return fmt.Errorf("fetch market %s: %w", opts.Slug, err)
	}

	timeline, err := markets.FetchBets(ctx, live.ID)
	if err != nil {
		return fmt.Errorf("fetch bet history %s: %w", opts.Slug, err)
	}
	if len(timeline) == 0 {
		a.Logger.Info().Str("slug", opts.Slug).Msg("no bet history to export")
		return nil
	}

	downsampled := downsampleTimeline(timeline, opts.MaxPoints)
	a.Logger.Info().Str("slug", opts.Slug).
		Int("total", len(timeline)).
		Int("exported", len(downsampled)).
		Msg("exporting bet history")

	if opts.CSVPath != "" {
		if err := writeTimelineCSV(opts.CSVPath, opts.Slug, downsampled); err != nil {
			return err
		}
	}

	if opts.PNGPath != "" {
		if err := writeTimelinePNG(opts.PNGPath, opts.Slug, downsampled, live.Probability); err != nil {
			return err
		}
	}

	return nil
}

func downsampleTimeline(points []stats.BetPoint, max int) []stats.BetPoint {
	if max <= 0 || len(points) <= max {
		return points
	}

	result := make([]stats.BetPoint, 0, max)
	step := float64(len(points)-1) / float64(max-1)
	for i := 0; i < max; i++ {
		idx := int(math.Round(step * float64(i)))
		if idx >= len(points) {
			idx = len(points) - 1
		}
		result = append(result, points[idx])
	}
	return result
}

func writeTimelineCSV(path, slug string, points []stats.BetPoint) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"time", "slug", "prob"}); err != nil {
		return err
	}

	for _, p := range points {
		record := []string{
			p.Time.UTC().Format(time.RFC3339),
			slug,
			fmt.Sprintf("%.6f", p.Prob),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return writer.Error()
}

func writeTimelinePNG(path, slug string, points []stats.BetPoint, currentProb float64) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	x := make([]time.Time, 0, len(points)+1)
	y := make([]float64, 0, len(points)+1)
	for _, p := range points {
		x = append(x, p.Time)
		y = append(y, p.Prob*100)
	}
	// anchor the series at the live value
	x = append(x, time.Now())
	y = append(y, currentProb*100)

	pctFormatter := func(v interface{}) string {
		return chart.FloatValueFormatterWithFormat(v, "%.0f%%")
	}
	graph := chart.Chart{
		Title:  slug,
		Width:  1280,
		Height: 720,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatter,
		},
		YAxis: chart.YAxis{
			Name:           "YES probability",
			ValueFormatter: pctFormatter,
			Range:          &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    slug,
				XValues: x,
				YValues: y,
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.PNG, file)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
