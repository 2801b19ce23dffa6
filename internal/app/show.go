package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"bingo-watch/internal/bingo"
	"bingo-watch/internal/sorting"
)

// Show prints the card leaderboard with live figures.
func (a *App) Show(ctx context.Context, opts ShowOptions) error {
	svc, closeSvc, err := a.newService(ctx, nil)
	if err != nil {
		return err
	}
	defer closeSvc()

	result, err := svc.RefreshOnce(ctx)
	if err != nil {
		return err
	}
	if len(result.Cards) == 0 {
		fmt.Fprintln(os.Stdout, "no cards found")
		return nil
	}

	sorter := sorting.NewCardSorter()
	if opts.SortColumn != "" {
		dir := sorting.Descending
		if opts.Ascending {
			dir = sorting.Ascending
		}
		sorter.Set(opts.SortColumn, dir)
	}
	sorter.Sort(result.Cards)

	cards := result.Cards
	if opts.Limit > 0 && len(cards) > opts.Limit {
		cards = cards[:opts.Limit]
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "User\tStatus\tWin%\tLive%\t24hΔ\tHigh\tLow\tSinceVisit\tPrice")

	for _, card := range cards {
		fmt.Fprintf(
			writer,
			"%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			sanitizeInline(card.UserHandle),
			card.Status,
			formatPct(card.WinProbability),
			formatPct(card.LiveWinProb),
			formatSignedPctPtr(card.Change24h),
			formatPctPtr(card.High24h),
			formatPctPtr(card.Low24h),
			formatDelta(card),
			card.PurchasePrice.StringFixed(0),
		)
	}

	writer.Flush()
	return nil
}

func formatPct(p float64) string {
	return fmt.Sprintf("%.1f", p*100)
}

func formatPctPtr(p *float64) string {
	if p == nil {
		return "-"
	}
	return formatPct(*p)
}

func formatSignedPctPtr(p *float64) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%+.1f", *p*100)
}

func formatDelta(card bingo.CardView) string {
	if card.Delta == nil || card.HoursSince == nil {
		return "-"
	}
	return fmt.Sprintf("%+.1f (%.0fh)", *card.Delta*100, *card.HoursSince)
}

func sanitizeInline(v string) string {
	cleaned := strings.ReplaceAll(v, "\n", " ")
	cleaned = strings.ReplaceAll(cleaned, "\r", " ")
	return cleaned
}
