package app

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"bingo-watch/internal/sorting"
	"bingo-watch/internal/storage"
)

// Markets prints the market movers table: every distinct market across all
// cards with its live probability and 24h movement.
func (a *App) Markets(ctx context.Context, opts MarketsOptions) error {
	svc, closeSvc, err := a.newService(ctx, nil)
	if err != nil {
		return err
	}
	defer closeSvc()

	result, err := svc.RefreshOnce(ctx)
	if err != nil {
		return err
	}

	rows := result.Markets
	if opts.ActiveOnly {
		active := rows[:0]
		for _, row := range rows {
			if row.HasActivity {
				active = append(active, row)
			}
		}
		rows = active
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stdout, "no markets found")
		return nil
	}

	sorter := sorting.NewMarketSorter()
	if opts.SortColumn != "" {
		dir := sorting.Descending
		if opts.Ascending {
			dir = sorting.Ascending
		}
		sorter.Set(opts.SortColumn, dir)
	}
	sorter.Sort(rows)

	if opts.Limit > 0 && len(rows) > opts.Limit {
		rows = rows[:opts.Limit]
	}

	showFull := a.displayPref(ctx, storage.PrefShowFullQuestions, "false") == "true"

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Market\tProb%\t24hΔ\tHigh\tLow\tCards\tStatus")

	for _, row := range rows {
		status := "live"
		switch {
		case row.IsResolved:
			status = "resolved " + row.Resolution
		case !row.HasLiveData:
			status = "no live data"
		}

		label := row.Slug
		if showFull && row.Question != "" {
			label = row.Question
		}

		fmt.Fprintf(
			writer,
			"%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			sanitizeInline(label),
			formatPct(row.CurrentProb),
			formatSignedPctPtr(row.Change24h),
			formatPctPtr(row.High24h),
			formatPctPtr(row.Low24h),
			row.CardCount,
			status,
		)
	}

	writer.Flush()
	return nil
}
