package app

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"bingo-watch/internal/aggregator"
	"bingo-watch/internal/bingo"
)

// Card prints one card's grid with live probabilities overlaid.
func (a *App) Card(ctx context.Context, cardID string) error {
	card, err := a.newFeed().FetchCard(ctx, cardID)
	if err != nil {
		return err
	}

	snapshots, closeSnapshots, err := a.newSnapshotStore(ctx)
	if err != nil {
		return err
	}
	if closeSnapshots != nil {
		defer closeSnapshots()
	}

	set := aggregator.CollectUniqueMarkets([]bingo.Card{card})
	refresher := aggregator.NewRefresher(a.newMarketFetcher(), snapshots, a.Logger)
	if err := refresher.Refresh(ctx, set); err != nil {
		return err
	}

	views := aggregator.ComputeCardStats([]bingo.Card{card}, set)
	view := views[0]

	fmt.Fprintf(os.Stdout, "Card %s (@%s) status=%s created=%s\n",
		card.CardID, card.UserHandle, card.Status, card.CreatedTime.UTC().Format(time.RFC3339))
	fmt.Fprintf(os.Stdout, "Win probability: stored %s%%, live %s%%",
		formatPct(card.WinProbability), formatPct(view.LiveWinProb))
	if view.Change24h != nil {
		fmt.Fprintf(os.Stdout, ", 24h %s (range %s-%s)",
			formatSignedPctPtr(view.Change24h), formatPctPtr(view.Low24h), formatPctPtr(view.High24h))
	}
	fmt.Fprintln(os.Stdout)

	if !card.HasGrid() {
		fmt.Fprintln(os.Stdout, "grid not filled yet")
		return nil
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "#\tMarket\tProb%\tState")
	for i, cell := range card.Grid {
		if cell.IsFree() {
			fmt.Fprintf(writer, "%d\t(free)\t100.0\tfree\n", i)
			continue
		}

		state := "open"
		if cell.Resolved != nil {
			if *cell.Resolved {
				state = "YES"
			} else {
				state = "NO"
			}
		} else if snap, ok := set.BySlug[cell.Slug]; ok && !snap.HasLiveData {
			state = "no live data"
		}

		prob := cell.Prob
		if snap, ok := set.BySlug[cell.Slug]; ok {
			prob = snap.EffectiveProb()
		}

		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\n", i, sanitizeInline(cell.Slug), formatPct(prob), state)
	}
	writer.Flush()
	return nil
}
