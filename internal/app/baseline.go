package app

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"bingo-watch/internal/sorting"
)

// SaveBaseline overwrites the stored baseline with the current card index.
func (a *App) SaveBaseline(ctx context.Context) error {
	svc, closeSvc, err := a.newService(ctx, nil)
	if err != nil {
		return err
	}
	defer closeSvc()

	count, err := svc.SaveBaseline(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "baseline saved for %d cards\n", count)
	return nil
}

// ShowBaseline prints per-card changes since the saved baseline.
func (a *App) ShowBaseline(ctx context.Context) error {
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
	sorter.Set(sorting.ColDelta, sorting.Descending)
	sorter.Sort(result.Cards)

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "User\tWin%\tSinceVisit")
	for _, card := range result.Cards {
		fmt.Fprintf(writer, "%s\t%s\t%s\n",
			sanitizeInline(card.UserHandle),
			formatPct(card.WinProbability),
			formatDelta(card),
		)
	}
	writer.Flush()

	if result.BaselineSaved {
		fmt.Fprintln(os.Stdout, "no previous baseline existed; one was saved just now")
	}
	return nil
}
