package fetcher

import (
	"context"

	"bingo-watch/internal/bingo"
	"bingo-watch/internal/stats"
)

// LiveMarket is a market's current state as reported by the prediction-market
// API.
type LiveMarket struct {
	Probability float64
	ID          string
	IsResolved  bool
	Resolution  string
}

// CardFeed retrieves the static card snapshots. Failures here are fatal to
// the caller's view; there is no fallback for the page-defining feeds.
type CardFeed interface {
	FetchIndex(ctx context.Context) ([]bingo.Card, error)
	FetchCard(ctx context.Context, cardID string) (bingo.Card, error)
}

// MarketFetcher retrieves live data for individual markets. Both calls are
// best-effort: callers degrade the affected market to its static snapshot on
// error.
type MarketFetcher interface {
	FetchMarket(ctx context.Context, slug string) (LiveMarket, error)
	FetchBets(ctx context.Context, contractID string) ([]stats.BetPoint, error)
}
