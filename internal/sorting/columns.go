package sorting

import (
	"bingo-watch/internal/aggregator"
	"bingo-watch/internal/bingo"
)

// Column names shared by the CLI and the sorters.
const (
	ColUser     = "user"
	ColLiveProb = "live"
	ColChange   = "change"
	ColHigh     = "high"
	ColLow      = "low"
	ColDelta    = "delta"
	ColPrice    = "price"

	ColSlug     = "slug"
	ColProb     = "prob"
	ColCards    = "cards"
	ColQuestion = "question"
)

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// NewCardSorter builds the leaderboard sorter. Live win probability is the
// initial ordering, best first.
func NewCardSorter() *Sorter[bingo.CardView] {
	return NewSorter(
		Numeric(ColLiveProb, func(v bingo.CardView) float64 { return v.LiveWinProb }),
		Numeric(ColChange, func(v bingo.CardView) float64 { return deref(v.Change24h) }),
		Numeric(ColHigh, func(v bingo.CardView) float64 { return deref(v.High24h) }),
		Numeric(ColLow, func(v bingo.CardView) float64 { return deref(v.Low24h) }),
		Numeric(ColDelta, func(v bingo.CardView) float64 { return deref(v.Delta) }),
		Numeric(ColPrice, func(v bingo.CardView) float64 { return v.PurchasePrice.InexactFloat64() }),
		Text(ColUser, func(v bingo.CardView) string { return v.UserHandle }),
	)
}

// NewMarketSorter builds the movers sorter, biggest absolute 24h change
// first.
func NewMarketSorter() *Sorter[aggregator.MarketRow] {
	return NewSorter(
		Numeric(ColChange, func(r aggregator.MarketRow) float64 { return abs(deref(r.Change24h)) }),
		Numeric(ColProb, func(r aggregator.MarketRow) float64 { return r.CurrentProb }),
		Numeric(ColCards, func(r aggregator.MarketRow) float64 { return float64(r.CardCount) }),
		Text(ColSlug, func(r aggregator.MarketRow) string { return r.Slug }),
		Text(ColQuestion, func(r aggregator.MarketRow) string { return r.Question }),
	)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
