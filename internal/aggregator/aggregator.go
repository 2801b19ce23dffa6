// Package aggregator merges static card snapshots with live market data into
// per-card and per-market statistics.
package aggregator

import (
	"bingo-watch/internal/bingo"
	"bingo-watch/internal/stats"
)

// MarketSnapshot is the merged view of one distinct market across all cards
// that reference it.
type MarketSnapshot struct {
	Slug        string
	Question    string
	ContractID  string
	CardIDs     []string
	StaticProb  float64
	CurrentProb float64
	IsResolved  bool
	Resolution  string
	HasLiveData bool
	Stats       *stats.TimeStats
}

// EffectiveProb is the probability a referencing cell should use: live when
// available, pinned by a live resolution, otherwise the static snapshot.
func (m *MarketSnapshot) EffectiveProb() float64 {
	if !m.HasLiveData {
		return m.StaticProb
	}
	if m.IsResolved {
		switch m.Resolution {
		case bingo.ResolutionYes:
			return 1
		case bingo.ResolutionNo:
			return 0
		}
	}
	return m.CurrentProb
}

// MarketSet holds the deduplicated markets with deterministic
// first-appearance order.
type MarketSet struct {
	BySlug map[string]*MarketSnapshot
	Slugs  []string
}

// CollectUniqueMarkets walks every non-free cell of every card and builds one
// MarketSnapshot per distinct slug. A market shared by N cards appears once,
// with each referencing card id recorded in first-appearance order and no
// duplicates even if a card repeats a slug.
func CollectUniqueMarkets(cards []bingo.Card) *MarketSet {
	set := &MarketSet{BySlug: make(map[string]*MarketSnapshot)}

	for _, card := range cards {
		for _, cell := range card.Grid {
			if cell.IsFree() {
				continue
			}

			snap, ok := set.BySlug[cell.Slug]
			if !ok {
				snap = &MarketSnapshot{
					Slug:        cell.Slug,
					Question:    cell.Question,
					ContractID:  cell.ContractID,
					StaticProb:  cell.Prob,
					CurrentProb: cell.Prob,
				}
				set.BySlug[cell.Slug] = snap
				set.Slugs = append(set.Slugs, cell.Slug)
			}
			if snap.ContractID == "" {
				snap.ContractID = cell.ContractID
			}

			if !containsString(snap.CardIDs, card.CardID) {
				snap.CardIDs = append(snap.CardIDs, card.CardID)
			}
		}
	}

	return set
}

// ComputeCardStats decorates every card with live-derived figures. Only
// active cards with a populated grid get live derivation; all other cards
// pass through with the stored win probability and nil stats.
func ComputeCardStats(cards []bingo.Card, markets *MarketSet) []bingo.CardView {
	views := make([]bingo.CardView, 0, len(cards))

	for _, card := range cards {
		view := bingo.CardView{Card: card, LiveWinProb: card.WinProbability}
		if card.Status != bingo.StatusActive || !card.HasGrid() {
			views = append(views, view)
			continue
		}

		live := bingo.CellProbabilities(card)
		ago, high, low := live, live, live

		for i, cell := range card.Grid {
			if i == bingo.FreeCellIndex || cell.IsFree() || cell.Resolved != nil {
				continue
			}
			snap, ok := markets.BySlug[cell.Slug]
			if !ok {
				continue
			}

			p := snap.EffectiveProb()
			live[i], ago[i], high[i], low[i] = p, p, p, p

			if snap.Stats == nil {
				continue
			}
			if snap.Stats.Prob24hAgo != nil {
				ago[i] = *snap.Stats.Prob24hAgo
			}
			if snap.Stats.High24h != nil {
				high[i] = *snap.Stats.High24h
			}
			if snap.Stats.Low24h != nil {
				low[i] = *snap.Stats.Low24h
			}
		}

		view.LiveWinProb = bingo.EstimateWinProbability(live)
		agoWP := bingo.EstimateWinProbability(ago)
		highWP := bingo.EstimateWinProbability(high)
		lowWP := bingo.EstimateWinProbability(low)
		change := view.LiveWinProb - agoWP

		view.WinProb24hAgo = &agoWP
		view.High24h = &highWP
		view.Low24h = &lowWP
		view.Change24h = &change

		views = append(views, view)
	}

	return views
}

// MarketRow is the per-market aggregate consumed by the movers table and the
// activity feed.
type MarketRow struct {
	Slug        string
	Question    string
	CurrentProb float64
	Prob24hAgo  *float64
	Change24h   *float64
	High24h     *float64
	Low24h      *float64
	HasLiveData bool
	HasActivity bool
	IsResolved  bool
	Resolution  string
	CardCount   int
	CardIDs     []string
}

// MarketRows flattens the market set into rows in first-appearance order.
func MarketRows(markets *MarketSet) []MarketRow {
	rows := make([]MarketRow, 0, len(markets.Slugs))
	for _, slug := range markets.Slugs {
		snap := markets.BySlug[slug]
		row := MarketRow{
			Slug:        snap.Slug,
			Question:    snap.Question,
			CurrentProb: snap.EffectiveProb(),
			HasLiveData: snap.HasLiveData,
			IsResolved:  snap.IsResolved,
			Resolution:  snap.Resolution,
			CardCount:   len(snap.CardIDs),
			CardIDs:     snap.CardIDs,
		}
		if snap.Stats != nil {
			row.Prob24hAgo = snap.Stats.Prob24hAgo
			row.Change24h = snap.Stats.Change24h
			row.High24h = snap.Stats.High24h
			row.Low24h = snap.Stats.Low24h
			row.HasActivity = snap.Stats.HasActivity
		}
		rows = append(rows, row)
	}
	return rows
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
