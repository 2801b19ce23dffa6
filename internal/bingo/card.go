package bingo

import (
	"time"

	"github.com/shopspring/decimal"
)

// GridSize is the number of cells on a card.
const GridSize = 25

// FreeCellIndex is the centre cell, always counted as resolved YES.
const FreeCellIndex = 12

// Status describes a card's lifecycle stage.
type Status string

const (
	StatusPendingFill Status = "pending_fill"
	StatusActive      Status = "active"
	StatusResolvedYes Status = "resolved_yes"
	StatusResolvedNo  Status = "resolved_no"
)

// Resolution values reported by the market API.
const (
	ResolutionYes = "YES"
	ResolutionNo  = "NO"
)

// Cell ties one grid position to a binary market. The free cell carries no
// market and has an empty Slug.
type Cell struct {
	Question   string  `json:"question"`
	Slug       string  `json:"slug"`
	URL        string  `json:"url,omitempty"`
	Resolved   *bool   `json:"resolved"`
	Prob       float64 `json:"prob"`
	ContractID string  `json:"contractId,omitempty"`
}

// IsFree reports whether the cell is the auto-complete centre cell.
func (c Cell) IsFree() bool {
	return c.Slug == ""
}

// EffectiveProb is the probability the cell contributes to a line: resolved
// cells pin to 0 or 1, the free cell is always 1.
func (c Cell) EffectiveProb() float64 {
	if c.IsFree() {
		return 1
	}
	if c.Resolved != nil {
		if *c.Resolved {
			return 1
		}
		return 0
	}
	return c.Prob
}

// Card is the immutable snapshot delivered by the static feed. Live fields
// derived at runtime live on CardView, never here.
type Card struct {
	CardID         string          `json:"cardId"`
	UserHandle     string          `json:"userHandle"`
	Status         Status          `json:"status"`
	Grid           []Cell          `json:"grid"`
	WinProbability float64         `json:"winProbability"`
	PurchasePrice  decimal.Decimal `json:"purchasePrice"`
	PurchaseProb   float64         `json:"purchaseProb"`
	TargetWinProb  float64         `json:"targetWinProb"`
	CreatedTime    time.Time       `json:"createdTime"`
}

// HasGrid reports whether the card carries a full 25-cell grid.
func (c Card) HasGrid() bool {
	return len(c.Grid) == GridSize
}

// CardView decorates a Card with transient live-data fields. Nil pointers mean
// the figure could not be derived (inactive card, no live data, no baseline).
type CardView struct {
	Card

	LiveWinProb   float64
	WinProb24hAgo *float64
	Change24h     *float64
	High24h       *float64
	Low24h        *float64

	// Baseline comparison, filled by the baseline tracker.
	Delta      *float64
	HoursSince *float64
}
