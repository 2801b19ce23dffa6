package bingo

// EstimateWinProbability returns the approximate probability that at least one
// line completes, given per-cell YES probabilities.
//
// Each line completes with probability equal to the product of its five cell
// probabilities; the overall win probability is 1 minus the product of every
// line's failure probability. Lines share cells, so treating them as
// independent overstates nothing in particular but is not exact. The
// approximation is intentional: every displayed figure derives from this exact
// formula, so it must not be "corrected".
func EstimateWinProbability(cellProbs [GridSize]float64) float64 {
	allFail := 1.0
	for _, line := range Lines {
		lineProb := 1.0
		for _, idx := range line.Indices {
			if idx == FreeCellIndex {
				continue
			}
			lineProb *= cellProbs[idx]
		}
		allFail *= 1 - lineProb
	}
	return 1 - allFail
}

// CellProbabilities extracts the 25-cell probability vector from a card's
// grid. Cards without a full grid get a zero vector with the free cell set.
func CellProbabilities(card Card) [GridSize]float64 {
	var probs [GridSize]float64
	probs[FreeCellIndex] = 1
	if !card.HasGrid() {
		return probs
	}
	for i, cell := range card.Grid {
		probs[i] = cell.EffectiveProb()
	}
	probs[FreeCellIndex] = 1
	return probs
}
