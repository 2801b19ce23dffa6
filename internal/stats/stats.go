// Package stats derives trailing-window statistics from a market's bet
// history timeline.
package stats

import "time"

// Window is the trailing period used for high/low/change figures.
const Window = 24 * time.Hour

// BetPoint is one probability observation from a market's bet history,
// timelines are ordered ascending by time.
type BetPoint struct {
	Time time.Time
	Prob float64
}

// TimeStats summarises a market's movement over the trailing window. Nil
// pointers mean the timeline was empty.
type TimeStats struct {
	Prob24hAgo  *float64
	High24h     *float64
	Low24h      *float64
	Change24h   *float64
	HasActivity bool
}

// Compute24h evaluates the timeline against the window [now-24h, now].
//
// The 24h-ago reference prefers the latest entry before the window; when the
// market has no bets that old it falls back to the earliest entry inside the
// window, which is also the oldest entry overall. The current probability is
// always included in the high/low range.
func Compute24h(timeline []BetPoint, currentProb float64, now time.Time) TimeStats {
	if len(timeline) == 0 {
		return TimeStats{}
	}

	windowStart := now.Add(-Window)

	var before, within []BetPoint
	for _, p := range timeline {
		if p.Time.Before(windowStart) {
			before = append(before, p)
		} else {
			within = append(within, p)
		}
	}

	var ago float64
	switch {
	case len(before) > 0:
		ago = before[len(before)-1].Prob
	default:
		ago = within[0].Prob
	}

	high := currentProb
	low := currentProb
	for _, p := range within {
		if p.Prob > high {
			high = p.Prob
		}
		if p.Prob < low {
			low = p.Prob
		}
	}

	change := currentProb - ago
	return TimeStats{
		Prob24hAgo:  &ago,
		High24h:     &high,
		Low24h:      &low,
		Change24h:   &change,
		HasActivity: len(within) > 0,
	}
}
