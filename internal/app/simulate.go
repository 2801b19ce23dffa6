package app

import (
	"context"
	"errors"

	"bingo-watch/internal/aggregator"
)

// SimulateAlert 通过给定的新旧概率模拟一次市场异动告警。
func (a *App) SimulateAlert(ctx context.Context, opts SimulateOptions) error {
	if !a.Config.Alerting.Enabled {
		return errors.New("alerting 未启用")
	}

	svc, closeSvc, err := a.newService(ctx, nil)
	if err != nil {
		return err
	}
	defer closeSvc()

	change := opts.NewProb - opts.OldProb
	old := opts.OldProb
	row := aggregator.MarketRow{
		Slug:        opts.Slug,
		Question:    "(simulated movement)",
		CurrentProb: opts.NewProb,
		Prob24hAgo:  &old,
		Change24h:   &change,
		HasLiveData: true,
		HasActivity: true,
		CardCount:   1,
	}

	return svc.AlertMove(ctx, row)
}
