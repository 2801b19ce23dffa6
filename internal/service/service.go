package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"bingo-watch/internal/aggregator"
	"bingo-watch/internal/alerting"
	"bingo-watch/internal/baseline"
	"bingo-watch/internal/bingo"
	"bingo-watch/internal/config"
	"bingo-watch/internal/fetcher"
	"bingo-watch/internal/scheduler"
)

// RefreshResult is the merged output of one refresh cycle.
type RefreshResult struct {
	Cards         []bingo.CardView
	Markets       []aggregator.MarketRow
	BaselineSaved bool
	At            time.Time
}

// Service orchestrates fetching, reconciliation, baseline upkeep, and
// movement alerting.
type Service struct {
	scheduler *scheduler.Scheduler
	feed      fetcher.CardFeed
	refresher *aggregator.Refresher
	tracker   *baseline.Tracker
	notifier  alerting.Notifier
	logger    zerolog.Logger

	threshold float64
	cooldown  time.Duration
	channels  []string
	alertsOn  bool

	lastAlert map[string]time.Time
	now       func() time.Time
}

// New constructs the watch service.
func New(cfg *config.Config, sched *scheduler.Scheduler, feed fetcher.CardFeed, refresher *aggregator.Refresher, tracker *baseline.Tracker, notifier alerting.Notifier, logger zerolog.Logger) *Service {
	return &Service{
		scheduler: sched,
		feed:      feed,
		refresher: refresher,
		tracker:   tracker,
		notifier:  notifier,
		logger:    logger.With().Str("component", "service").Logger(),
		threshold: cfg.Alerting.Threshold,
		cooldown:  cfg.Alerting.Cooldown,
		channels:  cfg.Alerting.Channels,
		alertsOn:  cfg.Alerting.Enabled,
		lastAlert: make(map[string]time.Time),
		now:       time.Now,
	}
}

// Run begins the periodic watch loop.
func (s *Service) Run(ctx context.Context) error {
	if s.scheduler == nil {
		return fmt.Errorf("scheduler not configured")
	}
	return s.scheduler.Run(ctx, s.ProcessCycle)
}

// ProcessCycle 执行单个刷新周期。
func (s *Service) ProcessCycle(ctx context.Context, cycle time.Time) error {
	result, err := s.RefreshOnce(ctx)
	if err != nil {
		return err
	}

	s.logger.Info().Time("cycle", cycle).
		Int("cards", len(result.Cards)).
		Int("markets", len(result.Markets)).
		Bool("baseline_saved", result.BaselineSaved).
		Msg("refresh cycle complete")
	return nil
}

// RefreshOnce performs one full reconciliation pass. Only the index fetch can
// fail the pass; every per-market problem degrades to static data.
func (s *Service) RefreshOnce(ctx context.Context) (RefreshResult, error) {
	cards, err := s.feed.FetchIndex(ctx)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("fetch card index: %w", err)
	}

	set := aggregator.CollectUniqueMarkets(cards)
	if err := s.refresher.Refresh(ctx, set); err != nil {
		return RefreshResult{}, err
	}

	views := aggregator.ComputeCardStats(cards, set)

	saved := false
	if s.tracker != nil {
		saved, err = s.tracker.Bootstrap(ctx, cards)
		if err != nil {
			s.logger.Error().Err(err).Msg("baseline bootstrap failed")
		}
		views = s.tracker.Deltas(ctx, views)
	}

	rows := aggregator.MarketRows(set)
	s.dispatchAlerts(ctx, rows)

	return RefreshResult{
		Cards:         views,
		Markets:       rows,
		BaselineSaved: saved,
		At:            s.now(),
	}, nil
}

// SaveBaseline overwrites the baseline with the current card index.
func (s *Service) SaveBaseline(ctx context.Context) (int, error) {
	cards, err := s.feed.FetchIndex(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch card index: %w", err)
	}
	if err := s.tracker.Snapshot(ctx, cards); err != nil {
		return 0, err
	}
	return len(cards), nil
}

func (s *Service) dispatchAlerts(ctx context.Context, rows []aggregator.MarketRow) {
	if !s.alertsOn || s.notifier == nil || s.threshold <= 0 {
		return
	}

	now := s.now()
	for _, row := range rows {
		if row.Change24h == nil || !row.HasActivity {
			continue
		}
		change := *row.Change24h
		if change < s.threshold && change > -s.threshold {
			continue
		}
		if last, ok := s.lastAlert[row.Slug]; ok && now.Sub(last) < s.cooldown {
			continue
		}

		if err := s.AlertMove(ctx, row); err != nil {
			s.logger.Error().Err(err).Str("slug", row.Slug).Msg("failed to dispatch movement alert")
			continue
		}
		s.lastAlert[row.Slug] = now
	}
}

// AlertMove sends one movement notification for a market row.
func (s *Service) AlertMove(ctx context.Context, row aggregator.MarketRow) error {
	if s.notifier == nil {
		return fmt.Errorf("no notifier configured")
	}

	change := 0.0
	if row.Change24h != nil {
		change = *row.Change24h
	}
	old := row.CurrentProb - change
	if row.Prob24hAgo != nil {
		old = *row.Prob24hAgo
	}

	return s.notifier.Notify(ctx, alerting.Notification{
		Slug:      row.Slug,
		Question:  row.Question,
		OldProb:   old,
		NewProb:   row.CurrentProb,
		Change:    change,
		Threshold: s.threshold,
		Direction: classifyChange(change),
		CardCount: row.CardCount,
		Channels:  s.channels,
		At:        s.now(),
	})
}

func classifyChange(change float64) string {
	switch {
	case change > 0:
		return "up"
	case change < 0:
		return "down"
	default:
		return "flat"
	}
}
