package aggregator

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"bingo-watch/internal/cache"
	"bingo-watch/internal/fetcher"
	"bingo-watch/internal/stats"
)

// DefaultBatchSize bounds the number of in-flight API requests per refresh:
// enough overlap to hide latency without tripping the API's rate limits.
const DefaultBatchSize = 10

// Refresher overlays live market data onto a MarketSet.
type Refresher struct {
	markets   fetcher.MarketFetcher
	snapshots cache.SnapshotStore
	logger    zerolog.Logger
	batchSize int
	now       func() time.Time
}

// NewRefresher wires the market fetcher and the session snapshot cache.
func NewRefresher(markets fetcher.MarketFetcher, snapshots cache.SnapshotStore, logger zerolog.Logger) *Refresher {
	return &Refresher{
		markets:   markets,
		snapshots: snapshots,
		logger:    logger.With().Str("component", "refresher").Logger(),
		batchSize: DefaultBatchSize,
		now:       time.Now,
	}
}

// Refresh fetches the live probability and bet history for every distinct
// market in the set, at most batchSize requests in flight. Each market fails
// in isolation: a dead fetch leaves that market on its static snapshot and
// never blocks the batch. The only returned error is context cancellation.
func (r *Refresher) Refresh(ctx context.Context, set *MarketSet) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.batchSize)

	for _, slug := range set.Slugs {
		snap := set.BySlug[slug]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r.refreshMarket(ctx, snap)
			return nil
		})
	}

	return g.Wait()
}

func (r *Refresher) refreshMarket(ctx context.Context, snap *MarketSnapshot) {
	live, err := r.markets.FetchMarket(ctx, snap.Slug)
	if err != nil {
		r.logger.Debug().Err(err).Str("slug", snap.Slug).Msg("live fetch failed, keeping static probability")
		return
	}

	snap.CurrentProb = live.Probability
	snap.IsResolved = live.IsResolved
	snap.Resolution = live.Resolution
	snap.HasLiveData = true
	if live.ID != "" {
		snap.ContractID = live.ID
	}

	timeline, ok := r.loadTimeline(ctx, snap)
	if !ok {
		return
	}

	s := stats.Compute24h(timeline, snap.EffectiveProb(), r.now())
	snap.Stats = &s
}

// loadTimeline serves the bet history from the session cache when fresh,
// refetching and re-caching otherwise.
func (r *Refresher) loadTimeline(ctx context.Context, snap *MarketSnapshot) ([]stats.BetPoint, bool) {
	if cached, hit, err := r.snapshots.Get(ctx, snap.Slug); err == nil && hit {
		return cached.Timeline, true
	} else if err != nil {
		r.logger.Debug().Err(err).Str("slug", snap.Slug).Msg("snapshot cache read failed")
	}

	if snap.ContractID == "" {
		return nil, false
	}

	timeline, err := r.markets.FetchBets(ctx, snap.ContractID)
	if err != nil {
		r.logger.Debug().Err(err).Str("slug", snap.Slug).Msg("bet history fetch failed")
		return nil, false
	}

	if err := r.snapshots.Put(ctx, snap.Slug, cache.Snapshot{Timeline: timeline, FetchedAt: r.now()}); err != nil {
		r.logger.Debug().Err(err).Str("slug", snap.Slug).Msg("snapshot cache write failed")
	}
	return timeline, true
}
