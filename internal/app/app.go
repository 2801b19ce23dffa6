package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"bingo-watch/internal/aggregator"
	"bingo-watch/internal/alerting"
	"bingo-watch/internal/baseline"
	"bingo-watch/internal/cache"
	"bingo-watch/internal/config"
	"bingo-watch/internal/fetcher"
	"bingo-watch/internal/scheduler"
	"bingo-watch/internal/service"
	"bingo-watch/internal/storage"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{Config: cfg, Logger: logger.With().Str("component", "app").Logger()}
}

func (a *App) newFeed() fetcher.CardFeed {
	return fetcher.NewStaticCardFeed(fetcher.CardFeedOptions{
		BaseURL:   a.Config.Feed.BaseURL,
		Timeout:   a.Config.Feed.RequestTimeout,
		UserAgent: a.Config.Feed.UserAgent,
	}, a.Logger)
}

func (a *App) newMarketFetcher() fetcher.MarketFetcher {
	return fetcher.NewManifold(fetcher.ManifoldOptions{
		BaseURL:      a.Config.Market.BaseURL,
		Timeout:      a.Config.Market.RequestTimeout,
		UserAgent:    a.Config.Market.UserAgent,
		BetPageLimit: a.Config.Market.BetPageLimit,
	}, a.Logger)
}

// newSnapshotStore selects the session cache backend: Redis when configured,
// in-process otherwise. The returned closer may be nil.
func (a *App) newSnapshotStore(ctx context.Context) (cache.SnapshotStore, func(), error) {
	if a.Config.Cache.RedisAddr == "" {
		return cache.NewMemoryStore(), nil, nil
	}

	store, err := cache.NewRedisStore(ctx, cache.RedisConfig{
		Addr:     a.Config.Cache.RedisAddr,
		Password: a.Config.Cache.RedisPassword,
		DB:       a.Config.Cache.RedisDB,
		PoolSize: a.Config.Cache.RedisPoolSize,
	})
	if err != nil {
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}

func (a *App) newNotifier() alerting.Notifier {
	if a.Config.Alerting.Telegram.Enabled {
		cfg := a.Config.Alerting.Telegram
		return alerting.NewTelegramNotifier(cfg.BotToken, cfg.ChatID, cfg.APIBase, 10*time.Second, a.Logger)
	}
	return nil
}

func (a *App) openStore(ctx context.Context) (*storage.Store, func(), error) {
	if a.Config.Database.DSN == "" {
		return nil, nil, nil
	}

	pool, err := storage.NewPool(ctx, a.Config.Database)
	if err != nil {
		return nil, nil, err
	}

	store := storage.NewStore(pool)
	closer := func() {
		store.Close()
	}
	return store, closer, nil
}

// newTracker builds the baseline tracker on Postgres when a DSN is
// configured, falling back to the in-process store.
func (a *App) newTracker(ctx context.Context) (*baseline.Tracker, func(), error) {
	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	if store == nil {
		a.Logger.Warn().Msg("database.dsn not configured; baseline kept in memory only")
		return baseline.NewTracker(baseline.NewMemoryStore(), a.Logger), nil, nil
	}
	return baseline.NewTracker(store, a.Logger), closeStore, nil
}

// newService wires a full watch service. The scheduler may be nil for
// one-shot commands.
func (a *App) newService(ctx context.Context, sched *scheduler.Scheduler) (*service.Service, func(), error) {
	snapshots, closeSnapshots, err := a.newSnapshotStore(ctx)
	if err != nil {
		return nil, nil, err
	}

	tracker, closeTracker, err := a.newTracker(ctx)
	if err != nil {
		if closeSnapshots != nil {
			closeSnapshots()
		}
		return nil, nil, err
	}

	refresher := aggregator.NewRefresher(a.newMarketFetcher(), snapshots, a.Logger)
	svc := service.New(a.Config, sched, a.newFeed(), refresher, tracker, a.newNotifier(), a.Logger)

	closer := func() {
		if closeTracker != nil {
			closeTracker()
		}
		if closeSnapshots != nil {
			closeSnapshots()
		}
	}
	return svc, closer, nil
}

// Run executes the long-running watch service.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sched := scheduler.New(scheduler.Options{
		Interval:     a.Config.Scheduler.Interval,
		AlignToStart: a.Config.Scheduler.AlignToBucket,
		StartupDelay: a.Config.Scheduler.StartupDelay,
	}, a.Logger)

	svc, closeSvc, err := a.newService(ctx, sched)
	if err != nil {
		return err
	}
	defer closeSvc()

	a.Logger.Info().Msg("starting watch service")
	err = svc.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		a.Logger.Error().Err(err).Msg("watch service terminated with error")
		return err
	}

	a.Logger.Info().Msg("watch service stopped")
	return nil
}

// ShowOptions configure the leaderboard command.
type ShowOptions struct {
	SortColumn string
	Ascending  bool
	Limit      int
}

// MarketsOptions configure the movers command.
type MarketsOptions struct {
	SortColumn string
	Ascending  bool
	Limit      int
	ActiveOnly bool
}

// ExportOptions hold parameters for exporting a market timeline.
type ExportOptions struct {
	Slug      string
	PNGPath   string
	CSVPath   string
	MaxPoints int
}

// SimulateOptions describe a synthetic market move.
type SimulateOptions struct {
	Slug    string
	OldProb float64
	NewProb float64
}
