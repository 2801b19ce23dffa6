package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"bingo-watch/internal/aggregator"
	"bingo-watch/internal/alerting"
	"bingo-watch/internal/baseline"
	"bingo-watch/internal/bingo"
	"bingo-watch/internal/cache"
	"bingo-watch/internal/config"
	"bingo-watch/internal/fetcher"
	"bingo-watch/internal/stats"
)

type fakeFeed struct {
	cards []bingo.Card
	err   error
}

func (f *fakeFeed) FetchIndex(context.Context) ([]bingo.Card, error) {
	return f.cards, f.err
}

func (f *fakeFeed) FetchCard(_ context.Context, id string) (bingo.Card, error) {
	for _, c := range f.cards {
		if c.CardID == id {
			return c, nil
		}
	}
	return bingo.Card{}, errors.New("not found")
}

type fakeMarkets struct {
	live map[string]fetcher.LiveMarket
	bets map[string][]stats.BetPoint
}

func (f *fakeMarkets) FetchMarket(_ context.Context, slug string) (fetcher.LiveMarket, error) {
	m, ok := f.live[slug]
	if !ok {
		return fetcher.LiveMarket{}, errors.New("down")
	}
	return m, nil
}

func (f *fakeMarkets) FetchBets(_ context.Context, contractID string) ([]stats.BetPoint, error) {
	return f.bets[contractID], nil
}

type recordingNotifier struct {
	mu    sync.Mutex
	notes []alerting.Notification
}

func (r *recordingNotifier) Notify(_ context.Context, note alerting.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, note)
	return nil
}

func activeCard(id, slug string) bingo.Card {
	grid := make([]bingo.Cell, bingo.GridSize)
	for i := range grid {
		if i == bingo.FreeCellIndex {
			continue
		}
		grid[i] = bingo.Cell{Slug: slug, Prob: 0.5, ContractID: "ct-" + slug}
	}
	return bingo.Card{CardID: id, Status: bingo.StatusActive, Grid: grid, WinProbability: 0.5}
}

func testConfig() *config.Config {
	return &config.Config{
		Alerting: config.AlertingConfig{
			Enabled:   true,
			Threshold: 0.1,
			Cooldown:  30 * time.Minute,
			Channels:  []string{"telegram"},
		},
	}
}

func newTestService(feed *fakeFeed, markets *fakeMarkets, notifier alerting.Notifier) *Service {
	refresher := aggregator.NewRefresher(markets, cache.NewMemoryStore(), zerolog.Nop())
	tracker := baseline.NewTracker(baseline.NewMemoryStore(), zerolog.Nop())
	return New(testConfig(), nil, feed, refresher, tracker, notifier, zerolog.Nop())
}

func TestRefreshOnceIndexFailureIsFatal(t *testing.T) {
	svc := newTestService(&fakeFeed{err: errors.New("offline")}, &fakeMarkets{}, nil)
	if _, err := svc.RefreshOnce(context.Background()); err == nil {
		t.Fatal("index 拉取失败应使整个刷新失败")
	}
}

func TestRefreshOnceDecoratesCards(t *testing.T) {
	feed := &fakeFeed{cards: []bingo.Card{activeCard("c1", "m")}}
	markets := &fakeMarkets{
		live: map[string]fetcher.LiveMarket{"m": {Probability: 0.8, ID: "ct-m"}},
		bets: map[string][]stats.BetPoint{"ct-m": {{Time: time.Now().Add(-time.Hour), Prob: 0.6}}},
	}
	svc := newTestService(feed, markets, nil)

	result, err := svc.RefreshOnce(context.Background())
	if err != nil {
		t.Fatalf("RefreshOnce 不应报错: %v", err)
	}

	if len(result.Cards) != 1 || result.Cards[0].Change24h == nil {
		t.Fatalf("活跃卡应被装饰: %+v", result.Cards)
	}
	if len(result.Markets) != 1 || !result.Markets[0].HasLiveData {
		t.Fatalf("市场行应带 live 数据: %+v", result.Markets)
	}
	if !result.BaselineSaved {
		t.Fatal("首次刷新应自动保存 baseline")
	}

	// second pass must not save again
	result, err = svc.RefreshOnce(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if result.BaselineSaved {
		t.Fatal("已有 baseline 时不应再自动保存")
	}
}

func TestDispatchAlertsThresholdAndCooldown(t *testing.T) {
	feed := &fakeFeed{cards: []bingo.Card{activeCard("c1", "mover"), activeCard("c2", "sleeper")}}
	markets := &fakeMarkets{
		live: map[string]fetcher.LiveMarket{
			"mover":   {Probability: 0.8, ID: "ct-mover"},
			"sleeper": {Probability: 0.51, ID: "ct-sleeper"},
		},
		bets: map[string][]stats.BetPoint{
			"ct-mover":   {{Time: time.Now().Add(-2 * time.Hour), Prob: 0.4}},
			"ct-sleeper": {{Time: time.Now().Add(-2 * time.Hour), Prob: 0.5}},
		},
	}
	notifier := &recordingNotifier{}
	svc := newTestService(feed, markets, notifier)

	if _, err := svc.RefreshOnce(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(notifier.notes) != 1 || notifier.notes[0].Slug != "mover" {
		t.Fatalf("只有超过阈值的市场应触发告警: %+v", notifier.notes)
	}
	if notifier.notes[0].Direction != "up" {
		t.Fatalf("方向应为 up: %s", notifier.notes[0].Direction)
	}

	// cooldown suppresses the repeat alert
	if _, err := svc.RefreshOnce(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(notifier.notes) != 1 {
		t.Fatalf("冷却期内不应重复告警: %d 条", len(notifier.notes))
	}
}
