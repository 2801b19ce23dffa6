package baseline

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"bingo-watch/internal/bingo"
)

func TestSnapshotRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	tracker := NewTracker(store, zerolog.Nop())
	ctx := context.Background()

	cards := []bingo.Card{
		{CardID: "c1", WinProbability: 0.4},
		{CardID: "c2", WinProbability: 0.7},
	}
	if err := tracker.Snapshot(ctx, cards); err != nil {
		t.Fatalf("Snapshot 不应报错: %v", err)
	}

	entries, err := store.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries["c1"].WinProbability != 0.4 || entries["c2"].WinProbability != 0.7 {
		t.Fatalf("读写应一致: %+v", entries)
	}
}

func TestSnapshotOverwritesWholesale(t *testing.T) {
	store := NewMemoryStore()
	tracker := NewTracker(store, zerolog.Nop())
	ctx := context.Background()

	_ = tracker.Snapshot(ctx, []bingo.Card{{CardID: "old", WinProbability: 0.9}})
	_ = tracker.Snapshot(ctx, []bingo.Card{{CardID: "new", WinProbability: 0.1}})

	entries, _ := store.Load(ctx)
	if _, ok := entries["old"]; ok {
		t.Fatal("旧条目应被整体覆盖移除")
	}
	if len(entries) != 1 {
		t.Fatalf("应只剩新条目: %+v", entries)
	}
}

func TestDeltas(t *testing.T) {
	store := NewMemoryStore()
	tracker := NewTracker(store, zerolog.Nop())

	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tracker.now = func() time.Time { return t0 }
	_ = tracker.Snapshot(context.Background(), []bingo.Card{{CardID: "c1", WinProbability: 0.4}})

	tracker.now = func() time.Time { return t0.Add(2 * time.Hour) }
	views := []bingo.CardView{
		{Card: bingo.Card{CardID: "c1", WinProbability: 0.55}},
		{Card: bingo.Card{CardID: "unknown", WinProbability: 0.7}},
	}
	views = tracker.Deltas(context.Background(), views)

	if views[0].Delta == nil || math.Abs(*views[0].Delta-0.15) > 1e-12 {
		t.Fatalf("delta 应为 0.15: %+v", views[0].Delta)
	}
	if views[0].HoursSince == nil || math.Abs(*views[0].HoursSince-2) > 1e-9 {
		t.Fatalf("hoursSince 应为 2: %+v", views[0].HoursSince)
	}
	if views[1].Delta != nil || views[1].HoursSince != nil {
		t.Fatal("无 baseline 条目的卡应保持 nil")
	}
}

func TestBootstrapSavesOnce(t *testing.T) {
	store := NewMemoryStore()
	tracker := NewTracker(store, zerolog.Nop())
	ctx := context.Background()
	cards := []bingo.Card{{CardID: "c1", WinProbability: 0.4}}

	saved, err := tracker.Bootstrap(ctx, cards)
	if err != nil || !saved {
		t.Fatalf("首次 Bootstrap 应保存: saved=%v err=%v", saved, err)
	}

	cards[0].WinProbability = 0.9
	saved, err = tracker.Bootstrap(ctx, cards)
	if err != nil || saved {
		t.Fatalf("已有 baseline 时不应再保存: saved=%v err=%v", saved, err)
	}

	entries, _ := store.Load(ctx)
	if entries["c1"].WinProbability != 0.4 {
		t.Fatalf("baseline 应保持首次保存的值: %+v", entries)
	}
}

type failingStore struct{}

func (failingStore) Load(context.Context) (map[string]Entry, error) {
	return nil, errors.New("corrupt")
}
func (failingStore) Save(context.Context, map[string]Entry) error { return nil }

func TestDeltasDegradeOnReadFailure(t *testing.T) {
	tracker := NewTracker(failingStore{}, zerolog.Nop())
	views := []bingo.CardView{{Card: bingo.Card{CardID: "c1", WinProbability: 0.5}}}

	views = tracker.Deltas(context.Background(), views)
	if views[0].Delta != nil {
		t.Fatal("读失败应视为空 baseline, 不应报错或产生 delta")
	}
}
