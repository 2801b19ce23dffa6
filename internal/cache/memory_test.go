package cache

import (
	"context"
	"testing"
	"time"

	"bingo-watch/internal/stats"
)

func TestMemoryStoreMiss(t *testing.T) {
	store := NewMemoryStore()
	if _, ok, err := store.Get(context.Background(), "absent"); err != nil || ok {
		t.Fatalf("未写入的 key 应 miss: ok=%v err=%v", ok, err)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	snap := Snapshot{
		Timeline:  []stats.BetPoint{{Time: time.Now(), Prob: 0.4}},
		FetchedAt: time.Now(),
	}
	if err := store.Put(ctx, "market-a", snap); err != nil {
		t.Fatalf("Put 不应报错: %v", err)
	}

	got, ok, err := store.Get(ctx, "market-a")
	if err != nil || !ok {
		t.Fatalf("刚写入的 key 应命中: ok=%v err=%v", ok, err)
	}
	if len(got.Timeline) != 1 || got.Timeline[0].Prob != 0.4 {
		t.Fatalf("timeline 不匹配: %+v", got.Timeline)
	}
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }

	if err := store.Put(ctx, "market-a", Snapshot{FetchedAt: base}); err != nil {
		t.Fatal(err)
	}

	store.now = func() time.Time { return base.Add(TTL - time.Second) }
	if _, ok, _ := store.Get(ctx, "market-a"); !ok {
		t.Fatal("TTL 内应命中")
	}

	store.now = func() time.Time { return base.Add(TTL) }
	if _, ok, _ := store.Get(ctx, "market-a"); ok {
		t.Fatal("到达 TTL 应视为 miss")
	}
}
