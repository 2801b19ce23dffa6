package stats

import (
	"math"
	"testing"
	"time"
)

func TestCompute24hEmptyTimeline(t *testing.T) {
	s := Compute24h(nil, 0.5, time.Now())
	if s.HasActivity {
		t.Fatal("空 timeline 不应有 activity")
	}
	if s.Prob24hAgo != nil || s.High24h != nil || s.Low24h != nil || s.Change24h != nil {
		t.Fatalf("空 timeline 所有数值应为 nil: %+v", s)
	}
}

func TestCompute24hSparseTimeline(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	timeline := []BetPoint{
		{Time: now.Add(-30 * time.Hour), Prob: 0.3},
		{Time: now.Add(-10 * time.Hour), Prob: 0.5},
	}

	s := Compute24h(timeline, 0.6, now)
	if !s.HasActivity {
		t.Fatal("窗口内有记录时应有 activity")
	}
	if *s.Prob24hAgo != 0.3 {
		t.Fatalf("24h-ago 应取窗口前最后一条 0.3, 实际 %v", *s.Prob24hAgo)
	}
	if *s.High24h != 0.6 {
		t.Fatalf("high 应为 max(0.5, 0.6)=0.6, 实际 %v", *s.High24h)
	}
	if *s.Low24h != 0.5 {
		t.Fatalf("low 应为 min(0.5, 0.6)=0.5, 实际 %v", *s.Low24h)
	}
	if math.Abs(*s.Change24h-0.3) > 1e-12 {
		t.Fatalf("change 应为 0.6-0.3=0.3, 实际 %v", *s.Change24h)
	}
}

func TestCompute24hAllWithinWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	timeline := []BetPoint{
		{Time: now.Add(-5 * time.Hour), Prob: 0.2},
		{Time: now.Add(-1 * time.Hour), Prob: 0.8},
	}

	s := Compute24h(timeline, 0.4, now)
	if *s.Prob24hAgo != 0.2 {
		t.Fatalf("无窗口前记录时应取窗口内最早一条 0.2, 实际 %v", *s.Prob24hAgo)
	}
	if *s.High24h != 0.8 || *s.Low24h != 0.2 {
		t.Fatalf("high/low 应为 0.8/0.2, 实际 %v/%v", *s.High24h, *s.Low24h)
	}
}

func TestCompute24hAllBeforeWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	timeline := []BetPoint{
		{Time: now.Add(-72 * time.Hour), Prob: 0.1},
		{Time: now.Add(-48 * time.Hour), Prob: 0.25},
	}

	s := Compute24h(timeline, 0.3, now)
	if s.HasActivity {
		t.Fatal("窗口内无记录时不应有 activity")
	}
	if *s.Prob24hAgo != 0.25 {
		t.Fatalf("应取窗口前最后一条 0.25, 实际 %v", *s.Prob24hAgo)
	}
	// current value always anchors the range.
	if *s.High24h != 0.3 || *s.Low24h != 0.3 {
		t.Fatalf("窗口为空时 high=low=current, 实际 %v/%v", *s.High24h, *s.Low24h)
	}
	if math.Abs(*s.Change24h-0.05) > 1e-12 {
		t.Fatalf("change 应为 0.05, 实际 %v", *s.Change24h)
	}
}

func TestCompute24hBoundaryEntryCountsAsWithin(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	timeline := []BetPoint{{Time: now.Add(-Window), Prob: 0.7}}

	s := Compute24h(timeline, 0.7, now)
	if !s.HasActivity {
		t.Fatal("恰在窗口边界的记录应算窗口内")
	}
	if *s.Prob24hAgo != 0.7 {
		t.Fatalf("24h-ago 应为 0.7, 实际 %v", *s.Prob24hAgo)
	}
}
