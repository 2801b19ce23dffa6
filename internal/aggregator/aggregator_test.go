package aggregator

import (
	"math"
	"testing"

	"bingo-watch/internal/bingo"
	"bingo-watch/internal/stats"
)

func testCard(id string, slugs ...string) bingo.Card {
	grid := make([]bingo.Cell, bingo.GridSize)
	for i := range grid {
		if i == bingo.FreeCellIndex {
			continue
		}
		slug := slugs[i%len(slugs)]
		grid[i] = bingo.Cell{Question: "Q " + slug, Slug: slug, Prob: 0.5, ContractID: "c-" + slug}
	}
	return bingo.Card{
		CardID:         id,
		UserHandle:     "user-" + id,
		Status:         bingo.StatusActive,
		Grid:           grid,
		WinProbability: 0.5,
	}
}

func TestCollectUniqueMarketsDedup(t *testing.T) {
	cards := []bingo.Card{
		testCard("c1", "shared", "only-1"),
		testCard("c2", "shared", "only-2"),
	}

	set := CollectUniqueMarkets(cards)
	if len(set.Slugs) != 3 {
		t.Fatalf("期望 3 个去重市场, 实际 %d", len(set.Slugs))
	}

	shared := set.BySlug["shared"]
	if shared == nil {
		t.Fatal("shared 市场应存在")
	}
	if len(shared.CardIDs) != 2 || shared.CardIDs[0] != "c1" || shared.CardIDs[1] != "c2" {
		t.Fatalf("共享市场应按首次出现顺序引用两张卡: %v", shared.CardIDs)
	}
	// 同一张卡重复引用同一 slug 也只记录一次。
	if len(set.BySlug["only-1"].CardIDs) != 1 {
		t.Fatalf("only-1 应只被 c1 引用: %v", set.BySlug["only-1"].CardIDs)
	}
	if set.Slugs[0] != "shared" || set.Slugs[1] != "only-1" {
		t.Fatalf("slug 顺序应为首次出现顺序: %v", set.Slugs)
	}
}

func TestCollectUniqueMarketsSkipsFreeCell(t *testing.T) {
	set := CollectUniqueMarkets([]bingo.Card{testCard("c1", "m")})
	if _, ok := set.BySlug[""]; ok {
		t.Fatal("free cell 不应产生市场")
	}
}

func TestComputeCardStatsPassThroughInactive(t *testing.T) {
	card := testCard("c1", "m")
	card.Status = bingo.StatusPendingFill
	card.WinProbability = 0.33

	views := ComputeCardStats([]bingo.Card{card}, CollectUniqueMarkets(nil))
	if len(views) != 1 {
		t.Fatalf("应返回 1 个视图, 实际 %d", len(views))
	}
	v := views[0]
	if v.LiveWinProb != 0.33 {
		t.Fatalf("非活跃卡应保留存储值: %v", v.LiveWinProb)
	}
	if v.Change24h != nil || v.High24h != nil || v.Low24h != nil {
		t.Fatal("非活跃卡不应有 24h 数据")
	}
}

func TestComputeCardStatsLiveDerivation(t *testing.T) {
	card := testCard("c1", "m")
	set := CollectUniqueMarkets([]bingo.Card{card})

	snap := set.BySlug["m"]
	snap.CurrentProb = 0.9
	snap.HasLiveData = true
	ago, high, low := 0.3, 0.95, 0.2
	change := 0.6
	snap.Stats = &stats.TimeStats{Prob24hAgo: &ago, High24h: &high, Low24h: &low, Change24h: &change, HasActivity: true}

	views := ComputeCardStats([]bingo.Card{card}, set)
	v := views[0]

	probs := func(p float64) [bingo.GridSize]float64 {
		var out [bingo.GridSize]float64
		for i := range out {
			out[i] = p
		}
		out[bingo.FreeCellIndex] = 1
		return out
	}

	if got, want := v.LiveWinProb, bingo.EstimateWinProbability(probs(0.9)); math.Abs(got-want) > 1e-12 {
		t.Fatalf("live 胜率应基于 0.9 向量: %v vs %v", got, want)
	}
	if got, want := *v.High24h, bingo.EstimateWinProbability(probs(0.95)); math.Abs(got-want) > 1e-12 {
		t.Fatalf("high 胜率应基于 0.95 向量: %v vs %v", got, want)
	}
	wantChange := v.LiveWinProb - bingo.EstimateWinProbability(probs(0.3))
	if math.Abs(*v.Change24h-wantChange) > 1e-12 {
		t.Fatalf("change 应为 live-24hAgo: %v vs %v", *v.Change24h, wantChange)
	}
}

func TestComputeCardStatsStaticFallback(t *testing.T) {
	card := testCard("c1", "m")
	set := CollectUniqueMarkets([]bingo.Card{card})
	// no live data attached: every vector falls back to the stored 0.5

	views := ComputeCardStats([]bingo.Card{card}, set)
	v := views[0]

	var static [bingo.GridSize]float64
	for i := range static {
		static[i] = 0.5
	}
	static[bingo.FreeCellIndex] = 1
	want := bingo.EstimateWinProbability(static)

	if math.Abs(v.LiveWinProb-want) > 1e-12 {
		t.Fatalf("无 live 数据时应退回静态概率: %v vs %v", v.LiveWinProb, want)
	}
	if *v.Change24h != 0 {
		t.Fatalf("无 live 数据时 change 应为 0: %v", *v.Change24h)
	}
}

func TestComputeCardStatsResolvedMarketPins(t *testing.T) {
	card := testCard("c1", "m")
	set := CollectUniqueMarkets([]bingo.Card{card})

	snap := set.BySlug["m"]
	snap.HasLiveData = true
	snap.IsResolved = true
	snap.Resolution = bingo.ResolutionYes
	snap.CurrentProb = 0.97

	views := ComputeCardStats([]bingo.Card{card}, set)
	if views[0].LiveWinProb != 1 {
		t.Fatalf("全部市场 resolved YES 时胜率应为 1: %v", views[0].LiveWinProb)
	}
}

func TestMarketRows(t *testing.T) {
	cards := []bingo.Card{testCard("c1", "a", "b"), testCard("c2", "a")}
	set := CollectUniqueMarkets(cards)
	change := -0.2
	set.BySlug["a"].Stats = &stats.TimeStats{Change24h: &change, HasActivity: true}

	rows := MarketRows(set)
	if len(rows) != 2 {
		t.Fatalf("期望 2 行, 实际 %d", len(rows))
	}
	if rows[0].Slug != "a" || rows[0].CardCount != 2 {
		t.Fatalf("第一行应为 a, 引用 2 张卡: %+v", rows[0])
	}
	if *rows[0].Change24h != -0.2 || !rows[0].HasActivity {
		t.Fatalf("24h 数据应透传: %+v", rows[0])
	}
	if rows[1].Change24h != nil {
		t.Fatal("无 stats 的市场 change 应为 nil")
	}
}
