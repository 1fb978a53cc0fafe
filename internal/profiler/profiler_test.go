package profiler

import (
	"errors"
	"math"
	"testing"

	"he3scope/internal/game"
	"he3scope/internal/model"
)

func TestResourceFocusPercentagesSumTo100(t *testing.T) {
	focus, err := AnalyzeResourceFocus(model.ResourceSnapshot{
		game.Carbon:   60,
		game.Graphite: 30,
		game.Helium3:  10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sum float64
	for _, pct := range focus.Percentages {
		sum += pct
	}
	if math.Abs(sum-100) > 0.05 {
		t.Fatalf("percentages sum: %v", sum)
	}

	if len(focus.Dominant) != 3 || focus.Dominant[0] != game.Carbon {
		t.Fatalf("dominant mismatch: %v", focus.Dominant)
	}

	// GRP/C ratio present since both are nonzero.
	if ratio := focus.StageRatios["GRP/C"]; math.Abs(ratio-0.5) > 1e-9 {
		t.Fatalf("GRP/C ratio: %v", ratio)
	}
}

func TestResourceFocusNoData(t *testing.T) {
	if _, err := AnalyzeResourceFocus(model.ResourceSnapshot{}); !errors.Is(err, model.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestPathPreferenceBounds(t *testing.T) {
	// Everything on the graphene path.
	pref, err := AnalyzePathPreference(
		model.ResourceSnapshot{game.Carbon: 100, game.Graphite: 50},
		[]model.LiquidityPosition{{Token0: game.WattDollar, Token1: game.Graphene, ShareBalance: 1}},
		[]model.StakingPosition{{FarmID: "GRP-farm", StakedAmount: 5}},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pref.PathDominance != 100 {
		t.Fatalf("pure graphene dominance: %d", pref.PathDominance)
	}
	if pref.Diversification != 0 {
		t.Fatalf("diversification: %d", pref.Diversification)
	}
}

func TestPathPreferenceDiversificationComplement(t *testing.T) {
	cases := []model.ResourceSnapshot{
		{game.Carbon: 100},
		{game.Neodymium: 100},
		{game.Carbon: 60, game.Neodymium: 40},
		{game.Carbon: 50, game.Neodymium: 50},
	}

	for _, resources := range cases {
		pref, err := AnalyzePathPreference(resources, nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if pref.PathDominance < -100 || pref.PathDominance > 100 {
			t.Fatalf("dominance out of bounds: %d", pref.PathDominance)
		}
		wantDiversity := 100 - abs(pref.PathDominance)
		if pref.Diversification != wantDiversity {
			t.Fatalf("diversification should complement dominance: %d != %d", pref.Diversification, wantDiversity)
		}
	}
}

func TestPathPreferenceNoData(t *testing.T) {
	_, err := AnalyzePathPreference(model.ResourceSnapshot{game.WattDollar: 100}, nil, nil)
	if !errors.Is(err, model.ErrNoData) {
		t.Fatalf("expected ErrNoData for chain-free holdings, got %v", err)
	}
}

func TestLiquidityStrategyClassification(t *testing.T) {
	liq, err := AnalyzeLiquidity([]model.LiquidityPosition{
		{Token0: game.WattDollar, Token1: game.Carbon, ShareBalance: 25},
		{Token0: game.WattDollar, Token1: game.Graphene, ShareBalance: 50},
		{Token0: game.WattDollar, Token1: game.Helium3, ShareBalance: 25},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pct := liq.StagePercentages[string(game.StageAdvanced)]; pct != 50 {
		t.Fatalf("advanced stage pct: %v", pct)
	}
	if liq.He3Emphasis != 25 {
		t.Fatalf("he3 emphasis: %v", liq.He3Emphasis)
	}
	// 75% advanced+victory stages.
	if liq.AdvancedFocus != 75 {
		t.Fatalf("advanced focus: %v", liq.AdvancedFocus)
	}
	if liq.PositionCount != 3 {
		t.Fatalf("position count: %d", liq.PositionCount)
	}
	// wD/C and wD/GPH both sit on the graphene path.
	if liq.PathFocus != 75 {
		t.Fatalf("path focus: %v", liq.PathFocus)
	}
}

func TestLiquidityStrategyNoPositions(t *testing.T) {
	if _, err := AnalyzeLiquidity(nil); !errors.Is(err, model.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestStakingStrategyIndicators(t *testing.T) {
	stake, err := AnalyzeStaking([]model.StakingPosition{
		{FarmID: "He3-stake", StakedAmount: 50},
		{FarmID: "GRP-farm", StakedAmount: 50},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stake.DirectStakingFocus != 50 {
		t.Fatalf("direct staking focus: %v", stake.DirectStakingFocus)
	}
	// 50% base (25) + 50% he3Staking (100) → 62.5.
	if math.Abs(stake.StageEstimate-62.5) > 1e-9 {
		t.Fatalf("stage estimate: %v", stake.StageEstimate)
	}
	if stake.He3Potential != 50 {
		t.Fatalf("he3 potential: %v", stake.He3Potential)
	}
}

func TestOverallStrategyRanges(t *testing.T) {
	snap := &model.AgentSnapshot{
		AgentID: "alpha",
		Resources: model.ResourceSnapshot{
			game.Carbon:   40,
			game.Graphite: 20,
			game.Graphene: 10,
			game.Helium3:  5,
		},
		LiquidityPositions: []model.LiquidityPosition{
			{Token0: game.WattDollar, Token1: game.Graphene, ShareBalance: 10},
		},
		StakingPositions: []model.StakingPosition{
			{FarmID: "He3-GPH-farm", StakedAmount: 10},
		},
	}

	p := New(nil)
	profile := p.Profile(snap)

	overall := profile.Overall
	if overall.Error != "" {
		t.Fatalf("unexpected overall error: %s", overall.Error)
	}

	for name, value := range map[string]float64{
		"game_stage":            overall.GameStage,
		"resource_optimization": overall.ResourceOptimization,
		"vertical_integration":  overall.VerticalIntegration,
		"liquidity_efficiency":  overall.LiquidityEfficiency,
		"yield_generation":      overall.YieldGeneration,
		"he3_focus":             overall.He3Focus,
		"strategic_diversity":   overall.StrategicDiversity,
	} {
		if value < 0 || value > 100 {
			t.Fatalf("%s out of [0,100]: %v", name, value)
		}
	}
	if overall.PathSpecialization < -100 || overall.PathSpecialization > 100 {
		t.Fatalf("path specialization out of bounds: %v", overall.PathSpecialization)
	}

	// Full graphene chain + He3 balance + He3 production staking.
	if overall.GameStageName != "endgame" {
		t.Fatalf("game stage name: %s", overall.GameStageName)
	}
}

func TestProfileDegradesSectionsOnEmptySnapshot(t *testing.T) {
	p := New(nil)
	profile := p.Profile(&model.AgentSnapshot{AgentID: "empty"})

	if profile.ResourceFocus.Error == "" {
		t.Fatalf("resource focus should carry error sentinel")
	}
	if profile.PathPreference.Error == "" {
		t.Fatalf("path preference should carry error sentinel")
	}
	if profile.Liquidity.Error == "" {
		t.Fatalf("liquidity should carry error sentinel")
	}
	if profile.Staking.Error == "" {
		t.Fatalf("staking should carry error sentinel")
	}
	if profile.Overall.Error == "" {
		t.Fatalf("overall should carry error sentinel")
	}
}
