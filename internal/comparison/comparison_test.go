package comparison

import (
	"math"
	"strings"
	"testing"

	"he3scope/internal/game"
	"he3scope/internal/model"
)

func record(agentID string, resource, lp, farming float64) model.AgentProgression {
	return model.AgentProgression{
		AgentID:       agentID,
		ResourceScore: resource,
		LPScore:       lp,
		FarmingScore:  farming,
		TotalScore:    resource + lp + farming,
	}
}

func TestCompareWinners(t *testing.T) {
	a := record("alpha", 100, 20, 5)
	b := record("beta", 80, 40, 5)

	cmp := Compare(a, b)
	if cmp.CategoryWinners["resources"] != "alpha" {
		t.Fatalf("resources winner: %s", cmp.CategoryWinners["resources"])
	}
	if cmp.CategoryWinners["liquidity"] != "beta" {
		t.Fatalf("liquidity winner: %s", cmp.CategoryWinners["liquidity"])
	}
	if cmp.OverallWinner != "alpha" {
		t.Fatalf("overall winner: %s", cmp.OverallWinner)
	}
}

func TestCompareTieFavorsFirstArgument(t *testing.T) {
	a := record("alpha", 50, 10, 5)
	b := record("beta", 50, 10, 5)

	cmp := Compare(a, b)
	for category, winner := range cmp.CategoryWinners {
		if winner != "alpha" {
			t.Fatalf("tie in %s should favor first argument, got %s", category, winner)
		}
	}
	// No difference strings on exact ties.
	if len(cmp.Differences) != 0 {
		t.Fatalf("expected no differences, got %v", cmp.Differences)
	}
}

func TestCompareDifferenceStrings(t *testing.T) {
	a := record("alpha", 100, 10, 5)
	b := record("beta", 90, 10, 5)

	cmp := Compare(a, b)
	var foundResources, foundLiquidity bool
	for _, diff := range cmp.Differences {
		if strings.HasPrefix(diff, "resources:") {
			foundResources = true
		}
		if strings.HasPrefix(diff, "liquidity:") {
			foundLiquidity = true
		}
	}
	if !foundResources {
		t.Fatalf("missing resources difference: %v", cmp.Differences)
	}
	if foundLiquidity {
		t.Fatalf("tied liquidity category should not emit a difference: %v", cmp.Differences)
	}
}

func TestPathScoreStageMultipliers(t *testing.T) {
	base := model.BattleData{GrapheneDepth: 2, YttriumDepth: 1, GameStage: "early"}
	if got := PathScore(base); got != 30 {
		t.Fatalf("early path score: %v", got)
	}

	cases := map[string]float64{
		"early":    30,
		"mid":      36,
		"advanced": 45,
		"endgame":  60,
	}
	for stage, want := range cases {
		d := base
		d.GameStage = stage
		if got := PathScore(d); math.Abs(got-want) > 1e-9 {
			t.Fatalf("%s path score: got %v, want %v", stage, got, want)
		}
	}
}

func TestPathScoreBonuses(t *testing.T) {
	d := model.BattleData{GrapheneDepth: 3, YttriumDepth: 3, GameStage: "early"}
	// 60 depth points + 15 dual-chain bonus.
	if got := PathScore(d); got != 75 {
		t.Fatalf("dual chain score: %v", got)
	}

	d.AdvancedYield = true
	if got := PathScore(d); got != 85 {
		t.Fatalf("advanced yield score: %v", got)
	}

	// Depth clamps at 4 per chain.
	d = model.BattleData{GrapheneDepth: 9, YttriumDepth: 0, GameStage: "early"}
	if got := PathScore(d); got != 40 {
		t.Fatalf("clamped depth score: %v", got)
	}
}

func TestCompareBattleWinner(t *testing.T) {
	a := model.BattleData{AgentID: "alpha", He3Balance: 100, GrapheneDepth: 3, YttriumDepth: 3, ActivityPositions: 6, GameStage: "mid"}
	b := model.BattleData{AgentID: "beta", He3Balance: 40, GrapheneDepth: 2, YttriumDepth: 1, ActivityPositions: 2, GameStage: "mid"}

	cmp := CompareBattle(a, b)
	if cmp.Winner != "alpha" {
		t.Fatalf("winner: %s", cmp.Winner)
	}
	if cmp.OverallScoreA <= cmp.OverallScoreB {
		t.Fatalf("overall scores inverted: %v <= %v", cmp.OverallScoreA, cmp.OverallScoreB)
	}
}

func TestBattleDataFromSnapshot(t *testing.T) {
	snap := &model.AgentSnapshot{
		AgentID: "alpha",
		Resources: model.ResourceSnapshot{
			game.Carbon:    10,
			game.Graphite:  5,
			game.Neodymium: 3,
			game.Helium3:   2,
		},
		LiquidityPositions: []model.LiquidityPosition{
			{Token0: game.WattDollar, Token1: game.Carbon, ShareBalance: 1},
			{Token0: game.WattDollar, Token1: game.Graphite, ShareBalance: 0},
		},
		StakingPositions: []model.StakingPosition{
			{FarmID: "He3-GPH-farm", StakedAmount: 4},
		},
	}

	d := BattleDataFrom(snap, "mid")
	if d.He3Balance != 2 {
		t.Fatalf("he3 balance: %v", d.He3Balance)
	}
	// Carbon + graphite + the He3 extension.
	if d.GrapheneDepth != 3 {
		t.Fatalf("graphene depth: %d", d.GrapheneDepth)
	}
	if d.YttriumDepth != 2 {
		t.Fatalf("yttrium depth: %d", d.YttriumDepth)
	}
	// One active liquidity position plus one staking position.
	if d.ActivityPositions != 2 {
		t.Fatalf("activity positions: %d", d.ActivityPositions)
	}
	if !d.AdvancedYield {
		t.Fatalf("he3 production farm should count as advanced yield")
	}
	if d.GameStage != "mid" {
		t.Fatalf("game stage: %s", d.GameStage)
	}
}

func TestCompareBattleIdenticalTieFavorsFirst(t *testing.T) {
	a := model.BattleData{AgentID: "alpha", He3Balance: 10, GrapheneDepth: 1, ActivityPositions: 1, GameStage: "early"}
	b := a
	b.AgentID = "beta"

	cmp := CompareBattle(a, b)
	if cmp.Winner != "alpha" {
		t.Fatalf("tie should favor first argument, got %s", cmp.Winner)
	}
	if len(cmp.Differences) != 0 {
		t.Fatalf("expected no differences, got %v", cmp.Differences)
	}
}
