package scoring

import (
	"math"
	"testing"

	"he3scope/internal/game"
	"he3scope/internal/model"
	"he3scope/internal/weights"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestResourceScoreWeighted(t *testing.T) {
	cfg := weights.Default()
	balances := model.ResourceSnapshot{
		game.Carbon:  10, // weight 1.5
		game.Helium3: 2,  // weight 10
	}

	score, breakdown := ResourceScore(balances, cfg)
	if !almostEqual(score, 10*1.5+2*10) {
		t.Fatalf("resource score: %v", score)
	}
	if breakdown[game.Carbon] != 10 || breakdown[game.Helium3] != 2 {
		t.Fatalf("breakdown mismatch: %+v", breakdown)
	}
}

func TestResourceScoreMonotonic(t *testing.T) {
	cfg := weights.Default()
	balances := model.ResourceSnapshot{
		game.Carbon:   5,
		game.Graphite: 3,
	}
	before, _ := ResourceScore(balances, cfg)

	for symbol := range balances {
		bumped := model.ResourceSnapshot{}
		for k, v := range balances {
			bumped[k] = v
		}
		bumped[symbol] += 1

		after, _ := ResourceScore(bumped, cfg)
		if after < before {
			t.Fatalf("score decreased after increasing %s: %v < %v", symbol, after, before)
		}
	}
}

func TestResourceScoreUntrackedTokenDefaultsToOne(t *testing.T) {
	cfg := weights.Default()
	score, _ := ResourceScore(model.ResourceSnapshot{"XYZ": 4}, cfg)
	if !almostEqual(score, 4) {
		t.Fatalf("untracked token score: %v", score)
	}
}

func TestLPScoreEitherPairOrdering(t *testing.T) {
	cfg := weights.Default()
	direct, _ := LPScore(model.LPSnapshot{"wD/He3": 2}, cfg)
	flipped, _ := LPScore(model.LPSnapshot{"He3/wD": 2}, cfg)
	if !almostEqual(direct, flipped) {
		t.Fatalf("ordering changed lp score: %v != %v", direct, flipped)
	}
	if !almostEqual(direct, 2*5.0) {
		t.Fatalf("lp score: %v", direct)
	}
}

func TestFarmingScoreMultiplier(t *testing.T) {
	cfg := weights.Default()
	rewards := model.RewardSnapshot{"He3-stake": 3}
	symbols := map[string]string{"He3-stake": game.Helium3}

	score, breakdown := FarmingScore(rewards, symbols, cfg)

	// weight 10, multiplier 1 + 10/10 = 2
	if !almostEqual(score, 3*10*2) {
		t.Fatalf("farming score: %v", score)
	}
	if breakdown["He3-stake"] != 3 {
		t.Fatalf("breakdown mismatch: %+v", breakdown)
	}
}

func TestFarmingScoreUnresolvedRewardTokenFallsBack(t *testing.T) {
	cfg := weights.Default()
	rewards := model.RewardSnapshot{"mystery-farm": 5}

	// No symbol resolved: the base currency weight (1) applies,
	// multiplier 1 + 1/10.
	score, _ := FarmingScore(rewards, nil, cfg)
	if !almostEqual(score, 5*1*1.1) {
		t.Fatalf("fallback farming score: %v", score)
	}
}

func TestFarmingScoreUntrackedRewardToken(t *testing.T) {
	cfg := weights.Default()
	rewards := model.RewardSnapshot{"odd-farm": 2}
	symbols := map[string]string{"odd-farm": "UNKNOWN"}

	// Untracked reward tokens use the default weight of 1 without error.
	score, _ := FarmingScore(rewards, symbols, cfg)
	if !almostEqual(score, 2*1*1.1) {
		t.Fatalf("untracked reward token score: %v", score)
	}
}
