package comparison

import (
	"fmt"
	"math"

	"he3scope/internal/model"
)

// Blend weights for the overall battle winner: He3 balance, path score,
// activity count. The standalone ranking engine blends with 0.5/0.3/0.2;
// the two triples are intentionally different and kept separate rather
// than silently unified.
const (
	blendHe3      = 0.60
	blendPath     = 0.25
	blendActivity = 0.15
)

// Bonuses and multipliers for the derived path score.
const (
	depthPoints        = 10.0
	dualChainBonus     = 15.0
	dualChainThreshold = 3
	advancedYieldBonus = 10.0
)

var stageMultipliers = map[string]float64{
	"early":    1.0,
	"mid":      1.2,
	"advanced": 1.5,
	"endgame":  2.0,
}

// Compare derives per-category winners and human-readable deltas from two
// progression records. Ties always favor the first argument and emit no
// difference string.
func Compare(a, b model.AgentProgression) model.AgentComparison {
	categories := []struct {
		name   string
		scoreA float64
		scoreB float64
	}{
		{"resources", a.ResourceScore, b.ResourceScore},
		{"liquidity", a.LPScore, b.LPScore},
		{"farming", a.FarmingScore, b.FarmingScore},
		{"total", a.TotalScore, b.TotalScore},
	}

	winners := make(map[string]string, len(categories))
	breakdown := make(map[string]string, len(categories))
	var differences []string

	for _, cat := range categories {
		winner := a.AgentID
		if cat.scoreB > cat.scoreA {
			winner = b.AgentID
		}
		winners[cat.name] = winner
		breakdown[cat.name] = fmt.Sprintf("%s %.2f vs %s %.2f", a.AgentID, cat.scoreA, b.AgentID, cat.scoreB)

		if delta := math.Abs(cat.scoreA - cat.scoreB); delta != 0 {
			differences = append(differences, fmt.Sprintf("%s: %s leads by %.2f", cat.name, winner, delta))
		}
	}

	return model.AgentComparison{
		AgentA:          a.AgentID,
		AgentB:          b.AgentID,
		CategoryWinners: winners,
		OverallWinner:   winners["total"],
		Differences:     differences,
		Breakdown:       breakdown,
	}
}

// PathScore rates production-chain development: 10 points per completed
// chain stage, a bonus for having both chains past the dual-chain
// threshold, a bonus for advanced-stage yield participation, all scaled by
// the game-stage multiplier.
func PathScore(d model.BattleData) float64 {
	score := float64(clampDepth(d.GrapheneDepth)+clampDepth(d.YttriumDepth)) * depthPoints
	if d.GrapheneDepth >= dualChainThreshold && d.YttriumDepth >= dualChainThreshold {
		score += dualChainBonus
	}
	if d.AdvancedYield {
		score += advancedYieldBonus
	}
	return score * stageMultiplier(d.GameStage)
}

// CompareBattle determines the overall winner from richer per-agent data:
// a weighted blend of victory token balance, path score, and activity
// positions. Ties favor the first argument.
func CompareBattle(a, b model.BattleData) model.BattleComparison {
	pathA := PathScore(a)
	pathB := PathScore(b)

	overallA := blendHe3*share(a.He3Balance, b.He3Balance) +
		blendPath*share(pathA, pathB) +
		blendActivity*share(float64(a.ActivityPositions), float64(b.ActivityPositions))
	overallB := blendHe3*share(b.He3Balance, a.He3Balance) +
		blendPath*share(pathB, pathA) +
		blendActivity*share(float64(b.ActivityPositions), float64(a.ActivityPositions))
	overallA *= 100
	overallB *= 100

	winner := a.AgentID
	if overallB > overallA {
		winner = b.AgentID
	}

	breakdown := map[string]string{
		"he3":      fmt.Sprintf("%s %.2f vs %s %.2f", a.AgentID, a.He3Balance, b.AgentID, b.He3Balance),
		"path":     fmt.Sprintf("%s %.2f vs %s %.2f", a.AgentID, pathA, b.AgentID, pathB),
		"activity": fmt.Sprintf("%s %d vs %s %d", a.AgentID, a.ActivityPositions, b.AgentID, b.ActivityPositions),
	}

	var differences []string
	if delta := math.Abs(a.He3Balance - b.He3Balance); delta != 0 {
		differences = append(differences, fmt.Sprintf("he3: %s leads by %.2f", leader(a, b, a.He3Balance, b.He3Balance), delta))
	}
	if delta := math.Abs(pathA - pathB); delta != 0 {
		differences = append(differences, fmt.Sprintf("path: %s leads by %.2f", leader(a, b, pathA, pathB), delta))
	}
	if delta := math.Abs(float64(a.ActivityPositions - b.ActivityPositions)); delta != 0 {
		differences = append(differences, fmt.Sprintf("activity: %s leads by %.0f", leader(a, b, float64(a.ActivityPositions), float64(b.ActivityPositions)), delta))
	}

	return model.BattleComparison{
		AgentA:        a.AgentID,
		AgentB:        b.AgentID,
		PathScoreA:    pathA,
		PathScoreB:    pathB,
		OverallScoreA: overallA,
		OverallScoreB: overallB,
		Winner:        winner,
		Differences:   differences,
		Breakdown:     breakdown,
	}
}

// share returns own/(own+other), or an even split when both are zero, so
// missing data never divides by zero and ties split evenly.
func share(own, other float64) float64 {
	total := own + other
	if total == 0 {
		return 0.5
	}
	return own / total
}

func leader(a, b model.BattleData, scoreA, scoreB float64) string {
	if scoreB > scoreA {
		return b.AgentID
	}
	return a.AgentID
}

func clampDepth(depth int) int {
	if depth < 0 {
		return 0
	}
	if depth > 4 {
		return 4
	}
	return depth
}

func stageMultiplier(stage string) float64 {
	if m, ok := stageMultipliers[stage]; ok {
		return m
	}
	return 1.0
}
