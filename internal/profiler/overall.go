package profiler

import (
	"he3scope/internal/game"
	"he3scope/internal/model"
)

// Game stage milestones, accumulated into a 0-100 estimate.
const (
	milestoneBase          = 10.0
	milestoneIntermediate  = 20.0
	milestoneAdvanced      = 25.0
	milestoneHe3Balance    = 25.0
	milestoneHe3Production = 20.0
)

// AnalyzeOverall combines the section analyses into the composite strategy
// bundle. Sections that failed contribute zero to their indicators.
func AnalyzeOverall(snap *model.AgentSnapshot, pref model.PathPreference, liq model.LiquidityStrategy, stake model.StakingStrategy) (model.OverallStrategy, error) {
	resourceTotal := snap.Resources.Total()
	if resourceTotal == 0 && liq.PositionCount == 0 && stake.PositionCount == 0 {
		return model.OverallStrategy{}, model.ErrNoData
	}

	gameStage := estimateGameStage(snap, stake)

	he3Pct := 0.0
	if resourceTotal > 0 {
		he3Pct = snap.Resources[game.Helium3] / resourceTotal * 100
	}

	overall := model.OverallStrategy{
		GameStage:            round2(gameStage),
		GameStageName:        stageName(gameStage),
		ResourceOptimization: round2(resourceOptimization(snap.Resources, resourceTotal)),
		VerticalIntegration:  round2(verticalIntegration(snap.Resources)),
		LiquidityEfficiency:  round2(0.5*liq.AdvancedFocus + 0.5*liq.Diversification),
		YieldGeneration:      round2(0.6*stake.He3Potential + 0.4*stake.YieldIntensity),
		PathSpecialization:   float64(pref.PathDominance),
		He3Focus:             round2(0.7*he3Pct + 0.3*stake.He3Potential),
		StrategicDiversity:   round2(strategicDiversity(snap.Resources, liq, stake)),
	}
	return overall, nil
}

func estimateGameStage(snap *model.AgentSnapshot, stake model.StakingStrategy) float64 {
	var score float64

	hasStage := func(stage game.Stage) bool {
		for symbol, amount := range snap.Resources {
			if amount == 0 {
				continue
			}
			if s, ok := game.StageOf(symbol); ok && s == stage {
				return true
			}
		}
		return false
	}

	if hasStage(game.StageBase) {
		score += milestoneBase
	}
	if hasStage(game.StageIntermediate) {
		score += milestoneIntermediate
	}
	if hasStage(game.StageAdvanced) {
		score += milestoneAdvanced
	}
	if snap.Resources[game.Helium3] > 0 {
		score += milestoneHe3Balance
	}
	if stake.He3Potential > 0 {
		score += milestoneHe3Production
	}
	if score > 100 {
		score = 100
	}
	return score
}

func stageName(score float64) string {
	switch {
	case score < 25:
		return "early"
	case score < 50:
		return "mid"
	case score < 75:
		return "advanced"
	default:
		return "endgame"
	}
}

// resourceOptimization measures how far holdings skew toward later
// production stages: the value-weighted average stage rank mapped to 0-100.
func resourceOptimization(resources model.ResourceSnapshot, total float64) float64 {
	if total == 0 {
		return 0
	}
	var weighted float64
	for symbol, amount := range resources {
		if amount == 0 {
			continue
		}
		stage, ok := game.StageOf(symbol)
		if !ok {
			continue
		}
		weighted += amount / total * float64(game.StageRank(stage))
	}
	// Stage ranks span 0..3.
	return weighted / 3 * 100
}

// verticalIntegration rewards holding resources at multiple stages of the
// same chain.
func verticalIntegration(resources model.ResourceSnapshot) float64 {
	var developed float64
	for _, chain := range [][]string{game.GrapheneChain, game.YttriumChain} {
		var present int
		for _, symbol := range chain {
			if resources[symbol] > 0 {
				present++
			}
		}
		if present > 1 {
			developed += float64(present - 1)
		}
	}
	// Two chains of three stages each: at most 4 integration steps.
	return developed / 4 * 100
}

func strategicDiversity(resources model.ResourceSnapshot, liq model.LiquidityStrategy, stake model.StakingStrategy) float64 {
	var nonzero int
	for _, amount := range resources {
		if amount > 0 {
			nonzero++
		}
	}
	resourceBreadth := float64(nonzero) / float64(len(game.TrackedResources())) * 100
	return (resourceBreadth + liq.Diversification + minF(float64(len(stake.CategoryPercentages))/4*100, 100)) / 3
}
