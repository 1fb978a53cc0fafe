package profiler

import (
	"he3scope/internal/game"
	"he3scope/internal/model"
)

// Stage estimates per farm category, weighted toward farms closer to He3
// production.
var categoryStageWeight = map[game.FarmCategory]float64{
	game.FarmBase:          25,
	game.FarmAdvanced:      60,
	game.FarmHe3Production: 90,
	game.FarmHe3Staking:    100,
}

// AnalyzeStaking classifies an agent's farm positions by category and
// derives yield-farming indicators.
func AnalyzeStaking(positions []model.StakingPosition) (model.StakingStrategy, error) {
	var total float64
	active := make([]model.StakingPosition, 0, len(positions))
	for _, p := range positions {
		if p.StakedAmount > 0 {
			active = append(active, p)
			total += p.StakedAmount
		}
	}
	if total == 0 {
		return model.StakingStrategy{}, model.ErrNoData
	}

	categoryValue := make(map[game.FarmCategory]float64)
	var grapheneValue, yttriumValue float64
	for _, p := range active {
		farm, ok := game.FarmByID(p.FarmID)
		if !ok {
			continue
		}
		categoryValue[farm.Category] += p.StakedAmount

		switch game.FarmPath(farm) {
		case game.PathGraphene:
			grapheneValue += p.StakedAmount
		case game.PathYttrium:
			yttriumValue += p.StakedAmount
		}
	}

	categoryPct := make(map[string]float64, len(categoryValue))
	var stageEstimate float64
	for category, value := range categoryValue {
		pct := value / total * 100
		categoryPct[string(category)] = round2(pct)
		stageEstimate += pct / 100 * categoryStageWeight[category]
	}

	he3Potential := categoryPct[string(game.FarmHe3Production)] + categoryPct[string(game.FarmHe3Staking)]

	// Position count plus category breadth, capped at 100.
	intensity := float64(len(active))*15 + float64(len(categoryValue))*10
	if intensity > 100 {
		intensity = 100
	}

	return model.StakingStrategy{
		CategoryPercentages: categoryPct,
		DirectStakingFocus:  categoryPct[string(game.FarmHe3Staking)],
		StageEstimate:       round2(stageEstimate),
		PathFocus:           round2((grapheneValue - yttriumValue) / total * 100),
		YieldIntensity:      round2(intensity),
		He3Potential:        round2(he3Potential),
		PositionCount:       len(active),
	}, nil
}
