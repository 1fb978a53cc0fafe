package profiler

import (
	"he3scope/internal/game"
	"he3scope/internal/model"
)

// AnalyzeLiquidity classifies an agent's liquidity positions by production
// stage and individual resource, then derives deployment indicators.
func AnalyzeLiquidity(positions []model.LiquidityPosition) (model.LiquidityStrategy, error) {
	var total float64
	active := make([]model.LiquidityPosition, 0, len(positions))
	for _, p := range positions {
		if p.ShareBalance > 0 {
			active = append(active, p)
			total += p.ShareBalance
		}
	}
	if total == 0 {
		return model.LiquidityStrategy{}, model.ErrNoData
	}

	stageValue := make(map[string]float64)
	resourceValue := make(map[string]float64)
	var grapheneValue, yttriumValue, he3Value float64

	for _, p := range active {
		stage := game.PairStage(p.Token0, p.Token1)
		stageValue[string(stage)] += p.ShareBalance

		for _, symbol := range []string{p.Token0, p.Token1} {
			if symbol == game.WattDollar {
				continue
			}
			resourceValue[symbol] += p.ShareBalance
			if symbol == game.Helium3 {
				he3Value += p.ShareBalance
			}
		}

		switch game.PairPath(p.Token0, p.Token1) {
		case game.PathGraphene:
			grapheneValue += p.ShareBalance
		case game.PathYttrium:
			yttriumValue += p.ShareBalance
		}
	}

	stagePct := make(map[string]float64, len(stageValue))
	for stage, value := range stageValue {
		stagePct[stage] = round2(value / total * 100)
	}
	resourcePct := make(map[string]float64, len(resourceValue))
	for symbol, value := range resourceValue {
		resourcePct[symbol] = round2(value / total * 100)
	}

	advancedFocus := stagePct[string(game.StageAdvanced)] + stagePct[string(game.StageVictory)]

	// Breadth across stages and individual resources, each worth half.
	diversification := float64(len(stageValue))/4*50 + minF(float64(len(resourceValue)), 6)/6*50

	return model.LiquidityStrategy{
		StagePercentages:    stagePct,
		ResourcePercentages: resourcePct,
		Diversification:     round2(diversification),
		AdvancedFocus:       round2(advancedFocus),
		PathFocus:           round2((grapheneValue - yttriumValue) / total * 100),
		He3Emphasis:         round2(he3Value / total * 100),
		PositionCount:       len(active),
	}, nil
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
