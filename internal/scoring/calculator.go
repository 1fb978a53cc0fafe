package scoring

import (
	"he3scope/internal/game"
	"he3scope/internal/model"
	"he3scope/internal/weights"
)

// ResourceScore computes the weighted resource sub-score and a per-resource
// breakdown of normalized balances.
func ResourceScore(balances model.ResourceSnapshot, cfg weights.Config) (float64, map[string]float64) {
	var score float64
	breakdown := make(map[string]float64, len(balances))

	for symbol, amount := range balances {
		breakdown[symbol] = amount
		score += amount * cfg.TokenWeight(symbol)
	}
	return score, breakdown
}

// LPScore computes the weighted liquidity sub-score and a per-pool
// breakdown of normalized share balances.
func LPScore(shares model.LPSnapshot, cfg weights.Config) (float64, map[string]float64) {
	var score float64
	breakdown := make(map[string]float64, len(shares))

	for poolID, amount := range shares {
		breakdown[poolID] = amount
		score += amount * cfg.PoolWeight(poolID)
	}
	return score, breakdown
}

// FarmingScore computes the farming sub-score. Each farm's pending reward
// is weighted by its reward token and boosted by the farm multiplier
// (1 + weight/divisor). Farms whose reward token could not be resolved fall
// back to the base currency.
func FarmingScore(rewards model.RewardSnapshot, rewardTokens map[string]string, cfg weights.Config) (float64, map[string]float64) {
	var score float64
	breakdown := make(map[string]float64, len(rewards))

	for farmID, amount := range rewards {
		breakdown[farmID] = amount
		if amount == 0 {
			continue
		}

		symbol := rewardTokens[farmID]
		if symbol == "" {
			symbol = game.WattDollar
		}

		weight := cfg.TokenWeight(symbol)
		multiplier := 1 + weight/cfg.FarmBonusDivisor
		score += amount * weight * multiplier
	}
	return score, breakdown
}
