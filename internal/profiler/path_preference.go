package profiler

import (
	"math"

	"he3scope/internal/game"
	"he3scope/internal/model"
)

// Dimension weights for the path preference blend: resource holdings,
// liquidity participation, staking participation.
const (
	weightResources = 0.30
	weightLiquidity = 0.35
	weightStaking   = 0.35
)

// AnalyzePathPreference measures how strongly an agent favors one
// production chain, blending resource holdings, liquidity participation,
// and staking participation.
func AnalyzePathPreference(resources model.ResourceSnapshot, liquidity []model.LiquidityPosition, staking []model.StakingPosition) (model.PathPreference, error) {
	resShares, resTotal := resourcePathShares(resources)
	liqShares, liqTotal := liquidityPathShares(liquidity)
	stakeShares, stakeTotal := stakingPathShares(staking)

	if resTotal == 0 && liqTotal == 0 && stakeTotal == 0 {
		return model.PathPreference{}, model.ErrNoData
	}

	graphene := weightResources*resShares.Graphene + weightLiquidity*liqShares.Graphene + weightStaking*stakeShares.Graphene
	yttrium := weightResources*resShares.Yttrium + weightLiquidity*liqShares.Yttrium + weightStaking*stakeShares.Yttrium

	dominance := int(math.Round(graphene - yttrium))
	if dominance > 100 {
		dominance = 100
	}
	if dominance < -100 {
		dominance = -100
	}

	return model.PathPreference{
		ResourceShares:  resShares,
		LiquidityShares: liqShares,
		StakingShares:   stakeShares,
		GrapheneScore:   round2(graphene),
		YttriumScore:    round2(yttrium),
		PathDominance:   dominance,
		Diversification: 100 - abs(dominance),
	}, nil
}

func resourcePathShares(resources model.ResourceSnapshot) (model.PathShares, float64) {
	var graphene, yttrium float64
	for symbol, amount := range resources {
		switch game.PathOf(symbol) {
		case game.PathGraphene:
			graphene += amount
		case game.PathYttrium:
			yttrium += amount
		}
	}
	return toShares(graphene, yttrium)
}

func liquidityPathShares(positions []model.LiquidityPosition) (model.PathShares, float64) {
	var graphene, yttrium float64
	for _, p := range positions {
		if p.ShareBalance == 0 {
			continue
		}
		switch game.PairPath(p.Token0, p.Token1) {
		case game.PathGraphene:
			graphene++
		case game.PathYttrium:
			yttrium++
		}
	}
	return toShares(graphene, yttrium)
}

func stakingPathShares(positions []model.StakingPosition) (model.PathShares, float64) {
	var graphene, yttrium float64
	for _, p := range positions {
		if p.StakedAmount == 0 {
			continue
		}
		farm, ok := game.FarmByID(p.FarmID)
		if !ok {
			continue
		}
		switch game.FarmPath(farm) {
		case game.PathGraphene:
			graphene++
		case game.PathYttrium:
			yttrium++
		}
	}
	return toShares(graphene, yttrium)
}

func toShares(graphene, yttrium float64) (model.PathShares, float64) {
	total := graphene + yttrium
	if total == 0 {
		return model.PathShares{}, 0
	}
	return model.PathShares{
		Graphene: round2(graphene / total * 100),
		Yttrium:  round2(yttrium / total * 100),
	}, total
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
