package comparison

import (
	"he3scope/internal/game"
	"he3scope/internal/model"
)

// BattleDataFrom reduces a raw snapshot to the battle comparison inputs.
// The game stage label comes from the caller since it is derived by the
// strategy profiler.
func BattleDataFrom(snap *model.AgentSnapshot, gameStage string) model.BattleData {
	d := model.BattleData{
		AgentID:       snap.AgentID,
		He3Balance:    snap.Resources[game.Helium3],
		GrapheneDepth: chainDepth(snap.Resources, game.GrapheneChain),
		YttriumDepth:  chainDepth(snap.Resources, game.YttriumChain),
		GameStage:     gameStage,
	}

	for _, p := range snap.LiquidityPositions {
		if p.ShareBalance > 0 {
			d.ActivityPositions++
		}
	}
	for _, p := range snap.StakingPositions {
		if p.StakedAmount == 0 {
			continue
		}
		d.ActivityPositions++
		if farm, ok := game.FarmByID(p.FarmID); ok {
			switch farm.Category {
			case game.FarmAdvanced, game.FarmHe3Production:
				d.AdvancedYield = true
			}
		}
	}
	return d
}

// chainDepth counts held stages along one chain, with the victory token
// extending either chain one step further.
func chainDepth(resources model.ResourceSnapshot, chain []string) int {
	var depth int
	for _, symbol := range chain {
		if resources[symbol] > 0 {
			depth++
		}
	}
	if resources[game.Helium3] > 0 {
		depth++
	}
	return depth
}
