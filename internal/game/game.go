package game

// Token symbols for every tracked resource in the He3 game.
const (
	WattDollar = "wD"
	Carbon     = "C"
	Neodymium  = "Nd"
	Graphite   = "GRP"
	Dysprosium = "Dy"
	Graphene   = "GPH"
	Yttrium    = "Y"
	Helium3    = "He3"
)

// Stage identifies where a resource sits in the production pipeline.
type Stage string

const (
	StageBase         Stage = "base"
	StageIntermediate Stage = "intermediate"
	StageAdvanced     Stage = "advanced"
	StageVictory      Stage = "victory"
)

// Path identifies one of the two production chains.
type Path string

const (
	PathNone     Path = ""
	PathGraphene Path = "graphene"
	PathYttrium  Path = "yttrium"
)

// GrapheneChain and YttriumChain list each production chain from base to
// advanced. Both chains converge on He3.
var (
	GrapheneChain = []string{Carbon, Graphite, Graphene}
	YttriumChain  = []string{Neodymium, Dysprosium, Yttrium}
)

var resourceOrder = []string{WattDollar, Carbon, Neodymium, Graphite, Dysprosium, Graphene, Yttrium, Helium3}

var stageBySymbol = map[string]Stage{
	WattDollar: StageBase,
	Carbon:     StageBase,
	Neodymium:  StageBase,
	Graphite:   StageIntermediate,
	Dysprosium: StageIntermediate,
	Graphene:   StageAdvanced,
	Yttrium:    StageAdvanced,
	Helium3:    StageVictory,
}

var pathBySymbol = map[string]Path{
	Carbon:     PathGraphene,
	Graphite:   PathGraphene,
	Graphene:   PathGraphene,
	Neodymium:  PathYttrium,
	Dysprosium: PathYttrium,
	Yttrium:    PathYttrium,
}

// TrackedResources returns all resource symbols in canonical order.
func TrackedResources() []string {
	out := make([]string, len(resourceOrder))
	copy(out, resourceOrder)
	return out
}

// StageOf returns the production stage for a resource symbol.
func StageOf(symbol string) (Stage, bool) {
	stage, ok := stageBySymbol[symbol]
	return stage, ok
}

// PathOf returns the production chain a resource belongs to. wD and He3
// belong to neither chain.
func PathOf(symbol string) Path {
	return pathBySymbol[symbol]
}

// OtherPath returns the opposing production chain.
func OtherPath(path Path) Path {
	switch path {
	case PathGraphene:
		return PathYttrium
	case PathYttrium:
		return PathGraphene
	default:
		return PathNone
	}
}

// Pool describes a tracked liquidity pair.
type Pool struct {
	ID     string
	Token0 string
	Token1 string
}

var trackedPools = []Pool{
	{ID: "wD/C", Token0: WattDollar, Token1: Carbon},
	{ID: "wD/Nd", Token0: WattDollar, Token1: Neodymium},
	{ID: "wD/GRP", Token0: WattDollar, Token1: Graphite},
	{ID: "wD/Dy", Token0: WattDollar, Token1: Dysprosium},
	{ID: "wD/GPH", Token0: WattDollar, Token1: Graphene},
	{ID: "wD/Y", Token0: WattDollar, Token1: Yttrium},
	{ID: "wD/He3", Token0: WattDollar, Token1: Helium3},
}

// TrackedPools returns all tracked liquidity pairs.
func TrackedPools() []Pool {
	out := make([]Pool, len(trackedPools))
	copy(out, trackedPools)
	return out
}

// PoolByID returns a tracked pool by identifier.
func PoolByID(id string) (Pool, bool) {
	for _, pool := range trackedPools {
		if pool.ID == id {
			return pool, true
		}
	}
	return Pool{}, false
}

// PairStage classifies a pair by its most advanced non-wD token.
func PairStage(token0, token1 string) Stage {
	best := StageBase
	for _, symbol := range []string{token0, token1} {
		if symbol == WattDollar {
			continue
		}
		stage, ok := stageBySymbol[symbol]
		if !ok {
			continue
		}
		if stageRank(stage) > stageRank(best) {
			best = stage
		}
	}
	return best
}

// PairPath classifies a pair by the production chain of its non-wD token.
// Pairs touching both chains or neither report PathNone.
func PairPath(token0, token1 string) Path {
	path := PathNone
	for _, symbol := range []string{token0, token1} {
		p := pathBySymbol[symbol]
		if p == PathNone {
			continue
		}
		if path != PathNone && path != p {
			return PathNone
		}
		path = p
	}
	return path
}

func stageRank(stage Stage) int {
	switch stage {
	case StageBase:
		return 0
	case StageIntermediate:
		return 1
	case StageAdvanced:
		return 2
	case StageVictory:
		return 3
	default:
		return -1
	}
}

// StageRank exposes the ordering of production stages.
func StageRank(stage Stage) int {
	return stageRank(stage)
}

// FarmCategory classifies a yield farm by what it produces.
type FarmCategory string

const (
	FarmBase          FarmCategory = "base"
	FarmAdvanced      FarmCategory = "advanced"
	FarmHe3Production FarmCategory = "he3Production"
	FarmHe3Staking    FarmCategory = "he3Staking"
)

// Farm describes a tracked yield farm. Single-stake farms leave StakedPool
// empty and set SingleToken instead.
type Farm struct {
	ID          string
	StakedPool  string
	SingleToken string
	RewardToken string
	Category    FarmCategory
}

var trackedFarms = []Farm{
	{ID: "GRP-farm", StakedPool: "wD/C", RewardToken: Graphite, Category: FarmBase},
	{ID: "Dy-farm", StakedPool: "wD/Nd", RewardToken: Dysprosium, Category: FarmBase},
	{ID: "GPH-farm", StakedPool: "wD/GRP", RewardToken: Graphene, Category: FarmAdvanced},
	{ID: "Y-farm", StakedPool: "wD/Dy", RewardToken: Yttrium, Category: FarmAdvanced},
	{ID: "He3-GPH-farm", StakedPool: "wD/GPH", RewardToken: Helium3, Category: FarmHe3Production},
	{ID: "He3-Y-farm", StakedPool: "wD/Y", RewardToken: Helium3, Category: FarmHe3Production},
	{ID: "He3-stake", SingleToken: Helium3, RewardToken: Helium3, Category: FarmHe3Staking},
	{ID: "wD-He3-farm", StakedPool: "wD/He3", RewardToken: WattDollar, Category: FarmHe3Staking},
}

// TrackedFarms returns all tracked yield farms.
func TrackedFarms() []Farm {
	out := make([]Farm, len(trackedFarms))
	copy(out, trackedFarms)
	return out
}

// FarmByID returns a tracked farm by identifier.
func FarmByID(id string) (Farm, bool) {
	for _, farm := range trackedFarms {
		if farm.ID == id {
			return farm, true
		}
	}
	return Farm{}, false
}

// FarmPath returns the production chain a farm feeds, based on its reward
// token. He3 farms report PathNone.
func FarmPath(farm Farm) Path {
	return pathBySymbol[farm.RewardToken]
}
