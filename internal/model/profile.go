package model

import "time"

// PathShares holds one percentage per production chain.
type PathShares struct {
	Graphene float64 `json:"graphene"`
	Yttrium  float64 `json:"yttrium"`
}

// ResourceFocus describes how an agent's resource value is distributed.
// Percentages sum to 100 across resources with nonzero total value.
type ResourceFocus struct {
	Percentages map[string]float64 `json:"percentages"`
	Dominant    []string           `json:"dominant"`
	StageRatios map[string]float64 `json:"stage_ratios"`
	Error       string             `json:"error,omitempty"`
}

// PathPreference scores how strongly an agent favors one production chain.
// PathDominance is in [-100,100], positive toward graphene;
// Diversification == 100 - |PathDominance|.
type PathPreference struct {
	ResourceShares  PathShares `json:"resource_shares"`
	LiquidityShares PathShares `json:"liquidity_shares"`
	StakingShares   PathShares `json:"staking_shares"`
	GrapheneScore   float64    `json:"graphene_score"`
	YttriumScore    float64    `json:"yttrium_score"`
	PathDominance   int        `json:"path_dominance"`
	Diversification int        `json:"diversification"`
	Error           string     `json:"error,omitempty"`
}

// LiquidityStrategy classifies an agent's liquidity deployment by
// production stage and individual resource.
type LiquidityStrategy struct {
	StagePercentages    map[string]float64 `json:"stage_percentages"`
	ResourcePercentages map[string]float64 `json:"resource_percentages"`
	Diversification     float64            `json:"diversification"`
	AdvancedFocus       float64            `json:"advanced_focus"`
	PathFocus           float64            `json:"path_focus"`
	He3Emphasis         float64            `json:"he3_emphasis"`
	PositionCount       int                `json:"position_count"`
	Error               string             `json:"error,omitempty"`
}

// StakingStrategy classifies an agent's farm positions by category.
type StakingStrategy struct {
	CategoryPercentages map[string]float64 `json:"category_percentages"`
	DirectStakingFocus  float64            `json:"direct_staking_focus"`
	StageEstimate       float64            `json:"stage_estimate"`
	PathFocus           float64            `json:"path_focus"`
	YieldIntensity      float64            `json:"yield_intensity"`
	He3Potential        float64            `json:"he3_potential"`
	PositionCount       int                `json:"position_count"`
	Error               string             `json:"error,omitempty"`
}

// OverallStrategy is the composite indicator bundle. All values are in
// [0,100] except PathSpecialization, which is in [-100,100].
type OverallStrategy struct {
	GameStage            float64 `json:"game_stage"`
	GameStageName        string  `json:"game_stage_name"`
	ResourceOptimization float64 `json:"resource_optimization"`
	VerticalIntegration  float64 `json:"vertical_integration"`
	LiquidityEfficiency  float64 `json:"liquidity_efficiency"`
	YieldGeneration      float64 `json:"yield_generation"`
	PathSpecialization   float64 `json:"path_specialization"`
	He3Focus             float64 `json:"he3_focus"`
	StrategicDiversity   float64 `json:"strategic_diversity"`
	Error                string  `json:"error,omitempty"`
}

// StrategyProfile is the full qualitative profile derived from one agent's
// raw snapshot. Sections with degenerate input carry an Error message
// instead of computed values.
type StrategyProfile struct {
	AgentID        string            `json:"agent_id"`
	ResourceFocus  ResourceFocus     `json:"resource_focus"`
	PathPreference PathPreference    `json:"path_preference"`
	Liquidity      LiquidityStrategy `json:"liquidity"`
	Staking        StakingStrategy   `json:"staking"`
	Overall        OverallStrategy   `json:"overall"`
	ComputedAt     time.Time         `json:"computed_at"`
}
