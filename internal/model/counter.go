package model

import "time"

// CounterStrategyAnalysis is the structured vulnerability and opportunity
// report for playing against one opponent.
type CounterStrategyAnalysis struct {
	AgentID string `json:"agent_id"`

	ResourceVulnerabilities   []string `json:"resource_vulnerabilities"`
	PathVulnerabilities       []string `json:"path_vulnerabilities"`
	LiquidityVulnerabilities  []string `json:"liquidity_vulnerabilities"`
	StakingVulnerabilities    []string `json:"staking_vulnerabilities"`
	ProductionVulnerabilities []string `json:"production_vulnerabilities"`

	Opportunities []string `json:"opportunities"`

	TargetResources        []string `json:"target_resources"`
	TargetAlternativeChain bool     `json:"target_alternative_chain"`
	AlternativeChain       string   `json:"alternative_chain"`
	ShouldProvideLiquidity bool     `json:"should_provide_liquidity"`
	ShouldStake            bool     `json:"should_stake"`

	// MiningEfficiency estimates, in [0,100], how efficiently a
	// counter-position can be mined against this opponent. Specialists
	// score higher than generalists.
	MiningEfficiency float64 `json:"mining_efficiency"`

	Profile    StrategyProfile `json:"profile"`
	ComputedAt time.Time       `json:"computed_at"`
}

// Applicability grades how well a strategy archetype fits an analysis.
type Applicability string

const (
	ApplicabilityHigh   Applicability = "High"
	ApplicabilityMedium Applicability = "Medium"
	ApplicabilityLow    Applicability = "Low"
)

// InspirationEntry pairs one strategy archetype with its applicability and
// open-ended prompts for a language-model caller.
type InspirationEntry struct {
	Archetype     string        `json:"archetype"`
	Description   string        `json:"description"`
	Applicability Applicability `json:"applicability"`
	Prompts       []string      `json:"prompts"`
}

// InspirationReport maps a counter-strategy analysis onto the archetype
// catalogue.
type InspirationReport struct {
	AgentID    string             `json:"agent_id"`
	Entries    []InspirationEntry `json:"entries"`
	ComputedAt time.Time          `json:"computed_at"`
}
