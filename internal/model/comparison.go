package model

// AgentComparison is a head-to-head comparison of two progression records.
// Winner fields always hold one of the two agent identifiers; ties resolve
// to the first argument.
type AgentComparison struct {
	AgentA          string            `json:"agent_a"`
	AgentB          string            `json:"agent_b"`
	CategoryWinners map[string]string `json:"category_winners"`
	OverallWinner   string            `json:"overall_winner"`
	Differences     []string          `json:"differences"`
	Breakdown       map[string]string `json:"breakdown"`
}

// BattleData is the richer per-agent bundle used for detailed comparison:
// victory-token balance, production-path development, and activity counts.
type BattleData struct {
	AgentID           string  `json:"agent_id"`
	He3Balance        float64 `json:"he3_balance"`
	GrapheneDepth     int     `json:"graphene_depth"`
	YttriumDepth      int     `json:"yttrium_depth"`
	AdvancedYield     bool    `json:"advanced_yield"`
	ActivityPositions int     `json:"activity_positions"`
	GameStage         string  `json:"game_stage"`
}

// BattleComparison is the outcome of a detailed two-agent comparison.
type BattleComparison struct {
	AgentA        string            `json:"agent_a"`
	AgentB        string            `json:"agent_b"`
	PathScoreA    float64           `json:"path_score_a"`
	PathScoreB    float64           `json:"path_score_b"`
	OverallScoreA float64           `json:"overall_score_a"`
	OverallScoreB float64           `json:"overall_score_b"`
	Winner        string            `json:"winner"`
	Differences   []string          `json:"differences"`
	Breakdown     map[string]string `json:"breakdown"`
}
