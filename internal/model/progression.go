package model

import "time"

// AgentProgression is the multi-factor progression record for one agent.
// TotalScore is always the exact sum of the three category scores.
type AgentProgression struct {
	AgentID          string           `json:"agent_id"`
	ResourceScore    float64          `json:"resource_score"`
	LPScore          float64          `json:"lp_score"`
	FarmingScore     float64          `json:"farming_score"`
	TotalScore       float64          `json:"total_score"`
	ResourceBalances ResourceSnapshot `json:"resource_balances"`
	LPBalances       LPSnapshot       `json:"lp_balances"`
	PendingRewards   RewardSnapshot   `json:"pending_rewards"`
	ComputedAt       time.Time        `json:"computed_at"`
}

// RankedAgent is one leaderboard entry. Ranks form a permutation of 1..N.
type RankedAgent struct {
	AgentID       string  `json:"agent_id"`
	Rank          int     `json:"rank"`
	TotalScore    float64 `json:"total_score"`
	ResourceScore float64 `json:"resource_score"`
	LPScore       float64 `json:"lp_score"`
	FarmingScore  float64 `json:"farming_score"`
}

// He3RankedAgent is one entry of the simplified victory-token leaderboard.
type He3RankedAgent struct {
	AgentID        string  `json:"agent_id"`
	Rank           int     `json:"rank"`
	He3Balance     float64 `json:"he3_balance"`
	ProgressToGoal float64 `json:"progress_to_goal"`
}
