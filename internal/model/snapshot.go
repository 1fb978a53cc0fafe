package model

import "time"

// ResourceSnapshot maps resource symbol to normalized balance.
type ResourceSnapshot map[string]float64

// LPSnapshot maps pool identifier to normalized LP share balance.
type LPSnapshot map[string]float64

// RewardSnapshot maps farm identifier to normalized pending reward.
type RewardSnapshot map[string]float64

// Total sums all balances in the snapshot.
func (s ResourceSnapshot) Total() float64 {
	var total float64
	for _, amount := range s {
		total += amount
	}
	return total
}

// AgentSnapshot bundles everything the collector fetched for one agent.
// Created fresh per invocation and discarded after the computation using it.
type AgentSnapshot struct {
	AgentID            string              `json:"agent_id"`
	Address            string              `json:"address"`
	Resources          ResourceSnapshot    `json:"resources"`
	LPShares           LPSnapshot          `json:"lp_shares"`
	PendingRewards     RewardSnapshot      `json:"pending_rewards"`
	RewardTokens       map[string]string   `json:"reward_tokens"`
	LiquidityPositions []LiquidityPosition `json:"liquidity_positions"`
	StakingPositions   []StakingPosition   `json:"staking_positions"`
	CollectedAt        time.Time           `json:"collected_at"`
}
