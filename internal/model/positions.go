package model

// LiquidityPosition is a validated record of one agent's deposit into a
// liquidity pair, as reported by the indexer.
type LiquidityPosition struct {
	PairAddress  string  `json:"pair_address"`
	PoolID       string  `json:"pool_id"`
	Token0       string  `json:"token0"`
	Token1       string  `json:"token1"`
	Deposits     float64 `json:"deposits"`
	Withdrawals  float64 `json:"withdrawals"`
	ShareBalance float64 `json:"share_balance"`
	Reserve0     float64 `json:"reserve0"`
	Reserve1     float64 `json:"reserve1"`
	TotalSupply  float64 `json:"total_supply"`
}

// StakingPosition is a validated record of one agent's stake in a yield
// farm, as reported by the indexer.
type StakingPosition struct {
	FarmAddress    string  `json:"farm_address"`
	FarmID         string  `json:"farm_id"`
	StakedAmount   float64 `json:"staked_amount"`
	AccruedRewards float64 `json:"accrued_rewards"`
	RewardRate     float64 `json:"reward_rate"`
	PenaltyEndsAt  uint64  `json:"penalty_ends_at"`
}
