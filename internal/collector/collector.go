package collector

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"he3scope/internal/game"
	"he3scope/internal/model"
	"he3scope/internal/registry"
)

const defaultDecimals = 18

// ChainReader is the subset of chain reads the collector needs.
type ChainReader interface {
	BalanceOf(ctx context.Context, token common.Address, owner common.Address) (*big.Int, error)
	Decimals(ctx context.Context, token common.Address) (uint8, error)
	Symbol(ctx context.Context, token common.Address) (string, error)
	RewardTokens(ctx context.Context, farm common.Address) ([]common.Address, error)
	Earned(ctx context.Context, farm common.Address, owner common.Address, rewardToken common.Address) (*big.Int, error)
}

// PositionSource provides indexer-backed position queries.
type PositionSource interface {
	LiquidityPositions(ctx context.Context, owner common.Address) ([]model.LiquidityPosition, error)
	StakingPositions(ctx context.Context, owner common.Address) ([]model.StakingPosition, error)
}

// Assets maps tracked game identifiers to their contract addresses.
type Assets struct {
	ResourceTokens  map[string]common.Address
	PoolShareTokens map[string]common.Address
	Farms           map[string]common.Address
}

// AssetsFromHex validates hex address maps into Assets.
func AssetsFromHex(resources, pools, farms map[string]string) (Assets, error) {
	convert := func(kind string, in map[string]string) (map[string]common.Address, error) {
		out := make(map[string]common.Address, len(in))
		for id, hex := range in {
			if !common.IsHexAddress(hex) {
				return nil, fmt.Errorf("invalid %s address for %s: %s", kind, id, hex)
			}
			out[id] = common.HexToAddress(hex)
		}
		return out, nil
	}

	resourceAddrs, err := convert("resource", resources)
	if err != nil {
		return Assets{}, err
	}
	poolAddrs, err := convert("pool", pools)
	if err != nil {
		return Assets{}, err
	}
	farmAddrs, err := convert("farm", farms)
	if err != nil {
		return Assets{}, err
	}

	return Assets{
		ResourceTokens:  resourceAddrs,
		PoolShareTokens: poolAddrs,
		Farms:           farmAddrs,
	}, nil
}

// Coverage compares the configured addresses against the tracked game
// topology. Unknown entries are configured ids the topology does not
// track; missing entries are tracked ids with no configured address, which
// will report zero balances.
func (a Assets) Coverage() (unknown, missing []string) {
	for id := range a.PoolShareTokens {
		if _, ok := game.PoolByID(id); !ok {
			unknown = append(unknown, "pool "+id)
		}
	}
	for id := range a.Farms {
		if _, ok := game.FarmByID(id); !ok {
			unknown = append(unknown, "farm "+id)
		}
	}

	for _, symbol := range game.TrackedResources() {
		if _, ok := a.ResourceTokens[symbol]; !ok {
			missing = append(missing, "resource "+symbol)
		}
	}
	for _, pool := range game.TrackedPools() {
		if _, ok := a.PoolShareTokens[pool.ID]; !ok {
			missing = append(missing, "pool "+pool.ID)
		}
	}
	for _, farm := range game.TrackedFarms() {
		if _, ok := a.Farms[farm.ID]; !ok {
			missing = append(missing, "farm "+farm.ID)
		}
	}

	sort.Strings(unknown)
	sort.Strings(missing)
	return unknown, missing
}

// Collector fetches one agent's full game snapshot. Fetches within a
// category run concurrently up to a bounded limit; individual fetch
// failures degrade to zero amounts and never abort the snapshot. Only
// address resolution is fatal.
type Collector struct {
	reader      ChainReader
	resolver    registry.Resolver
	positions   PositionSource
	assets      Assets
	concurrency int
	logger      *zap.Logger
}

// New builds a Collector.
func New(reader ChainReader, resolver registry.Resolver, positions PositionSource, assets Assets, concurrency int, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	if concurrency <= 0 {
		concurrency = 8
	}
	return &Collector{
		reader:      reader,
		resolver:    resolver,
		positions:   positions,
		assets:      assets,
		concurrency: concurrency,
		logger:      logger,
	}
}

// ResourceBalances fetches normalized balances for every tracked resource.
func (c *Collector) ResourceBalances(ctx context.Context, agentID string) (model.ResourceSnapshot, error) {
	owner, err := c.resolver.Resolve(ctx, agentID)
	if err != nil {
		return nil, err
	}
	return c.resourceBalances(ctx, owner), nil
}

// LPBalances fetches normalized balances for every tracked pool share.
func (c *Collector) LPBalances(ctx context.Context, agentID string) (model.LPSnapshot, error) {
	owner, err := c.resolver.Resolve(ctx, agentID)
	if err != nil {
		return nil, err
	}
	return c.lpBalances(ctx, owner), nil
}

// PendingRewards fetches normalized pending rewards for every tracked farm,
// plus the resolved reward token symbol per farm.
func (c *Collector) PendingRewards(ctx context.Context, agentID string) (model.RewardSnapshot, map[string]string, error) {
	owner, err := c.resolver.Resolve(ctx, agentID)
	if err != nil {
		return nil, nil, err
	}
	rewards, symbols := c.pendingRewards(ctx, owner)
	return rewards, symbols, nil
}

// He3Balance fetches only the victory token balance. Unlike the full
// snapshot paths, a failed fetch propagates so callers can omit the agent.
func (c *Collector) He3Balance(ctx context.Context, agentID string) (float64, error) {
	owner, err := c.resolver.Resolve(ctx, agentID)
	if err != nil {
		return 0, err
	}

	token, ok := c.assets.ResourceTokens[game.Helium3]
	if !ok {
		return 0, fmt.Errorf("he3 token address not configured")
	}

	raw, err := c.reader.BalanceOf(ctx, token, owner)
	if err != nil {
		return 0, fmt.Errorf("he3 balance for %s: %w", agentID, err)
	}
	return NormalizeBaseUnits(raw, c.tokenDecimals(ctx, token)), nil
}

// Collect fetches the full agent snapshot: all three balance categories and
// both indexer position lists, concurrently.
func (c *Collector) Collect(ctx context.Context, agentID string) (*model.AgentSnapshot, error) {
	owner, err := c.resolver.Resolve(ctx, agentID)
	if err != nil {
		return nil, err
	}

	snap := &model.AgentSnapshot{
		AgentID: agentID,
		Address: owner.Hex(),
	}

	var wg sync.WaitGroup
	wg.Add(5)

	go func() {
		defer wg.Done()
		snap.Resources = c.resourceBalances(ctx, owner)
	}()
	go func() {
		defer wg.Done()
		snap.LPShares = c.lpBalances(ctx, owner)
	}()
	go func() {
		defer wg.Done()
		snap.PendingRewards, snap.RewardTokens = c.pendingRewards(ctx, owner)
	}()
	go func() {
		defer wg.Done()
		if c.positions == nil {
			return
		}
		positions, err := c.positions.LiquidityPositions(ctx, owner)
		if err != nil {
			c.logger.Warn("liquidity positions fetch failed", zap.String("agent", agentID), zap.Error(err))
			positions = nil
		}
		snap.LiquidityPositions = positions
	}()
	go func() {
		defer wg.Done()
		if c.positions == nil {
			return
		}
		positions, err := c.positions.StakingPositions(ctx, owner)
		if err != nil {
			c.logger.Warn("staking positions fetch failed", zap.String("agent", agentID), zap.Error(err))
			positions = nil
		}
		snap.StakingPositions = positions
	}()

	wg.Wait()
	snap.CollectedAt = time.Now().UTC()
	return snap, nil
}

func (c *Collector) resourceBalances(ctx context.Context, owner common.Address) model.ResourceSnapshot {
	snapshot := make(model.ResourceSnapshot, len(c.assets.ResourceTokens))
	c.eachAsset(c.assets.ResourceTokens, func(id string, token common.Address) (string, float64) {
		return id, c.normalizedBalance(ctx, token, owner, id)
	}, snapshot)
	return snapshot
}

func (c *Collector) lpBalances(ctx context.Context, owner common.Address) model.LPSnapshot {
	snapshot := make(model.LPSnapshot, len(c.assets.PoolShareTokens))
	c.eachAsset(c.assets.PoolShareTokens, func(id string, token common.Address) (string, float64) {
		return id, c.normalizedBalance(ctx, token, owner, id)
	}, snapshot)
	return snapshot
}

func (c *Collector) pendingRewards(ctx context.Context, owner common.Address) (model.RewardSnapshot, map[string]string) {
	rewards := make(model.RewardSnapshot, len(c.assets.Farms))
	symbols := make(map[string]string, len(c.assets.Farms))

	sem := make(chan struct{}, c.concurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for farmID, farmAddr := range c.assets.Farms {
		wg.Add(1)
		go func(farmID string, farmAddr common.Address) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			amount, symbol := c.farmReward(ctx, farmID, farmAddr, owner)
			mu.Lock()
			rewards[farmID] = amount
			symbols[farmID] = symbol
			mu.Unlock()
		}(farmID, farmAddr)
	}

	wg.Wait()
	return rewards, symbols
}

func (c *Collector) farmReward(ctx context.Context, farmID string, farm common.Address, owner common.Address) (float64, string) {
	tokens, err := c.reader.RewardTokens(ctx, farm)
	if err != nil || len(tokens) == 0 {
		if err != nil {
			c.logger.Warn("reward tokens fetch failed", zap.String("farm", farmID), zap.Error(err))
		}
		return 0, ""
	}
	rewardToken := tokens[0]

	symbol, err := c.reader.Symbol(ctx, rewardToken)
	if err != nil {
		c.logger.Warn("reward token symbol fetch failed", zap.String("farm", farmID), zap.Error(err))
		symbol = ""
	}

	raw, err := c.reader.Earned(ctx, farm, owner, rewardToken)
	if err != nil {
		c.logger.Warn("earned fetch failed", zap.String("farm", farmID), zap.Error(err))
		return 0, symbol
	}

	return NormalizeBaseUnits(raw, c.tokenDecimals(ctx, rewardToken)), symbol
}

// eachAsset runs one fetch per asset with bounded concurrency, writing
// results into the shared snapshot map.
func (c *Collector) eachAsset(assets map[string]common.Address, fetch func(string, common.Address) (string, float64), into map[string]float64) {
	sem := make(chan struct{}, c.concurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for id, addr := range assets {
		wg.Add(1)
		go func(id string, addr common.Address) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			key, value := fetch(id, addr)
			mu.Lock()
			into[key] = value
			mu.Unlock()
		}(id, addr)
	}

	wg.Wait()
}

func (c *Collector) normalizedBalance(ctx context.Context, token common.Address, owner common.Address, id string) float64 {
	raw, err := c.reader.BalanceOf(ctx, token, owner)
	if err != nil {
		c.logger.Warn("balance fetch failed", zap.String("asset", id), zap.Error(err))
		return 0
	}
	return NormalizeBaseUnits(raw, c.tokenDecimals(ctx, token))
}

func (c *Collector) tokenDecimals(ctx context.Context, token common.Address) uint8 {
	decimals, err := c.reader.Decimals(ctx, token)
	if err != nil {
		c.logger.Debug("decimals fetch failed, assuming default",
			zap.String("token", token.Hex()),
			zap.Uint8("default", defaultDecimals),
			zap.Error(err),
		)
		return defaultDecimals
	}
	return decimals
}

// NormalizeBaseUnits divides a raw base-unit integer by 10^decimals,
// yielding an IEEE double. Precision beyond the double mantissa is lost,
// which is acceptable for scoring.
func NormalizeBaseUnits(raw *big.Int, decimals uint8) float64 {
	if raw == nil || raw.Sign() == 0 {
		return 0
	}
	denom := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	value, _ := new(big.Float).Quo(new(big.Float).SetInt(raw), new(big.Float).SetInt(denom)).Float64()
	return value
}
