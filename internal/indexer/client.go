package indexer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"he3scope/internal/model"
)

// Client queries the game indexer for an agent's liquidity and staking
// positions. Retries with exponential backoff live here, at the external
// boundary; the scoring core never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	backoff    time.Duration
	logger     *zap.Logger
}

// Options tune the indexer client.
type Options struct {
	Timeout    time.Duration
	MaxRetries int
	Backoff    time.Duration
}

// NewClient builds an indexer client for a base URL.
func NewClient(baseURL string, opts Options, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.Backoff <= 0 {
		opts.Backoff = 500 * time.Millisecond
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: opts.Timeout},
		maxRetries: opts.MaxRetries,
		backoff:    opts.Backoff,
		logger:     logger,
	}
}

type liquidityPositionPayload struct {
	PairAddress  string `json:"pair_address"`
	PoolID       string `json:"pool_id"`
	Token0       string `json:"token0"`
	Token1       string `json:"token1"`
	Deposits     string `json:"deposits"`
	Withdrawals  string `json:"withdrawals"`
	ShareBalance string `json:"share_balance"`
	Reserve0     string `json:"reserve0"`
	Reserve1     string `json:"reserve1"`
	TotalSupply  string `json:"total_supply"`
}

type stakingPositionPayload struct {
	FarmAddress    string `json:"farm_address"`
	FarmID         string `json:"farm_id"`
	StakedAmount   string `json:"staked_amount"`
	AccruedRewards string `json:"accrued_rewards"`
	RewardRate     string `json:"reward_rate"`
	PenaltyEndsAt  uint64 `json:"penalty_ends_at"`
}

// LiquidityPositions returns an agent's liquidity positions.
func (c *Client) LiquidityPositions(ctx context.Context, owner common.Address) ([]model.LiquidityPosition, error) {
	var payload []liquidityPositionPayload
	if err := c.fetchJSON(ctx, "/v1/positions/liquidity", owner, &payload); err != nil {
		return nil, err
	}

	positions := make([]model.LiquidityPosition, 0, len(payload))
	for _, p := range payload {
		positions = append(positions, model.LiquidityPosition{
			PairAddress:  p.PairAddress,
			PoolID:       p.PoolID,
			Token0:       p.Token0,
			Token1:       p.Token1,
			Deposits:     c.parseAmount(p.Deposits, "deposits", p.PairAddress),
			Withdrawals:  c.parseAmount(p.Withdrawals, "withdrawals", p.PairAddress),
			ShareBalance: c.parseAmount(p.ShareBalance, "share_balance", p.PairAddress),
			Reserve0:     c.parseAmount(p.Reserve0, "reserve0", p.PairAddress),
			Reserve1:     c.parseAmount(p.Reserve1, "reserve1", p.PairAddress),
			TotalSupply:  c.parseAmount(p.TotalSupply, "total_supply", p.PairAddress),
		})
	}
	return positions, nil
}

// StakingPositions returns an agent's staking positions.
func (c *Client) StakingPositions(ctx context.Context, owner common.Address) ([]model.StakingPosition, error) {
	var payload []stakingPositionPayload
	if err := c.fetchJSON(ctx, "/v1/positions/staking", owner, &payload); err != nil {
		return nil, err
	}

	positions := make([]model.StakingPosition, 0, len(payload))
	for _, p := range payload {
		positions = append(positions, model.StakingPosition{
			FarmAddress:    p.FarmAddress,
			FarmID:         p.FarmID,
			StakedAmount:   c.parseAmount(p.StakedAmount, "staked_amount", p.FarmAddress),
			AccruedRewards: c.parseAmount(p.AccruedRewards, "accrued_rewards", p.FarmAddress),
			RewardRate:     c.parseAmount(p.RewardRate, "reward_rate", p.FarmAddress),
			PenaltyEndsAt:  p.PenaltyEndsAt,
		})
	}
	return positions, nil
}

// parseAmount converts a decimal string, falling back to zero on malformed
// input so one bad field never drops the whole position.
func (c *Client) parseAmount(raw, field, source string) float64 {
	if strings.TrimSpace(raw) == "" {
		return 0
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		c.logger.Warn("malformed amount",
			zap.String("field", field),
			zap.String("source", source),
			zap.String("raw", raw),
		)
		return 0
	}
	return value
}

func (c *Client) fetchJSON(ctx context.Context, path string, owner common.Address, out interface{}) error {
	endpoint := c.baseURL + path + "?" + url.Values{"address": {owner.Hex()}}.Encode()

	var lastErr error
	delay := c.backoff
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
			delay *= 2
		}

		lastErr = c.doFetch(ctx, endpoint, out)
		if lastErr == nil {
			return nil
		}
		c.logger.Warn("indexer query failed",
			zap.String("path", path),
			zap.Int("attempt", attempt+1),
			zap.Error(lastErr),
		)
	}
	return fmt.Errorf("indexer query %s: %w", path, lastErr)
}

func (c *Client) doFetch(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10*1024*1024))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
