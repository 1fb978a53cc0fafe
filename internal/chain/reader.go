package chain

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"he3scope/internal/model"
)

// TokenMetaCache caches token metadata by address.
type TokenMetaCache struct {
	mu   sync.RWMutex
	data map[common.Address]model.TokenMeta
}

func NewTokenMetaCache() *TokenMetaCache {
	return &TokenMetaCache{data: make(map[common.Address]model.TokenMeta)}
}

func (c *TokenMetaCache) Get(address common.Address) (model.TokenMeta, bool) {
	c.mu.RLock()
	meta, ok := c.data[address]
	c.mu.RUnlock()
	return meta, ok
}

func (c *TokenMetaCache) Set(address common.Address, meta model.TokenMeta) {
	c.mu.Lock()
	c.data[address] = meta
	c.mu.Unlock()
}

// Reader performs read-only token and farm contract calls, caching token
// metadata between calls.
type Reader struct {
	client *Client
	cache  *TokenMetaCache
	logger *zap.Logger
}

// NewReader builds a Reader over a chain client.
func NewReader(client *Client, logger *zap.Logger) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reader{
		client: client,
		cache:  NewTokenMetaCache(),
		logger: logger,
	}
}

// BalanceOf returns the raw base-unit balance of a token for an owner.
func (r *Reader) BalanceOf(ctx context.Context, token common.Address, owner common.Address) (*big.Int, error) {
	if r.client == nil {
		return nil, fmt.Errorf("chain client is nil")
	}
	parsed, err := getERC20ABI()
	if err != nil {
		return nil, fmt.Errorf("parse erc20 abi: %w", err)
	}

	values, err := r.call(ctx, token, parsed, "balanceOf", owner)
	if err != nil {
		return nil, err
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("balanceOf return size %d", len(values))
	}
	bal, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("balanceOf unexpected type %T", values[0])
	}
	return bal, nil
}

// Decimals returns the decimal count for a token, from cache when possible.
func (r *Reader) Decimals(ctx context.Context, token common.Address) (uint8, error) {
	meta, err := r.TokenMeta(ctx, token)
	if err != nil {
		return 0, err
	}
	return meta.Decimals, nil
}

// Symbol returns the symbol for a token, from cache when possible.
func (r *Reader) Symbol(ctx context.Context, token common.Address) (string, error) {
	meta, err := r.TokenMeta(ctx, token)
	if err != nil {
		return "", err
	}
	return meta.Symbol, nil
}

// TokenMeta loads token metadata via ERC20 calls, caching results.
func (r *Reader) TokenMeta(ctx context.Context, token common.Address) (model.TokenMeta, error) {
	if meta, ok := r.cache.Get(token); ok {
		return meta, nil
	}

	meta := model.TokenMeta{Address: token.Hex()}
	if r.client == nil {
		return meta, fmt.Errorf("chain client is nil")
	}

	stringABI, err := getERC20ABI()
	if err != nil {
		return meta, fmt.Errorf("parse erc20 abi: %w", err)
	}
	bytes32ABI, err := getERC20Bytes32ABI()
	if err != nil {
		return meta, fmt.Errorf("parse erc20 bytes32 abi: %w", err)
	}

	values, err := r.call(ctx, token, stringABI, "decimals")
	if err != nil {
		return meta, err
	}
	decimals, err := asUint8(values[0])
	if err != nil {
		return meta, err
	}
	meta.Decimals = decimals

	if values, err := r.call(ctx, token, stringABI, "symbol"); err == nil {
		if symbol, ok := values[0].(string); ok {
			meta.Symbol = symbol
		}
	} else if values, err := r.call(ctx, token, bytes32ABI, "symbol"); err == nil {
		if symbol, ok := bytes32ToString(values[0]); ok {
			meta.Symbol = symbol
		}
	} else {
		r.logger.Debug("symbol call failed", zap.String("token", token.Hex()), zap.Error(err))
	}

	if values, err := r.call(ctx, token, stringABI, "name"); err == nil {
		if name, ok := values[0].(string); ok {
			meta.Name = name
		}
	} else if values, err := r.call(ctx, token, bytes32ABI, "name"); err == nil {
		if name, ok := bytes32ToString(values[0]); ok {
			meta.Name = name
		}
	} else {
		r.logger.Debug("name call failed", zap.String("token", token.Hex()), zap.Error(err))
	}

	r.cache.Set(token, meta)
	return meta, nil
}

// RewardTokens returns the reward token addresses for a farm.
func (r *Reader) RewardTokens(ctx context.Context, farm common.Address) ([]common.Address, error) {
	if r.client == nil {
		return nil, fmt.Errorf("chain client is nil")
	}
	parsed, err := getFarmABI()
	if err != nil {
		return nil, fmt.Errorf("parse farm abi: %w", err)
	}

	values, err := r.call(ctx, farm, parsed, "getRewardTokens")
	if err != nil {
		return nil, err
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("getRewardTokens return size %d", len(values))
	}
	tokens, ok := values[0].([]common.Address)
	if !ok {
		return nil, fmt.Errorf("getRewardTokens unexpected type %T", values[0])
	}
	return tokens, nil
}

// Earned returns the raw pending reward amount for an owner in a farm.
func (r *Reader) Earned(ctx context.Context, farm common.Address, owner common.Address, rewardToken common.Address) (*big.Int, error) {
	if r.client == nil {
		return nil, fmt.Errorf("chain client is nil")
	}
	parsed, err := getFarmABI()
	if err != nil {
		return nil, fmt.Errorf("parse farm abi: %w", err)
	}

	values, err := r.call(ctx, farm, parsed, "earned", owner, rewardToken)
	if err != nil {
		return nil, err
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("earned return size %d", len(values))
	}
	amount, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("earned unexpected type %T", values[0])
	}
	return amount, nil
}

func (r *Reader) call(ctx context.Context, target common.Address, parsed abi.ABI, method string, args ...interface{}) ([]interface{}, error) {
	data, err := parsed.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	msg := ethereum.CallMsg{To: &target, Data: data}
	resp, err := r.client.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	values, err := parsed.Unpack(method, resp)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	return values, nil
}

func bytes32ToString(value interface{}) (string, bool) {
	switch v := value.(type) {
	case [32]byte:
		return string(bytes.TrimRight(v[:], "\x00")), true
	case []byte:
		return string(bytes.TrimRight(v, "\x00")), true
	default:
		return "", false
	}
}

func asUint8(value interface{}) (uint8, error) {
	switch v := value.(type) {
	case uint8:
		return v, nil
	case uint16:
		return uint8(v), nil
	case uint32:
		return uint8(v), nil
	case uint64:
		return uint8(v), nil
	case *big.Int:
		return uint8(v.Uint64()), nil
	default:
		return 0, fmt.Errorf("unsupported uint8 type %T", value)
	}
}
