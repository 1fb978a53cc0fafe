package weights

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"he3scope/internal/game"
)

// Config is the injectable weight configuration for the scoring engine.
// One canonical config replaces the scattered per-module weight tables the
// game tooling accumulated over time.
type Config struct {
	Version string `json:"version" mapstructure:"version"`

	// TokenWeights maps resource symbol to its scoring weight.
	TokenWeights map[string]float64 `json:"token_weights" mapstructure:"token-weights"`

	// PoolWeights maps a pair key ("A/B") to its scoring weight. Lookups
	// succeed under either token ordering.
	PoolWeights map[string]float64 `json:"pool_weights" mapstructure:"pool-weights"`

	// DefaultTokenWeight applies to tokens absent from TokenWeights.
	DefaultTokenWeight float64 `json:"default_token_weight" mapstructure:"default-token-weight"`

	// DefaultPoolWeight applies to pairs absent from PoolWeights.
	DefaultPoolWeight float64 `json:"default_pool_weight" mapstructure:"default-pool-weight"`

	// FarmBonusDivisor controls the farming multiplier:
	// multiplier = 1 + weight/FarmBonusDivisor.
	FarmBonusDivisor float64 `json:"farm_bonus_divisor" mapstructure:"farm-bonus-divisor"`
}

// Default returns the canonical weight set.
func Default() Config {
	return Config{
		Version: "v1",
		TokenWeights: map[string]float64{
			game.WattDollar: 1.0,
			game.Carbon:     1.5,
			game.Neodymium:  1.5,
			game.Graphite:   2.5,
			game.Dysprosium: 2.5,
			game.Graphene:   4.0,
			game.Yttrium:    4.0,
			game.Helium3:    10.0,
		},
		PoolWeights: map[string]float64{
			PairKey(game.WattDollar, game.Carbon):     1.2,
			PairKey(game.WattDollar, game.Neodymium):  1.2,
			PairKey(game.WattDollar, game.Graphite):   2.0,
			PairKey(game.WattDollar, game.Dysprosium): 2.0,
			PairKey(game.WattDollar, game.Graphene):   3.0,
			PairKey(game.WattDollar, game.Yttrium):    3.0,
			PairKey(game.WattDollar, game.Helium3):    5.0,
		},
		DefaultTokenWeight: 1.0,
		DefaultPoolWeight:  1.0,
		FarmBonusDivisor:   10.0,
	}
}

// TokenWeight returns the weight for a resource symbol, falling back to the
// default for untracked tokens.
func (c Config) TokenWeight(symbol string) float64 {
	if w, ok := c.TokenWeights[symbol]; ok {
		return w
	}
	return c.DefaultTokenWeight
}

// PoolWeight returns the weight for a pair key, trying both orderings
// before falling back to the default.
func (c Config) PoolWeight(pair string) float64 {
	if w, ok := c.PoolWeights[pair]; ok {
		return w
	}
	if flipped, ok := flipPair(pair); ok {
		if w, ok := c.PoolWeights[flipped]; ok {
			return w
		}
	}
	return c.DefaultPoolWeight
}

// PairKey builds the canonical pair key for two token symbols.
func PairKey(a, b string) string {
	return a + "/" + b
}

func flipPair(pair string) (string, bool) {
	parts := strings.SplitN(pair, "/", 2)
	if len(parts) != 2 {
		return "", false
	}
	return parts[1] + "/" + parts[0], true
}

// Validate checks that every configured weight is positive.
func (c Config) Validate() error {
	for symbol, w := range c.TokenWeights {
		if w <= 0 {
			return fmt.Errorf("token weight %s must be positive, got %v", symbol, w)
		}
	}
	for pair, w := range c.PoolWeights {
		if w <= 0 {
			return fmt.Errorf("pool weight %s must be positive, got %v", pair, w)
		}
	}
	if c.DefaultTokenWeight <= 0 {
		return fmt.Errorf("default token weight must be positive, got %v", c.DefaultTokenWeight)
	}
	if c.DefaultPoolWeight <= 0 {
		return fmt.Errorf("default pool weight must be positive, got %v", c.DefaultPoolWeight)
	}
	if c.FarmBonusDivisor <= 0 {
		return fmt.Errorf("farm bonus divisor must be positive, got %v", c.FarmBonusDivisor)
	}
	return nil
}

// LoadFile reads a weight config from a YAML file, applying defaults for
// absent keys.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read weights: %w", err)
	}

	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse weights: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
