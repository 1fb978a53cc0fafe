package registry

import (
	"context"
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/common"

	"he3scope/internal/model"
)

// Resolver maps an agent identifier to its chain address.
type Resolver interface {
	Resolve(ctx context.Context, agentID string) (common.Address, error)
}

// StaticResolver resolves agents from a fixed roster loaded at startup.
type StaticResolver struct {
	agents map[string]common.Address
}

// NewStaticResolver builds a resolver from an id → hex address map.
func NewStaticResolver(agents map[string]string) (*StaticResolver, error) {
	resolved := make(map[string]common.Address, len(agents))
	for id, hex := range agents {
		if !common.IsHexAddress(hex) {
			return nil, fmt.Errorf("invalid address for agent %s: %s", id, hex)
		}
		resolved[id] = common.HexToAddress(hex)
	}
	return &StaticResolver{agents: resolved}, nil
}

// Resolve returns the chain address for an agent identifier.
func (r *StaticResolver) Resolve(_ context.Context, agentID string) (common.Address, error) {
	addr, ok := r.agents[agentID]
	if !ok {
		return common.Address{}, fmt.Errorf("agent %s: %w", agentID, model.ErrAddressNotFound)
	}
	return addr, nil
}

// AgentIDs returns the roster in sorted order.
func (r *StaticResolver) AgentIDs() []string {
	ids := make([]string, 0, len(r.agents))
	for id := range r.agents {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
