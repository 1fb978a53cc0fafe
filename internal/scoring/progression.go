package scoring

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"he3scope/internal/model"
	"he3scope/internal/weights"
)

// SnapshotSource provides the per-category fetches the aggregator needs.
type SnapshotSource interface {
	ResourceBalances(ctx context.Context, agentID string) (model.ResourceSnapshot, error)
	LPBalances(ctx context.Context, agentID string) (model.LPSnapshot, error)
	PendingRewards(ctx context.Context, agentID string) (model.RewardSnapshot, map[string]string, error)
}

// Service computes progression records from fresh snapshots.
type Service struct {
	source SnapshotSource
	cfg    weights.Config
	logger *zap.Logger
}

// NewService builds a scoring Service.
func NewService(source SnapshotSource, cfg weights.Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, cfg: cfg, logger: logger}
}

// Progression fetches the three snapshot categories concurrently, scores
// them, and returns the agent's progression record. Address resolution
// failures propagate; any other category failure degrades to an empty
// snapshot so the remaining categories still score.
func (s *Service) Progression(ctx context.Context, agentID string) (model.AgentProgression, error) {
	var (
		wg        sync.WaitGroup
		resources model.ResourceSnapshot
		lpShares  model.LPSnapshot
		rewards   model.RewardSnapshot
		symbols   map[string]string
		errRes    error
		errLP     error
		errFarm   error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		resources, errRes = s.source.ResourceBalances(ctx, agentID)
	}()
	go func() {
		defer wg.Done()
		lpShares, errLP = s.source.LPBalances(ctx, agentID)
	}()
	go func() {
		defer wg.Done()
		rewards, symbols, errFarm = s.source.PendingRewards(ctx, agentID)
	}()
	wg.Wait()

	for _, err := range []error{errRes, errLP, errFarm} {
		if errors.Is(err, model.ErrAddressNotFound) {
			return model.AgentProgression{}, err
		}
	}
	if errRes != nil {
		s.logger.Warn("resource snapshot failed", zap.String("agent", agentID), zap.Error(errRes))
		resources = model.ResourceSnapshot{}
	}
	if errLP != nil {
		s.logger.Warn("lp snapshot failed", zap.String("agent", agentID), zap.Error(errLP))
		lpShares = model.LPSnapshot{}
	}
	if errFarm != nil {
		s.logger.Warn("reward snapshot failed", zap.String("agent", agentID), zap.Error(errFarm))
		rewards = model.RewardSnapshot{}
		symbols = nil
	}

	resourceScore, resourceBreakdown := ResourceScore(resources, s.cfg)
	lpScore, lpBreakdown := LPScore(lpShares, s.cfg)
	farmingScore, rewardBreakdown := FarmingScore(rewards, symbols, s.cfg)

	return model.AgentProgression{
		AgentID:          agentID,
		ResourceScore:    resourceScore,
		LPScore:          lpScore,
		FarmingScore:     farmingScore,
		TotalScore:       resourceScore + lpScore + farmingScore,
		ResourceBalances: resourceBreakdown,
		LPBalances:       lpBreakdown,
		PendingRewards:   rewardBreakdown,
		ComputedAt:       time.Now().UTC(),
	}, nil
}
