package ranking

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"he3scope/internal/model"
)

// Blend weights for the battle summary score: He3 balance, path score,
// activity count. The comparator uses a different triple (0.6/0.25/0.15);
// the two call sites diverged historically and are kept distinct on
// purpose.
const (
	blendHe3      = 0.5
	blendPath     = 0.3
	blendActivity = 0.2
)

// ProgressionSource computes one agent's progression record.
type ProgressionSource interface {
	Progression(ctx context.Context, agentID string) (model.AgentProgression, error)
}

// He3Source fetches one agent's victory token balance.
type He3Source interface {
	He3Balance(ctx context.Context, agentID string) (float64, error)
}

// Engine ranks agents by progression or by victory token balance.
type Engine struct {
	progressions ProgressionSource
	he3          He3Source
	threshold    float64
	concurrency  int
	logger       *zap.Logger
}

// NewEngine builds a ranking Engine. threshold is the victory-token amount
// that ends the game.
func NewEngine(progressions ProgressionSource, he3 He3Source, threshold float64, concurrency int, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if concurrency <= 0 {
		concurrency = 4
	}
	return &Engine{
		progressions: progressions,
		he3:          he3,
		threshold:    threshold,
		concurrency:  concurrency,
		logger:       logger,
	}
}

// RankByProgression computes every agent's progression record and returns a
// stable descending leaderboard. Agents whose address cannot be resolved
// fail the whole ranking; any other per-agent degradation already happened
// inside the snapshot pipeline.
func (e *Engine) RankByProgression(ctx context.Context, agentIDs []string) ([]model.RankedAgent, error) {
	records := make([]model.AgentProgression, len(agentIDs))
	errs := make([]error, len(agentIDs))

	sem := make(chan struct{}, e.concurrency)
	var wg sync.WaitGroup
	for i, agentID := range agentIDs {
		wg.Add(1)
		go func(i int, agentID string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			records[i], errs[i] = e.progressions.Progression(ctx, agentID)
		}(i, agentID)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("progression for %s: %w", agentIDs[i], err)
		}
	}

	// Stable sort: agents with equal totals keep their roster order.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].TotalScore > records[j].TotalScore
	})

	ranked := make([]model.RankedAgent, len(records))
	for i, record := range records {
		ranked[i] = model.RankedAgent{
			AgentID:       record.AgentID,
			Rank:          i + 1,
			TotalScore:    record.TotalScore,
			ResourceScore: record.ResourceScore,
			LPScore:       record.LPScore,
			FarmingScore:  record.FarmingScore,
		}
	}
	return ranked, nil
}

// RankByHe3 ranks agents by victory token balance alone. Agents whose
// fetch failed are omitted from the result rather than ranked at zero.
func (e *Engine) RankByHe3(ctx context.Context, agentIDs []string) ([]model.He3RankedAgent, error) {
	type result struct {
		agentID string
		balance float64
		err     error
	}

	results := make([]result, len(agentIDs))
	sem := make(chan struct{}, e.concurrency)
	var wg sync.WaitGroup
	for i, agentID := range agentIDs {
		wg.Add(1)
		go func(i int, agentID string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			balance, err := e.he3.He3Balance(ctx, agentID)
			results[i] = result{agentID: agentID, balance: balance, err: err}
		}(i, agentID)
	}
	wg.Wait()

	entries := make([]model.He3RankedAgent, 0, len(results))
	for _, r := range results {
		if r.err != nil {
			e.logger.Warn("omitting agent from he3 ranking", zap.String("agent", r.agentID), zap.Error(r.err))
			continue
		}
		entries = append(entries, model.He3RankedAgent{
			AgentID:        r.agentID,
			He3Balance:     r.balance,
			ProgressToGoal: e.progressToGoal(r.balance),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].He3Balance > entries[j].He3Balance
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

func (e *Engine) progressToGoal(balance float64) float64 {
	if e.threshold <= 0 {
		return 0
	}
	progress := balance / e.threshold * 100
	if progress > 100 {
		return 100
	}
	return progress
}

// BattleScore blends victory token balance, path score, and activity count
// into one summary number using the ranking engine's weight triple. Inputs
// are normalized against the provided maxima.
func BattleScore(d model.BattleData, pathScore, maxHe3, maxPath, maxActivity float64) float64 {
	var score float64
	if maxHe3 > 0 {
		score += blendHe3 * (d.He3Balance / maxHe3)
	}
	if maxPath > 0 {
		score += blendPath * (pathScore / maxPath)
	}
	if maxActivity > 0 {
		score += blendActivity * (float64(d.ActivityPositions) / maxActivity)
	}
	return score * 100
}
