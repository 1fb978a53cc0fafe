package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"he3scope/internal/advisor"
	"he3scope/internal/comparison"
	"he3scope/internal/model"
	"he3scope/internal/profiler"
	"he3scope/internal/ranking"
)

func runCompare(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer app.close()

	if app.cfg.IndexerURL == "" {
		return fmt.Errorf("indexer url is required for compare")
	}

	agentA, agentB := args[0], args[1]
	app.logger.Info("compare start", zap.String("agent_a", agentA), zap.String("agent_b", agentB))

	progressionA, err := app.scoring.Progression(ctx, agentA)
	if err != nil {
		return fmt.Errorf("score agent %s: %w", agentA, err)
	}
	progressionB, err := app.scoring.Progression(ctx, agentB)
	if err != nil {
		return fmt.Errorf("score agent %s: %w", agentB, err)
	}

	battleA, err := app.battleData(ctx, agentA)
	if err != nil {
		return err
	}
	battleB, err := app.battleData(ctx, agentB)
	if err != nil {
		return err
	}

	result := struct {
		Comparison model.AgentComparison  `json:"comparison"`
		Battle     model.BattleComparison `json:"battle"`
		Summary    map[string]float64     `json:"summary"`
	}{
		Comparison: comparison.Compare(progressionA, progressionB),
		Battle:     comparison.CompareBattle(battleA, battleB),
		Summary:    battleSummary(battleA, battleB),
	}
	return printJSON(result)
}

// battleSummary scores both agents with the ranking engine's summary
// blend, normalized against the pair's maxima. It sits alongside the
// battle comparison, which blends with its own weight triple.
func battleSummary(a, b model.BattleData) map[string]float64 {
	pathA := comparison.PathScore(a)
	pathB := comparison.PathScore(b)

	maxHe3 := math.Max(a.He3Balance, b.He3Balance)
	maxPath := math.Max(pathA, pathB)
	maxActivity := math.Max(float64(a.ActivityPositions), float64(b.ActivityPositions))

	return map[string]float64{
		a.AgentID: ranking.BattleScore(a, pathA, maxHe3, maxPath, maxActivity),
		b.AgentID: ranking.BattleScore(b, pathB, maxHe3, maxPath, maxActivity),
	}
}

func runProfile(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer app.close()

	if app.cfg.IndexerURL == "" {
		return fmt.Errorf("indexer url is required for profile")
	}

	agentID := args[0]
	app.logger.Info("profile start", zap.String("agent", agentID))

	snap, err := app.collector.Collect(ctx, agentID)
	if err != nil {
		return fmt.Errorf("collect agent %s: %w", agentID, err)
	}

	profile := profiler.New(app.logger).Profile(snap)
	return printJSON(profile)
}

func runCounter(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer app.close()

	if app.cfg.IndexerURL == "" {
		return fmt.Errorf("indexer url is required for counter")
	}

	agentID := args[0]
	app.logger.Info("counter analysis start", zap.String("agent", agentID))

	snap, err := app.collector.Collect(ctx, agentID)
	if err != nil {
		return fmt.Errorf("collect agent %s: %w", agentID, err)
	}

	adv := advisor.New(profiler.New(app.logger), advisor.DefaultThresholds(), app.logger)
	analysis := adv.Analyze(snap)

	result := struct {
		Analysis    model.CounterStrategyAnalysis `json:"analysis"`
		Inspiration model.InspirationReport       `json:"inspiration"`
	}{
		Analysis:    analysis,
		Inspiration: advisor.Inspire(analysis),
	}
	return printJSON(result)
}

// battleData collects one agent's snapshot and reduces it for the detailed
// comparison, using the profiler's game stage label.
func (a *app) battleData(ctx context.Context, agentID string) (model.BattleData, error) {
	snap, err := a.collector.Collect(ctx, agentID)
	if err != nil {
		return model.BattleData{}, fmt.Errorf("collect agent %s: %w", agentID, err)
	}
	profile := profiler.New(a.logger).Profile(snap)
	return comparison.BattleDataFrom(snap, profile.Overall.GameStageName), nil
}
