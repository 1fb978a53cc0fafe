package profiler

import (
	"math"
	"time"

	"go.uber.org/zap"

	"he3scope/internal/model"
)

// Profiler derives a qualitative strategy profile from one agent's raw
// snapshot. Sub-analyses with degenerate input record an error message in
// their section instead of failing the profile.
type Profiler struct {
	logger *zap.Logger
}

// New builds a Profiler.
func New(logger *zap.Logger) *Profiler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Profiler{logger: logger}
}

// Profile runs every sub-analysis over the snapshot.
func (p *Profiler) Profile(snap *model.AgentSnapshot) model.StrategyProfile {
	profile := model.StrategyProfile{
		AgentID:    snap.AgentID,
		ComputedAt: time.Now().UTC(),
	}

	focus, err := AnalyzeResourceFocus(snap.Resources)
	if err != nil {
		p.logger.Debug("resource focus analysis degraded", zap.String("agent", snap.AgentID), zap.Error(err))
		focus = model.ResourceFocus{Error: err.Error()}
	}
	profile.ResourceFocus = focus

	pref, err := AnalyzePathPreference(snap.Resources, snap.LiquidityPositions, snap.StakingPositions)
	if err != nil {
		p.logger.Debug("path preference analysis degraded", zap.String("agent", snap.AgentID), zap.Error(err))
		pref = model.PathPreference{Error: err.Error()}
	}
	profile.PathPreference = pref

	liq, err := AnalyzeLiquidity(snap.LiquidityPositions)
	if err != nil {
		p.logger.Debug("liquidity analysis degraded", zap.String("agent", snap.AgentID), zap.Error(err))
		liq = model.LiquidityStrategy{Error: err.Error()}
	}
	profile.Liquidity = liq

	stake, err := AnalyzeStaking(snap.StakingPositions)
	if err != nil {
		p.logger.Debug("staking analysis degraded", zap.String("agent", snap.AgentID), zap.Error(err))
		stake = model.StakingStrategy{Error: err.Error()}
	}
	profile.Staking = stake

	overall, err := AnalyzeOverall(snap, pref, liq, stake)
	if err != nil {
		p.logger.Debug("overall analysis degraded", zap.String("agent", snap.AgentID), zap.Error(err))
		overall = model.OverallStrategy{Error: err.Error()}
	}
	profile.Overall = overall

	return profile
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
