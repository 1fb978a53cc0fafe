package advisor

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"he3scope/internal/game"
	"he3scope/internal/model"
	"he3scope/internal/profiler"
)

// Thresholds drive the rule-based vulnerability classifier. These are
// documented heuristic constants, not derived values.
type Thresholds struct {
	// ResourceDominancePct flags a single resource holding at least this
	// share of total value.
	ResourceDominancePct float64

	// ChainDominance flags a path dominance at or beyond this magnitude.
	ChainDominance int

	// He3FocusFloor flags a victory-token focus below this value as a
	// production-strategy weakness.
	He3FocusFloor float64
}

// DefaultThresholds returns the standard rule set.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ResourceDominancePct: 50,
		ChainDominance:       60,
		He3FocusFloor:        35,
	}
}

// Mining efficiency blend: a specialist opponent is easier to
// counter-position against than a generalist.
const (
	efficiencyBase        = 40.0
	efficiencyPathWeight  = 0.35
	efficiencyStageWeight = 0.25
)

// Advisor derives counter-strategy analyses for an opponent. It runs the
// strategic profiler internally and applies threshold rules on top.
type Advisor struct {
	profiler   *profiler.Profiler
	thresholds Thresholds
	logger     *zap.Logger
}

// New builds an Advisor.
func New(p *profiler.Profiler, thresholds Thresholds, logger *zap.Logger) *Advisor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if p == nil {
		p = profiler.New(logger)
	}
	return &Advisor{profiler: p, thresholds: thresholds, logger: logger}
}

// Analyze produces the vulnerability/opportunity report for one opponent's
// snapshot.
func (a *Advisor) Analyze(snap *model.AgentSnapshot) model.CounterStrategyAnalysis {
	profile := a.profiler.Profile(snap)

	analysis := model.CounterStrategyAnalysis{
		AgentID:    snap.AgentID,
		Profile:    profile,
		ComputedAt: time.Now().UTC(),
	}

	a.applyResourceRules(&analysis, profile)
	a.applyPathRules(&analysis, profile)
	a.applyLiquidityRules(&analysis, profile)
	a.applyStakingRules(&analysis, profile)
	a.applyProductionRules(&analysis, profile)
	analysis.MiningEfficiency = a.miningEfficiency(profile)

	return analysis
}

func (a *Advisor) applyResourceRules(analysis *model.CounterStrategyAnalysis, profile model.StrategyProfile) {
	if profile.ResourceFocus.Error != "" {
		return
	}
	for symbol, pct := range profile.ResourceFocus.Percentages {
		if pct >= a.thresholds.ResourceDominancePct {
			analysis.ResourceVulnerabilities = append(analysis.ResourceVulnerabilities,
				fmt.Sprintf("%.0f%% of resource value concentrated in %s", pct, symbol))
			analysis.TargetResources = append(analysis.TargetResources, symbol)
			analysis.Opportunities = append(analysis.Opportunities,
				fmt.Sprintf("contest %s supply and pricing to pressure their position", symbol))
		}
	}
}

func (a *Advisor) applyPathRules(analysis *model.CounterStrategyAnalysis, profile model.StrategyProfile) {
	if profile.PathPreference.Error != "" {
		return
	}
	dominance := profile.PathPreference.PathDominance
	if dominance >= a.thresholds.ChainDominance || dominance <= -a.thresholds.ChainDominance {
		favored := game.PathGraphene
		if dominance < 0 {
			favored = game.PathYttrium
		}
		alternative := game.OtherPath(favored)

		analysis.PathVulnerabilities = append(analysis.PathVulnerabilities,
			fmt.Sprintf("heavily committed to the %s path (dominance %d)", favored, dominance))
		analysis.TargetAlternativeChain = true
		analysis.AlternativeChain = string(alternative)
		analysis.Opportunities = append(analysis.Opportunities,
			fmt.Sprintf("develop the %s path where they have little presence", alternative))
	}
}

func (a *Advisor) applyLiquidityRules(analysis *model.CounterStrategyAnalysis, profile model.StrategyProfile) {
	if profile.Liquidity.Error != "" || profile.Liquidity.PositionCount == 0 {
		analysis.LiquidityVulnerabilities = append(analysis.LiquidityVulnerabilities,
			"no active liquidity positions")
		analysis.ShouldProvideLiquidity = true
		analysis.Opportunities = append(analysis.Opportunities,
			"establish liquidity positions to capture fees they are forfeiting")
	}
}

func (a *Advisor) applyStakingRules(analysis *model.CounterStrategyAnalysis, profile model.StrategyProfile) {
	if profile.Staking.Error != "" || profile.Staking.PositionCount == 0 {
		analysis.StakingVulnerabilities = append(analysis.StakingVulnerabilities,
			"no active farm positions")
		analysis.ShouldStake = true
		analysis.Opportunities = append(analysis.Opportunities,
			"stake into farms to out-accumulate their idle holdings")
	}
}

func (a *Advisor) applyProductionRules(analysis *model.CounterStrategyAnalysis, profile model.StrategyProfile) {
	if profile.Overall.Error != "" {
		return
	}
	if profile.Overall.He3Focus < a.thresholds.He3FocusFloor {
		analysis.ProductionVulnerabilities = append(analysis.ProductionVulnerabilities,
			fmt.Sprintf("low victory-token focus (%.0f)", profile.Overall.He3Focus))
		analysis.Opportunities = append(analysis.Opportunities,
			"prioritize He3 production while their pipeline is underdeveloped")
	}
}

func (a *Advisor) miningEfficiency(profile model.StrategyProfile) float64 {
	efficiency := efficiencyBase

	if profile.Overall.Error == "" {
		efficiency += efficiencyPathWeight * math.Abs(profile.Overall.PathSpecialization)
	}
	if profile.Staking.Error == "" {
		efficiency += efficiencyStageWeight * maxPct(profile.Staking.CategoryPercentages)
	} else if profile.Liquidity.Error == "" {
		efficiency += efficiencyStageWeight * maxPct(profile.Liquidity.StagePercentages)
	}

	if efficiency > 100 {
		efficiency = 100
	}
	if efficiency < 0 {
		efficiency = 0
	}
	return math.Round(efficiency*100) / 100
}

func maxPct(percentages map[string]float64) float64 {
	var max float64
	for _, pct := range percentages {
		if pct > max {
			max = pct
		}
	}
	return max
}
