package advisor

import (
	"fmt"
	"time"

	"he3scope/internal/model"
)

type archetype struct {
	name        string
	description string
	prompts     []string
	grade       func(model.CounterStrategyAnalysis) model.Applicability
}

// The archetype catalogue is fixed. Applicability against a given opponent
// is graded from the analysis flags.
var archetypes = []archetype{
	{
		name:        "Resource Specialist",
		description: "Corner one resource the opponent depends on and make it expensive for them.",
		prompts: []string{
			"Which of their dominant resources can you accumulate faster than they can?",
			"How would starving the wD pool for that resource change their burn rate?",
		},
		grade: func(a model.CounterStrategyAnalysis) model.Applicability {
			if len(a.TargetResources) > 0 {
				return model.ApplicabilityHigh
			}
			if len(a.ResourceVulnerabilities) > 0 {
				return model.ApplicabilityMedium
			}
			return model.ApplicabilityLow
		},
	},
	{
		name:        "Path Contrarian",
		description: "Build out the production chain the opponent is ignoring and own its markets.",
		prompts: []string{
			"What does an uncontested chain let you price liquidity at?",
			"How quickly can you reach the advanced stage of the neglected path?",
		},
		grade: func(a model.CounterStrategyAnalysis) model.Applicability {
			if a.TargetAlternativeChain {
				return model.ApplicabilityHigh
			}
			return model.ApplicabilityLow
		},
	},
	{
		name:        "Liquidity Monopolist",
		description: "Dominate pool share in pairs the opponent trades through but does not provide for.",
		prompts: []string{
			"Which pools do they swap through without holding shares in?",
			"What share of a pool makes its fees a meaningful income stream here?",
		},
		grade: func(a model.CounterStrategyAnalysis) model.Applicability {
			if a.ShouldProvideLiquidity {
				return model.ApplicabilityHigh
			}
			return model.ApplicabilityMedium
		},
	},
	{
		name:        "Yield Maximizer",
		description: "Out-accumulate an opponent whose holdings sit idle by keeping everything staked.",
		prompts: []string{
			"Which farm category compounds toward He3 fastest from your current holdings?",
			"What is the opportunity cost of their unstaked balances per epoch?",
		},
		grade: func(a model.CounterStrategyAnalysis) model.Applicability {
			if a.ShouldStake {
				return model.ApplicabilityHigh
			}
			return model.ApplicabilityMedium
		},
	},
	{
		name:        "He3 Rusher",
		description: "Skip breadth and race the victory threshold while the opponent is still mid-pipeline.",
		prompts: []string{
			"What is the shortest conversion route from your largest holding to He3?",
			"How many epochs of He3 staking close the gap to the threshold?",
		},
		grade: func(a model.CounterStrategyAnalysis) model.Applicability {
			if len(a.ProductionVulnerabilities) > 0 {
				return model.ApplicabilityHigh
			}
			return model.ApplicabilityLow
		},
	},
	{
		name:        "Balanced Generalist",
		description: "Develop both chains evenly and deny the opponent any single pressure point.",
		prompts: []string{
			"Where would a specialist opponent expect you to be thin?",
			"Which second-chain position is cheapest to open right now?",
		},
		grade: func(a model.CounterStrategyAnalysis) model.Applicability {
			// Strong against specialists, wasted effort otherwise.
			if a.TargetAlternativeChain || len(a.TargetResources) > 0 {
				return model.ApplicabilityMedium
			}
			return model.ApplicabilityLow
		},
	},
}

// Inspire maps an analysis onto the archetype catalogue, grading each entry
// and prefixing opponent-specific context to its prompts.
func Inspire(analysis model.CounterStrategyAnalysis) model.InspirationReport {
	report := model.InspirationReport{
		AgentID:    analysis.AgentID,
		Entries:    make([]model.InspirationEntry, 0, len(archetypes)),
		ComputedAt: time.Now().UTC(),
	}

	for _, arch := range archetypes {
		entry := model.InspirationEntry{
			Archetype:     arch.name,
			Description:   arch.description,
			Applicability: arch.grade(analysis),
			Prompts:       append([]string(nil), arch.prompts...),
		}
		if arch.name == "Path Contrarian" && analysis.TargetAlternativeChain {
			entry.Prompts = append(entry.Prompts,
				fmt.Sprintf("They have left the %s path open. What do you build there first?", analysis.AlternativeChain))
		}
		report.Entries = append(report.Entries, entry)
	}
	return report
}
