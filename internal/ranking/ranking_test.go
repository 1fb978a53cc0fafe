package ranking

import (
	"context"
	"errors"
	"testing"

	"he3scope/internal/model"
)

type fakeProgressions struct {
	records map[string]model.AgentProgression
	errs    map[string]error
}

func (f *fakeProgressions) Progression(_ context.Context, agentID string) (model.AgentProgression, error) {
	if err := f.errs[agentID]; err != nil {
		return model.AgentProgression{}, err
	}
	return f.records[agentID], nil
}

type fakeHe3 struct {
	balances map[string]float64
	errs     map[string]error
}

func (f *fakeHe3) He3Balance(_ context.Context, agentID string) (float64, error) {
	if err := f.errs[agentID]; err != nil {
		return 0, err
	}
	return f.balances[agentID], nil
}

func progression(agentID string, total float64) model.AgentProgression {
	return model.AgentProgression{AgentID: agentID, ResourceScore: total, TotalScore: total}
}

func TestRankByProgressionPermutation(t *testing.T) {
	source := &fakeProgressions{records: map[string]model.AgentProgression{
		"a": progression("a", 10),
		"b": progression("b", 30),
		"c": progression("c", 20),
	}}
	engine := NewEngine(source, nil, 7_000_000, 2, nil)

	ranked, err := engine.RankByProgression(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranked) != 3 {
		t.Fatalf("entry count: %d", len(ranked))
	}

	seen := make(map[int]bool)
	for _, entry := range ranked {
		seen[entry.Rank] = true
	}
	for want := 1; want <= 3; want++ {
		if !seen[want] {
			t.Fatalf("rank %d missing: %+v", want, ranked)
		}
	}

	if ranked[0].AgentID != "b" || ranked[0].Rank != 1 {
		t.Fatalf("rank 1 should be b: %+v", ranked[0])
	}
	if ranked[2].AgentID != "a" {
		t.Fatalf("rank 3 should be a: %+v", ranked[2])
	}
}

func TestRankByProgressionStableTies(t *testing.T) {
	source := &fakeProgressions{records: map[string]model.AgentProgression{
		"first":  progression("first", 10),
		"second": progression("second", 10),
	}}
	engine := NewEngine(source, nil, 7_000_000, 2, nil)

	ranked, err := engine.RankByProgression(context.Background(), []string{"first", "second"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Equal totals keep roster order.
	if ranked[0].AgentID != "first" || ranked[1].AgentID != "second" {
		t.Fatalf("tie order not stable: %+v", ranked)
	}
}

func TestRankByProgressionUnresolvableAgentFails(t *testing.T) {
	source := &fakeProgressions{
		records: map[string]model.AgentProgression{"a": progression("a", 10)},
		errs:    map[string]error{"ghost": model.ErrAddressNotFound},
	}
	engine := NewEngine(source, nil, 7_000_000, 2, nil)

	if _, err := engine.RankByProgression(context.Background(), []string{"a", "ghost"}); !errors.Is(err, model.ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound, got %v", err)
	}
}

func TestRankByHe3OmitsFailedAgents(t *testing.T) {
	he3 := &fakeHe3{
		balances: map[string]float64{"a": 0, "b": 100},
		errs:     map[string]error{"c": errors.New("rpc down")},
	}
	engine := NewEngine(nil, he3, 7_000_000, 2, nil)

	ranked, err := engine.RankByHe3(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// c's failed fetch omits it entirely; a still ranks with zero balance.
	if len(ranked) != 2 {
		t.Fatalf("entry count: %d", len(ranked))
	}
	if ranked[0].AgentID != "b" || ranked[0].Rank != 1 {
		t.Fatalf("rank 1 should be b: %+v", ranked[0])
	}
	if ranked[1].AgentID != "a" || ranked[1].Rank != 2 {
		t.Fatalf("rank 2 should be a: %+v", ranked[1])
	}
}

func TestProgressToGoalClamped(t *testing.T) {
	he3 := &fakeHe3{balances: map[string]float64{"a": 3_500_000, "b": 10_000_000}}
	engine := NewEngine(nil, he3, 7_000_000, 2, nil)

	ranked, err := engine.RankByHe3(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, entry := range ranked {
		switch entry.AgentID {
		case "a":
			if entry.ProgressToGoal != 50 {
				t.Fatalf("a progress: %v", entry.ProgressToGoal)
			}
		case "b":
			if entry.ProgressToGoal != 100 {
				t.Fatalf("b progress should clamp at 100: %v", entry.ProgressToGoal)
			}
		}
	}
}

func TestBattleScoreBlend(t *testing.T) {
	d := model.BattleData{He3Balance: 50, ActivityPositions: 5}

	// Half the He3 max, full path, full activity:
	// 0.5*0.5 + 0.3*1 + 0.2*1 = 0.75 → 75.
	score := BattleScore(d, 80, 100, 80, 5)
	if score != 75 {
		t.Fatalf("battle score: %v", score)
	}

	// Zero maxima contribute nothing instead of dividing by zero.
	if got := BattleScore(d, 0, 0, 0, 0); got != 0 {
		t.Fatalf("zero maxima score: %v", got)
	}
}
