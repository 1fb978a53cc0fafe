package profiler

import (
	"sort"

	"he3scope/internal/game"
	"he3scope/internal/model"
)

const dominantCount = 3

// AnalyzeResourceFocus computes the percentage share of each resource in
// the agent's total holdings, the top dominant resources, and the ratio
// between sequential resources in each production chain.
func AnalyzeResourceFocus(balances model.ResourceSnapshot) (model.ResourceFocus, error) {
	total := balances.Total()
	if total == 0 {
		return model.ResourceFocus{}, model.ErrNoData
	}

	percentages := make(map[string]float64, len(balances))
	for symbol, amount := range balances {
		if amount == 0 {
			continue
		}
		percentages[symbol] = round2(amount / total * 100)
	}

	type entry struct {
		symbol string
		pct    float64
	}
	entries := make([]entry, 0, len(percentages))
	for symbol, pct := range percentages {
		entries = append(entries, entry{symbol, pct})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].pct != entries[j].pct {
			return entries[i].pct > entries[j].pct
		}
		return entries[i].symbol < entries[j].symbol
	})

	dominant := make([]string, 0, dominantCount)
	for _, e := range entries {
		if len(dominant) == dominantCount {
			break
		}
		dominant = append(dominant, e.symbol)
	}

	ratios := make(map[string]float64)
	for _, chain := range [][]string{game.GrapheneChain, game.YttriumChain} {
		for i := 0; i+1 < len(chain); i++ {
			prev, next := chain[i], chain[i+1]
			if balances[prev] > 0 && balances[next] > 0 {
				ratios[next+"/"+prev] = round2(balances[next] / balances[prev])
			}
		}
	}

	return model.ResourceFocus{
		Percentages: percentages,
		Dominant:    dominant,
		StageRatios: ratios,
	}, nil
}
