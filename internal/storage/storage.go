package storage

import "he3scope/internal/model"

// Storage defines a sink for computed reports.
type Storage interface {
	PutProgressionBatch(progressions []model.AgentProgression) error
	PutRanking(entries []model.RankedAgent) error
	PutHe3Ranking(entries []model.He3RankedAgent) error
}
