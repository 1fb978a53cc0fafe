package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"he3scope/internal/model"
)

// JsonlStorage appends reports to a JSONL file.
type JsonlStorage struct {
	path string
	mu   sync.Mutex
}

func NewJsonlStorage(path string) *JsonlStorage {
	return &JsonlStorage{path: path}
}

// PutProgressionBatch appends progression records as JSON lines.
func (s *JsonlStorage) PutProgressionBatch(progressions []model.AgentProgression) error {
	return appendLines(s, "progression", progressions)
}

// PutRanking appends leaderboard entries as JSON lines.
func (s *JsonlStorage) PutRanking(entries []model.RankedAgent) error {
	return appendLines(s, "ranking", entries)
}

// PutHe3Ranking appends victory-token leaderboard entries as JSON lines.
func (s *JsonlStorage) PutHe3Ranking(entries []model.He3RankedAgent) error {
	return appendLines(s, "he3 ranking", entries)
}

func appendLines[T any](s *JsonlStorage, kind string, records []T) error {
	if len(records) == 0 {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, record := range records {
		line, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshal %s record: %w", kind, err)
		}
		if _, err := writer.Write(line); err != nil {
			return fmt.Errorf("write %s record: %w", kind, err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("write newline: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	return nil
}
