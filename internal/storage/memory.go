package storage

import (
	"context"
	"sync"

	"github.com/sentimentlab/reviewpulse/internal/models"
)

type MemoryStorage struct {
	mu      sync.RWMutex
	records []*models.AnalysisRecord
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) SaveAnalysis(ctx context.Context, record *models.AnalysisRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, record)
	return nil
}

// ListAnalyses returns up to limit records, most recent first. A limit of
// zero or less returns everything.
func (s *MemoryStorage) ListAnalyses(ctx context.Context, limit int) ([]*models.AnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.records)
	if limit <= 0 || limit > n {
		limit = n
	}

	result := make([]*models.AnalysisRecord, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		result = append(result, s.records[i])
	}
	return result, nil
}

func (s *MemoryStorage) CountByAction(ctx context.Context) (map[models.ActionCode]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[models.ActionCode]int64)
	for _, r := range s.records {
		counts[r.ActionCode]++
	}
	return counts, nil
}

func (s *MemoryStorage) Close() error {
	// Nothing to close for in-memory storage
	return nil
}
