package storage

import (
	"context"

	"github.com/sentimentlab/reviewpulse/internal/models"
)

// Storage keeps the local history of analysis outcomes. History is a
// convenience view; the remote telemetry log is the system of record.
type Storage interface {
	SaveAnalysis(ctx context.Context, record *models.AnalysisRecord) error
	ListAnalyses(ctx context.Context, limit int) ([]*models.AnalysisRecord, error)
	CountByAction(ctx context.Context) (map[models.ActionCode]int64, error)
	Close() error
}
