package storage

import (
	"context"
	"fmt"
	"testing"

	"github.com/sentimentlab/reviewpulse/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage_SaveAndList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	for i := 0; i < 5; i++ {
		record := &models.AnalysisRecord{
			ID:         fmt.Sprintf("rec-%d", i),
			Timestamp:  int64(1000 + i),
			ReviewText: "some review",
			Label:      models.LabelPositive,
			ActionCode: models.ActionAskReferral,
		}
		require.NoError(t, s.SaveAnalysis(ctx, record))
	}

	records, err := s.ListAnalyses(ctx, 3)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "rec-4", records[0].ID, "most recent first")
	assert.Equal(t, "rec-2", records[2].ID)

	all, err := s.ListAnalyses(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestMemoryStorage_CountByAction(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	actions := []models.ActionCode{
		models.ActionAskReferral,
		models.ActionAskReferral,
		models.ActionOfferCoupon,
	}
	for i, code := range actions {
		require.NoError(t, s.SaveAnalysis(ctx, &models.AnalysisRecord{
			ID:         fmt.Sprintf("rec-%d", i),
			ActionCode: code,
		}))
	}

	counts, err := s.CountByAction(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[models.ActionAskReferral])
	assert.Equal(t, int64(1), counts[models.ActionOfferCoupon])
	assert.Equal(t, int64(0), counts[models.ActionRequestFeedback])
}
