package analyses

import (
	"context"
	"errors"

	"photomemory-backend/internal/photos"
)

// Gateway adapts the analyses repo to the narrow interface the photos
// package consumes.
type Gateway struct {
	Repo Repo
}

func (g Gateway) SummaryByPhotoID(ctx context.Context, photoID string) (photos.AnalysisSummary, bool, error) {
	analysis, err := g.Repo.GetByPhotoID(ctx, photoID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return photos.AnalysisSummary{}, false, nil
		}
		return photos.AnalysisSummary{}, false, err
	}
	return photos.AnalysisSummary{
		ID:                analysis.ID,
		LocationInfo:      analysis.LocationInfo,
		HistoricalContext: analysis.HistoricalContext,
		UserContext:       analysis.UserContext,
		CreatedAt:         analysis.CreatedAt,
	}, true, nil
}

func (g Gateway) DeleteByPhotoID(ctx context.Context, photoID string) error {
	return g.Repo.DeleteByPhotoID(ctx, photoID)
}
