package photos

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"photomemory-backend/internal/shared/storage/object"
	"photomemory-backend/internal/shared/telemetry"
)

// AnalysisSummary is the slice of an analysis that photo listings embed.
type AnalysisSummary struct {
	ID                string    `json:"id"`
	LocationInfo      string    `json:"locationInfo"`
	HistoricalContext string    `json:"historicalContext"`
	UserContext       string    `json:"userContext,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// AnalysisGateway is the narrow view of the analyses feature the photos
// package needs. The analyses package provides the implementation.
type AnalysisGateway interface {
	SummaryByPhotoID(ctx context.Context, photoID string) (AnalysisSummary, bool, error)
	DeleteByPhotoID(ctx context.Context, photoID string) error
}

// Service contains business logic for photos.
type Service struct {
	Store    object.ObjectStore
	Repo     Repo
	Analyses AnalysisGateway
}

// Upload saves the image to object storage and records the photo.
func (s *Service) Upload(ctx context.Context, userId, fileName string, r io.Reader) (Photo, error) {
	if strings.TrimSpace(fileName) == "" {
		return Photo{}, ErrInvalidInput
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, userId, fileName, r)
	if err != nil {
		return Photo{}, err
	}

	if !strings.HasPrefix(mimeType, "image/") {
		if delErr := s.Store.Delete(ctx, storageKey); delErr != nil {
			telemetry.Warn("photos.upload.cleanup_failed", map[string]any{
				"storage_key": storageKey,
				"error":       delErr.Error(),
			})
		}
		return Photo{}, ErrNotAnImage
	}

	photo := Photo{
		ID:               uuid.NewString(),
		UserID:           userId,
		Filename:         storageKey,
		OriginalFilename: fileName,
		StorageURL:       s.Store.URL(storageKey),
		FileSize:         size,
		MimeType:         mimeType,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, photo); err != nil {
		return Photo{}, err
	}

	return photo, nil
}

// Get returns a single photo owned by the user.
func (s *Service) Get(ctx context.Context, photoID, userID string) (Photo, error) {
	if photoID == "" {
		return Photo{}, ErrInvalidInput
	}
	if userID == "" {
		return Photo{}, errors.New("user id required")
	}
	return s.Repo.GetByIDAndUser(ctx, photoID, userID)
}

// List returns the user's photos, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Photo, error) {
	if userID == "" {
		return nil, errors.New("user id required")
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Summary returns the photo's analysis summary, if one exists.
func (s *Service) Summary(ctx context.Context, photoID string) (AnalysisSummary, bool, error) {
	if s.Analyses == nil {
		return AnalysisSummary{}, false, nil
	}
	return s.Analyses.SummaryByPhotoID(ctx, photoID)
}

// Delete removes the stored object, the photo row, and any analysis.
func (s *Service) Delete(ctx context.Context, photoID, userID string) error {
	photo, err := s.Repo.GetByIDAndUser(ctx, photoID, userID)
	if err != nil {
		return err
	}

	if err := s.Store.Delete(ctx, photo.Filename); err != nil {
		telemetry.Warn("photos.delete.object_failed", map[string]any{
			"photo_id":    photo.ID,
			"storage_key": photo.Filename,
			"error":       err.Error(),
		})
	}

	if s.Analyses != nil {
		if err := s.Analyses.DeleteByPhotoID(ctx, photo.ID); err != nil {
			telemetry.Warn("photos.delete.analysis_failed", map[string]any{
				"photo_id": photo.ID,
				"error":    err.Error(),
			})
		}
	}

	return s.Repo.Delete(ctx, photoID, userID)
}
