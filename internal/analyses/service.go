package analyses

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"photomemory-backend/internal/imagefetch"
	"photomemory-backend/internal/photos"
	"photomemory-backend/internal/shared/metrics"
	"photomemory-backend/internal/shared/telemetry"
	"photomemory-backend/internal/vision"
)

// Service orchestrates photo analysis: fetch the image, ask the vision
// model, split the response into sections, and persist the result.
type Service struct {
	Repo    Repo
	Photos  photos.Repo
	Fetcher imagefetch.Fetcher
	Vision  vision.Client

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// lockFor returns the per-photo mutex, creating it on first use.
// Serializing per photo keeps concurrent analyze calls for the same
// photo from racing past the idempotency check; the database unique
// constraint backstops multi-process deployments.
func (s *Service) lockFor(photoID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks == nil {
		s.locks = map[string]*sync.Mutex{}
	}
	lock, ok := s.locks[photoID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[photoID] = lock
	}
	return lock
}

// AnalyzeOne analyzes a single photo owned by the user. Re-running with
// the same context returns the stored analysis without calling the
// model; a different context re-analyzes and overwrites in place.
func (s *Service) AnalyzeOne(ctx context.Context, photoID, userID, userContext string) (View, error) {
	if strings.TrimSpace(photoID) == "" {
		return View{}, ErrInvalidInput
	}

	photo, err := s.Photos.GetByIDAndUser(ctx, photoID, userID)
	if err != nil {
		return View{}, err
	}

	normalized := strings.TrimSpace(userContext)

	lock := s.lockFor(photo.ID)
	lock.Lock()
	defer lock.Unlock()

	existing, err := s.Repo.GetByPhotoID(ctx, photo.ID)
	found := err == nil
	if err != nil && !errors.Is(err, ErrNotFound) {
		return View{}, err
	}

	if found && existing.UserContext == normalized {
		metrics.IncAnalysisReused()
		telemetry.Info("analysis.reused", map[string]any{
			"photo_id":    photo.ID,
			"analysis_id": existing.ID,
		})
		return toView(existing), nil
	}

	data, mediaType, err := s.Fetcher.Fetch(ctx, photo.StorageURL)
	if err != nil {
		metrics.IncAnalysisFailed()
		return View{}, err
	}

	prompt := vision.BuildPrompt(normalized)

	started := time.Now()
	raw, err := s.Vision.Describe(ctx, vision.Image{Data: data, MediaType: mediaType}, prompt)
	if err != nil {
		metrics.IncAnalysisFailed()
		return View{}, err
	}
	metrics.ObserveAnalysisDurationMs(float64(time.Since(started).Milliseconds()))

	locationInfo, historicalContext := extractSections(raw)
	now := time.Now().UTC()

	analysis := Analysis{
		ID:                existing.ID,
		PhotoID:           photo.ID,
		UserContext:       normalized,
		LocationInfo:      locationInfo,
		HistoricalContext: historicalContext,
		FullResponse:      raw,
		CreatedAt:         existing.CreatedAt,
		UpdatedAt:         now,
	}

	if found {
		if err := s.Repo.Update(ctx, analysis); err != nil {
			metrics.IncAnalysisFailed()
			return View{}, err
		}
	} else {
		analysis.ID = uuid.NewString()
		analysis.CreatedAt = now
		err := s.Repo.Create(ctx, analysis)
		if errors.Is(err, ErrDuplicate) {
			// Another process won the race. Keep its row's identity and
			// overwrite the content.
			current, getErr := s.Repo.GetByPhotoID(ctx, photo.ID)
			if getErr != nil {
				metrics.IncAnalysisFailed()
				return View{}, getErr
			}
			analysis.ID = current.ID
			analysis.CreatedAt = current.CreatedAt
			err = s.Repo.Update(ctx, analysis)
		}
		if err != nil {
			metrics.IncAnalysisFailed()
			return View{}, err
		}
	}

	metrics.IncAnalysisPerformed()
	telemetry.Info("analysis.performed", map[string]any{
		"photo_id":    photo.ID,
		"analysis_id": analysis.ID,
		"duration_ms": time.Since(started).Milliseconds(),
	})

	return toView(analysis), nil
}

// AnalyzeBatch analyzes each photo in order. A failure on one photo is
// recorded in its result item and does not stop the rest.
func (s *Service) AnalyzeBatch(ctx context.Context, photoIDs []string, userID, userContext string) (BatchResult, error) {
	if len(photoIDs) == 0 {
		return BatchResult{}, ErrInvalidInput
	}

	metrics.AddBatchItems(len(photoIDs))

	result := BatchResult{
		Results: make([]BatchItem, 0, len(photoIDs)),
		Total:   len(photoIDs),
	}

	for _, photoID := range photoIDs {
		view, err := s.AnalyzeOne(ctx, photoID, userID, userContext)
		if err != nil {
			telemetry.Warn("analysis.batch_item_failed", map[string]any{
				"photo_id": photoID,
				"error":    err.Error(),
			})
			result.Results = append(result.Results, BatchItem{
				PhotoID: photoID,
				Error:   err.Error(),
			})
			result.Failed++
			continue
		}
		result.Results = append(result.Results, BatchItem{
			PhotoID:  photoID,
			Success:  true,
			Analysis: &view,
		})
		result.Succeeded++
	}

	return result, nil
}

// GetByPhotoID returns the stored analysis for a photo the user owns.
func (s *Service) GetByPhotoID(ctx context.Context, photoID, userID string) (View, error) {
	if _, err := s.Photos.GetByIDAndUser(ctx, photoID, userID); err != nil {
		return View{}, err
	}
	analysis, err := s.Repo.GetByPhotoID(ctx, photoID)
	if err != nil {
		return View{}, err
	}
	return toView(analysis), nil
}
