package analyses

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory Repo for dev mode and tests.
type MemoryRepo struct {
	mu      sync.RWMutex
	byPhoto map[string]Analysis
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byPhoto: map[string]Analysis{}}
}

func (r *MemoryRepo) Create(ctx context.Context, analysis Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byPhoto[analysis.PhotoID]; ok {
		return ErrDuplicate
	}
	r.byPhoto[analysis.PhotoID] = analysis
	return nil
}

func (r *MemoryRepo) GetByPhotoID(ctx context.Context, photoID string) (Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	analysis, ok := r.byPhoto[photoID]
	if !ok {
		return Analysis{}, ErrNotFound
	}
	return analysis, nil
}

func (r *MemoryRepo) Update(ctx context.Context, analysis Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byPhoto[analysis.PhotoID]; !ok {
		return ErrNotFound
	}
	r.byPhoto[analysis.PhotoID] = analysis
	return nil
}

func (r *MemoryRepo) DeleteByPhotoID(ctx context.Context, photoID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byPhoto, photoID)
	return nil
}
