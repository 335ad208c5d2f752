package photos

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores photos in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Photo
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Photo)}
}

func (r *MemoryRepo) Create(ctx context.Context, photo Photo) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[photo.ID] = photo
	return nil
}

func (r *MemoryRepo) GetByIDAndUser(ctx context.Context, photoID, userID string) (Photo, error) {
	if err := ctx.Err(); err != nil {
		return Photo{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	photo, ok := r.byID[photoID]
	if !ok || photo.UserID != userID {
		return Photo{}, ErrNotFound
	}
	return photo, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Photo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = 50
	}

	r.mu.RLock()
	var out []Photo
	for _, photo := range r.byID {
		if photo.UserID == userID {
			out = append(out, photo)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if offset >= len(out) {
		return []Photo{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, photoID, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	photo, ok := r.byID[photoID]
	if !ok || photo.UserID != userID {
		return ErrNotFound
	}
	delete(r.byID, photoID)
	return nil
}
