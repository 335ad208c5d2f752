package photos

import "context"

// Repo defines persistence operations for photos.
type Repo interface {
	Create(ctx context.Context, photo Photo) error
	// GetByIDAndUser returns ErrNotFound when the photo does not exist or is
	// owned by a different user.
	GetByIDAndUser(ctx context.Context, photoID, userID string) (Photo, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Photo, error)
	Delete(ctx context.Context, photoID, userID string) error
}
