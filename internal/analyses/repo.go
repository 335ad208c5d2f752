package analyses

import "context"

// Repo abstracts analysis persistence.
type Repo interface {
	Create(ctx context.Context, analysis Analysis) error
	GetByPhotoID(ctx context.Context, photoID string) (Analysis, error)
	Update(ctx context.Context, analysis Analysis) error
	DeleteByPhotoID(ctx context.Context, photoID string) error
}
