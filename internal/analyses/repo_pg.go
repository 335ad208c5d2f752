package analyses

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PGRepo implements Repo using Postgres. The analyses table carries a
// unique constraint on photo_id, which backstops the one-analysis-per-
// photo rule under concurrent writers.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, analysis Analysis) error {
	const query = `
INSERT INTO analyses (id, photo_id, user_context, location_info, historical_context, full_response, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.ExecContext(ctx, query,
		analysis.ID,
		analysis.PhotoID,
		analysis.UserContext,
		analysis.LocationInfo,
		analysis.HistoricalContext,
		analysis.FullResponse,
		analysis.CreatedAt,
		analysis.UpdatedAt,
	)
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *PGRepo) GetByPhotoID(ctx context.Context, photoID string) (Analysis, error) {
	const query = `
SELECT id, photo_id, user_context, location_info, historical_context, full_response, created_at, updated_at
FROM analyses
WHERE photo_id = $1
LIMIT 1`
	var analysis Analysis
	var userContext sql.NullString
	err := r.DB.QueryRowContext(ctx, query, photoID).Scan(
		&analysis.ID,
		&analysis.PhotoID,
		&userContext,
		&analysis.LocationInfo,
		&analysis.HistoricalContext,
		&analysis.FullResponse,
		&analysis.CreatedAt,
		&analysis.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Analysis{}, ErrNotFound
		}
		return Analysis{}, err
	}
	if userContext.Valid {
		analysis.UserContext = userContext.String
	}
	return analysis, nil
}

func (r *PGRepo) Update(ctx context.Context, analysis Analysis) error {
	const query = `
UPDATE analyses
SET user_context = $1, location_info = $2, historical_context = $3, full_response = $4, updated_at = $5
WHERE photo_id = $6`
	res, err := r.DB.ExecContext(ctx, query,
		analysis.UserContext,
		analysis.LocationInfo,
		analysis.HistoricalContext,
		analysis.FullResponse,
		analysis.UpdatedAt,
		analysis.PhotoID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) DeleteByPhotoID(ctx context.Context, photoID string) error {
	const query = `DELETE FROM analyses WHERE photo_id = $1`
	_, err := r.DB.ExecContext(ctx, query, photoID)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
