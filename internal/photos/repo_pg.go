package photos

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, photo Photo) error {
	const query = `
INSERT INTO photos (id, user_id, filename, original_filename, storage_url, file_size, mime_type, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.ExecContext(ctx, query,
		photo.ID,
		photo.UserID,
		photo.Filename,
		photo.OriginalFilename,
		photo.StorageURL,
		photo.FileSize,
		photo.MimeType,
		photo.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByIDAndUser(ctx context.Context, photoID, userID string) (Photo, error) {
	const query = `
SELECT id, user_id, filename, original_filename, storage_url, file_size, mime_type, created_at
FROM photos
WHERE id = $1 AND user_id = $2
LIMIT 1`
	var photo Photo
	var fileSize sql.NullInt64
	var mimeType sql.NullString
	err := r.DB.QueryRowContext(ctx, query, photoID, userID).Scan(
		&photo.ID,
		&photo.UserID,
		&photo.Filename,
		&photo.OriginalFilename,
		&photo.StorageURL,
		&fileSize,
		&mimeType,
		&photo.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Photo{}, ErrNotFound
		}
		return Photo{}, err
	}
	if fileSize.Valid {
		photo.FileSize = fileSize.Int64
	}
	if mimeType.Valid {
		photo.MimeType = mimeType.String
	}
	return photo, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Photo, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, user_id, filename, original_filename, storage_url, file_size, mime_type, created_at
FROM photos
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Photo{}
	for rows.Next() {
		var photo Photo
		var fileSize sql.NullInt64
		var mimeType sql.NullString
		if err := rows.Scan(
			&photo.ID,
			&photo.UserID,
			&photo.Filename,
			&photo.OriginalFilename,
			&photo.StorageURL,
			&fileSize,
			&mimeType,
			&photo.CreatedAt,
		); err != nil {
			return nil, err
		}
		if fileSize.Valid {
			photo.FileSize = fileSize.Int64
		}
		if mimeType.Valid {
			photo.MimeType = mimeType.String
		}
		out = append(out, photo)
	}
	return out, rows.Err()
}

func (r *PGRepo) Delete(ctx context.Context, photoID, userID string) error {
	const query = `DELETE FROM photos WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, photoID, userID)
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
