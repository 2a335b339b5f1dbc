package postgres

import (
	"context"
	"database/sql"

	"driveapi/internal/repository"
)

// FavoritePostgres is a PostgreSQL implementation of repository.FavoriteRepository.
type FavoritePostgres struct {
	db *sql.DB
}

// NewFavoritePostgres creates a new FavoritePostgres repository.
func NewFavoritePostgres(db *sql.DB) *FavoritePostgres {
	return &FavoritePostgres{db: db}
}

var _ repository.FavoriteRepository = (*FavoritePostgres)(nil)

// Insert adds a favorite row. ON CONFLICT DO NOTHING makes concurrent
// double-toggles resolve to one of the two set states instead of an error.
func (r *FavoritePostgres) Insert(ctx context.Context, ownerID, fileID string) (bool, error) {
	const q = `
		INSERT INTO favorites (owner_id, file_id, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT (owner_id, file_id) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, q, ownerID, fileID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete removes a favorite row; a missing row is not an error.
func (r *FavoritePostgres) Delete(ctx context.Context, ownerID, fileID string) error {
	const q = `DELETE FROM favorites WHERE owner_id = $1 AND file_id = $2`
	res, err := r.db.ExecContext(ctx, q, ownerID, fileID)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}

// ListFileIDs returns the owner's favorited file IDs.
func (r *FavoritePostgres) ListFileIDs(ctx context.Context, ownerID string) ([]string, error) {
	const q = `SELECT file_id FROM favorites WHERE owner_id = $1`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
