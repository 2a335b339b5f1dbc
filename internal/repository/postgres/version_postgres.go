package postgres

import (
	"context"
	"database/sql"

	"driveapi/internal/model"
	"driveapi/internal/repository"
)

// VersionPostgres is a PostgreSQL implementation of repository.VersionRepository.
type VersionPostgres struct {
	db *sql.DB
}

// NewVersionPostgres creates a new VersionPostgres repository.
func NewVersionPostgres(db *sql.DB) *VersionPostgres {
	return &VersionPostgres{db: db}
}

var _ repository.VersionRepository = (*VersionPostgres)(nil)

const versionColumns = `id, file_id, version_number, storage_path, author_id, created_at`

func scanVersion(row interface{ Scan(...any) error }) (*model.FileVersion, error) {
	var v model.FileVersion
	if err := row.Scan(
		&v.ID,
		&v.FileID,
		&v.VersionNumber,
		&v.StoragePath,
		&v.AuthorID,
		&v.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &v, nil
}

// Create inserts a new version row and returns the stored record.
func (r *VersionPostgres) Create(ctx context.Context, v *model.FileVersion) (*model.FileVersion, error) {
	const q = `
		INSERT INTO file_versions (id, file_id, version_number, storage_path, author_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + versionColumns
	row := r.db.QueryRowContext(ctx, q,
		v.ID,
		v.FileID,
		v.VersionNumber,
		v.StoragePath,
		v.AuthorID,
		v.CreatedAt,
	)
	return scanVersion(row)
}

// FindByID fetches a single version by its ID.
func (r *VersionPostgres) FindByID(ctx context.Context, id string) (*model.FileVersion, error) {
	const q = `SELECT ` + versionColumns + ` FROM file_versions WHERE id = $1`
	return scanVersion(r.db.QueryRowContext(ctx, q, id))
}

// ListByFile returns all versions of a file, newest first.
func (r *VersionPostgres) ListByFile(ctx context.Context, fileID string) ([]model.FileVersion, error) {
	const q = `SELECT ` + versionColumns + ` FROM file_versions
		WHERE file_id = $1
		ORDER BY version_number DESC`
	rows, err := r.db.QueryContext(ctx, q, fileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.FileVersion, 0)
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// NextVersionNumber returns max(version_number)+1, starting at 1.
func (r *VersionPostgres) NextVersionNumber(ctx context.Context, fileID string) (int, error) {
	const q = `SELECT COALESCE(MAX(version_number), 0) + 1 FROM file_versions WHERE file_id = $1`
	var next int
	if err := r.db.QueryRowContext(ctx, q, fileID).Scan(&next); err != nil {
		return 0, err
	}
	return next, nil
}
