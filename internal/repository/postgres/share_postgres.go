package postgres

import (
	"context"
	"database/sql"

	"driveapi/internal/model"
	"driveapi/internal/repository"
)

// SharePostgres is a PostgreSQL implementation of repository.ShareRepository.
type SharePostgres struct {
	db *sql.DB
}

// NewSharePostgres creates a new SharePostgres repository.
func NewSharePostgres(db *sql.DB) *SharePostgres {
	return &SharePostgres{db: db}
}

var _ repository.ShareRepository = (*SharePostgres)(nil)

// Create inserts a new share row and returns the stored record.
func (r *SharePostgres) Create(ctx context.Context, s *model.Share) (*model.Share, error) {
	const q = `
		INSERT INTO shares (id, file_id, shared_by, shared_with, permission, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, file_id, shared_by, shared_with, permission, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		s.ID,
		s.FileID,
		s.SharedBy,
		s.SharedWith,
		s.Permission,
		s.CreatedAt,
	)
	var out model.Share
	if err := row.Scan(
		&out.ID,
		&out.FileID,
		&out.SharedBy,
		&out.SharedWith,
		&out.Permission,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// Exists reports whether the file is already shared with the user.
func (r *SharePostgres) Exists(ctx context.Context, fileID, sharedWith string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM shares WHERE file_id = $1 AND shared_with = $2)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, fileID, sharedWith).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ListSharedWith joins shares with their files for the shared-with-me view.
func (r *SharePostgres) ListSharedWith(ctx context.Context, userID string) ([]model.SharedFile, error) {
	const q = `
		SELECT s.id, s.permission, s.shared_by,
		       f.id, f.owner_id, f.name, f.is_folder, f.parent_id, f.size, f.content_type,
		       f.storage_path, f.is_deleted, f.created_at, f.modified_at
		FROM shares s
		JOIN files f ON f.id = s.file_id
		WHERE s.shared_with = $1 AND f.is_deleted = FALSE
		ORDER BY s.created_at DESC, s.id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.SharedFile, 0)
	for rows.Next() {
		var sf model.SharedFile
		var parent sql.NullString
		if err := rows.Scan(
			&sf.ShareID,
			&sf.Permission,
			&sf.SharedBy,
			&sf.File.ID,
			&sf.File.OwnerID,
			&sf.File.Name,
			&sf.File.IsFolder,
			&parent,
			&sf.File.Size,
			&sf.File.ContentType,
			&sf.File.StoragePath,
			&sf.File.IsDeleted,
			&sf.File.CreatedAt,
			&sf.File.ModifiedAt,
		); err != nil {
			return nil, err
		}
		if parent.Valid {
			sf.File.ParentID = &parent.String
		}
		items = append(items, sf)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

// FindIDByEmail resolves an email to a user ID via the profile table.
func (r *UserPostgres) FindIDByEmail(ctx context.Context, email string) (string, error) {
	const q = `SELECT id FROM user_profiles WHERE email = $1`
	var id string
	if err := r.db.QueryRowContext(ctx, q, email).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}
