package postgres

import (
	"context"
	"database/sql"

	"driveapi/internal/model"
	"driveapi/internal/repository"
)

// FilePostgres is a PostgreSQL implementation of repository.FileRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type FilePostgres struct {
	db *sql.DB
}

// NewFilePostgres creates a new FilePostgres repository.
func NewFilePostgres(db *sql.DB) *FilePostgres {
	return &FilePostgres{db: db}
}

var _ repository.FileRepository = (*FilePostgres)(nil)

const fileColumns = `id, owner_id, name, is_folder, parent_id, size, content_type, storage_path, is_deleted, created_at, modified_at`

func scanFile(row interface{ Scan(...any) error }) (*model.File, error) {
	var f model.File
	var parent sql.NullString
	if err := row.Scan(
		&f.ID,
		&f.OwnerID,
		&f.Name,
		&f.IsFolder,
		&parent,
		&f.Size,
		&f.ContentType,
		&f.StoragePath,
		&f.IsDeleted,
		&f.CreatedAt,
		&f.ModifiedAt,
	); err != nil {
		return nil, err
	}
	if parent.Valid {
		f.ParentID = &parent.String
	}
	return &f, nil
}

func nullableID(id *string) any {
	if id == nil {
		return nil
	}
	return *id
}

// Create inserts a new file row and returns the stored record.
func (r *FilePostgres) Create(ctx context.Context, f *model.File) (*model.File, error) {
	const q = `
		INSERT INTO files (id, owner_id, name, is_folder, parent_id, size, content_type, storage_path, is_deleted, created_at, modified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + fileColumns
	row := r.db.QueryRowContext(ctx, q,
		f.ID,
		f.OwnerID,
		f.Name,
		f.IsFolder,
		nullableID(f.ParentID),
		f.Size,
		f.ContentType,
		f.StoragePath,
		f.IsDeleted,
		f.CreatedAt,
		f.ModifiedAt,
	)
	return scanFile(row)
}

// FindByID fetches a single file by its ID, regardless of its deleted state.
func (r *FilePostgres) FindByID(ctx context.Context, id string) (*model.File, error) {
	const q = `SELECT ` + fileColumns + ` FROM files WHERE id = $1`
	return scanFile(r.db.QueryRowContext(ctx, q, id))
}

// FindActiveByName fetches the non-deleted file with the given name directly
// under parentID. The parent match is exact: NULL for root, never a fallback.
func (r *FilePostgres) FindActiveByName(ctx context.Context, ownerID string, parentID *string, name string) (*model.File, error) {
	if parentID == nil {
		const q = `SELECT ` + fileColumns + ` FROM files
			WHERE owner_id = $1 AND name = $2 AND is_deleted = FALSE AND parent_id IS NULL`
		return scanFile(r.db.QueryRowContext(ctx, q, ownerID, name))
	}
	const q = `SELECT ` + fileColumns + ` FROM files
		WHERE owner_id = $1 AND name = $2 AND is_deleted = FALSE AND parent_id = $3`
	return scanFile(r.db.QueryRowContext(ctx, q, ownerID, name, *parentID))
}

// ListChildren returns all non-deleted rows under parentID for the owner.
func (r *FilePostgres) ListChildren(ctx context.Context, ownerID string, parentID *string) ([]model.File, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if parentID == nil {
		const q = `SELECT ` + fileColumns + ` FROM files
			WHERE owner_id = $1 AND is_deleted = FALSE AND parent_id IS NULL`
		rows, err = r.db.QueryContext(ctx, q, ownerID)
	} else {
		const q = `SELECT ` + fileColumns + ` FROM files
			WHERE owner_id = $1 AND is_deleted = FALSE AND parent_id = $2`
		rows, err = r.db.QueryContext(ctx, q, ownerID, *parentID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFiles(rows)
}

// ListTrashed returns all soft-deleted rows for the owner, newest change first.
func (r *FilePostgres) ListTrashed(ctx context.Context, ownerID string) ([]model.File, error) {
	const q = `SELECT ` + fileColumns + ` FROM files
		WHERE owner_id = $1 AND is_deleted = TRUE
		ORDER BY modified_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFiles(rows)
}

func collectFiles(rows *sql.Rows) ([]model.File, error) {
	items := make([]model.File, 0)
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Update writes the mutable columns of an existing row.
func (r *FilePostgres) Update(ctx context.Context, f *model.File) error {
	const q = `
		UPDATE files
		SET name = $2, parent_id = $3, size = $4, content_type = $5, storage_path = $6, modified_at = $7
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, q,
		f.ID,
		f.Name,
		nullableID(f.ParentID),
		f.Size,
		f.ContentType,
		f.StoragePath,
		f.ModifiedAt,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetDeleted flips the soft-delete flag only; every other column is untouched
// so that delete-then-restore is a field-level no-op.
func (r *FilePostgres) SetDeleted(ctx context.Context, id string, deleted bool) error {
	const q = `UPDATE files SET is_deleted = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, deleted)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a row permanently. Dependent version, favorite and share rows
// are removed by the schema's ON DELETE CASCADE constraints.
func (r *FilePostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM files WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}

// SumActiveSize totals the bytes of the owner's active regular files.
func (r *FilePostgres) SumActiveSize(ctx context.Context, ownerID string) (int64, error) {
	const q = `SELECT COALESCE(SUM(size), 0) FROM files
		WHERE owner_id = $1 AND is_deleted = FALSE AND is_folder = FALSE`
	var total int64
	if err := r.db.QueryRowContext(ctx, q, ownerID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
