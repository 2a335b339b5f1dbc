package repository

import (
	"context"

	"driveapi/internal/model"
)

// FileRepository defines data access for file and folder rows using SQL queries only.
type FileRepository interface {
	// Create inserts a new file row and returns the stored record.
	Create(ctx context.Context, f *model.File) (*model.File, error)

	// FindByID returns a file by its ID, deleted or not.
	FindByID(ctx context.Context, id string) (*model.File, error)

	// FindActiveByName returns the non-deleted file owned by ownerID with the
	// given name directly under parentID (nil parentID means root).
	// Returns sql.ErrNoRows when no such row exists.
	FindActiveByName(ctx context.Context, ownerID string, parentID *string, name string) (*model.File, error)

	// ListChildren returns all non-deleted files owned by ownerID whose parent
	// equals parentID exactly; nil parentID selects root rows (parent IS NULL).
	ListChildren(ctx context.Context, ownerID string, parentID *string) ([]model.File, error)

	// ListTrashed returns all soft-deleted files owned by ownerID,
	// ordered by modified_at descending.
	ListTrashed(ctx context.Context, ownerID string) ([]model.File, error)

	// Update writes the mutable columns of an existing row
	// (name, parent_id, size, content_type, storage_path, modified_at).
	Update(ctx context.Context, f *model.File) error

	// SetDeleted flips the soft-delete flag and touches nothing else.
	SetDeleted(ctx context.Context, id string, deleted bool) error

	// Delete removes a row permanently. It returns nil if the row was deleted
	// or did not exist.
	Delete(ctx context.Context, id string) error

	// SumActiveSize returns the total size in bytes of all non-deleted,
	// non-folder files owned by ownerID.
	SumActiveSize(ctx context.Context, ownerID string) (int64, error)
}
