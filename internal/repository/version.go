package repository

import (
	"context"

	"driveapi/internal/model"
)

// VersionRepository defines data access for file version history.
type VersionRepository interface {
	// Create inserts a new version row and returns the stored record.
	Create(ctx context.Context, v *model.FileVersion) (*model.FileVersion, error)

	// FindByID returns a version by its ID. Returns sql.ErrNoRows when absent.
	FindByID(ctx context.Context, id string) (*model.FileVersion, error)

	// ListByFile returns all versions of a file, newest first.
	ListByFile(ctx context.Context, fileID string) ([]model.FileVersion, error)

	// NextVersionNumber returns max(version_number)+1 for the file,
	// or 1 when the file has no versions yet.
	NextVersionNumber(ctx context.Context, fileID string) (int, error)
}
