package repository

import "context"

// FavoriteRepository defines data access for the (owner, file) favorites relation.
type FavoriteRepository interface {
	// Insert adds a favorite row if absent, using a conflict-safe insert.
	// It reports whether a new row was actually inserted, so callers can
	// implement toggle semantics without a separate existence check.
	Insert(ctx context.Context, ownerID, fileID string) (inserted bool, err error)

	// Delete removes a favorite row. It returns nil if the row did not exist.
	Delete(ctx context.Context, ownerID, fileID string) error

	// ListFileIDs returns the IDs of all files the owner has favorited.
	ListFileIDs(ctx context.Context, ownerID string) ([]string, error)
}
