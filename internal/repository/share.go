package repository

import (
	"context"

	"driveapi/internal/model"
)

// ShareRepository defines data access for share grants.
type ShareRepository interface {
	// Create inserts a new share row and returns the stored record.
	Create(ctx context.Context, s *model.Share) (*model.Share, error)

	// Exists reports whether the file is already shared with the user.
	Exists(ctx context.Context, fileID, sharedWith string) (bool, error)

	// ListSharedWith returns all files shared with the given user,
	// joined with their share metadata, newest grants first.
	ListSharedWith(ctx context.Context, userID string) ([]model.SharedFile, error)
}

// UserRepository resolves identities from the profile table maintained by the
// external identity provider.
type UserRepository interface {
	// FindIDByEmail returns the user ID registered under the given email.
	// Returns sql.ErrNoRows when no profile matches.
	FindIDByEmail(ctx context.Context, email string) (string, error)
}
