package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"driveapi/internal/model"
	"driveapi/internal/repository"
)

// ShareService grants other users access to a node and lists what has been
// shared with the caller.
type ShareService interface {
	// Grant shares fileID with the user identified by email. Sharing the
	// same node with the same user twice is rejected.
	Grant(ctx context.Context, ownerID, fileID, email string, permission model.Permission) (*model.Share, error)

	// SharedWithMe lists active nodes other users have shared with userID,
	// newest grant first.
	SharedWithMe(ctx context.Context, userID string) ([]model.SharedFile, error)
}

type shareService struct {
	files  repository.FileRepository
	shares repository.ShareRepository
	users  repository.UserRepository

	now func() time.Time
}

// NewShareService constructs a new ShareService.
func NewShareService(files repository.FileRepository, shares repository.ShareRepository, users repository.UserRepository) ShareService {
	return &shareService{files: files, shares: shares, users: users, now: time.Now}
}

func (s *shareService) Grant(ctx context.Context, ownerID, fileID, email string, permission model.Permission) (*model.Share, error) {
	if fileID == "" {
		return nil, ErrIDRequired
	}
	if permission != model.PermissionView && permission != model.PermissionEdit {
		return nil, ErrInvalidPermission
	}

	f, err := s.files.FindByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if f.OwnerID != ownerID || f.IsDeleted {
		return nil, ErrNotFound
	}

	recipientID, err := s.users.FindIDByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	exists, err := s.shares.Exists(ctx, fileID, recipientID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyShared
	}

	return s.shares.Create(ctx, &model.Share{
		ID:         uuid.New().String(),
		FileID:     fileID,
		SharedBy:   ownerID,
		SharedWith: recipientID,
		Permission: permission,
		CreatedAt:  s.now().UTC(),
	})
}

func (s *shareService) SharedWithMe(ctx context.Context, userID string) ([]model.SharedFile, error) {
	return s.shares.ListSharedWith(ctx, userID)
}
