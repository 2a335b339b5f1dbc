package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"driveapi/internal/model"
	"driveapi/internal/repository"
)

// VersionService exposes a file's version history and restores old content.
type VersionService interface {
	// List returns a file's archived versions, newest first.
	List(ctx context.Context, ownerID, fileID string) ([]model.FileVersion, error)

	// Restore makes versionID's content current again. The content being
	// replaced is archived first, so restoring is itself undoable.
	Restore(ctx context.Context, ownerID, fileID, versionID string) (*model.File, error)
}

type versionService struct {
	files    repository.FileRepository
	versions repository.VersionRepository

	now func() time.Time
}

// NewVersionService constructs a new VersionService.
func NewVersionService(files repository.FileRepository, versions repository.VersionRepository) VersionService {
	return &versionService{files: files, versions: versions, now: time.Now}
}

func (s *versionService) List(ctx context.Context, ownerID, fileID string) ([]model.FileVersion, error) {
	if _, err := s.owned(ctx, ownerID, fileID); err != nil {
		return nil, err
	}
	return s.versions.ListByFile(ctx, fileID)
}

func (s *versionService) Restore(ctx context.Context, ownerID, fileID, versionID string) (*model.File, error) {
	f, err := s.owned(ctx, ownerID, fileID)
	if err != nil {
		return nil, err
	}
	if f.IsFolder {
		return nil, ErrIsFolder
	}

	v, err := s.versions.FindByID(ctx, versionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVersionNotFound
		}
		return nil, err
	}
	if v.FileID != fileID {
		return nil, ErrVersionNotFound
	}

	now := s.now().UTC()
	next, err := s.versions.NextVersionNumber(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("next version number: %w", err)
	}
	if _, err := s.versions.Create(ctx, &model.FileVersion{
		ID:            uuid.New().String(),
		FileID:        fileID,
		VersionNumber: next,
		StoragePath:   f.StoragePath,
		AuthorID:      ownerID,
		CreatedAt:     now,
	}); err != nil {
		return nil, fmt.Errorf("archive current content: %w", err)
	}

	f.StoragePath = v.StoragePath
	f.ModifiedAt = now
	if err := s.files.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *versionService) owned(ctx context.Context, ownerID, fileID string) (*model.File, error) {
	if fileID == "" {
		return nil, ErrIDRequired
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
	return f, nil
}
