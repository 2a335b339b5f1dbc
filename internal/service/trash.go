package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"driveapi/internal/model"
	"driveapi/internal/repository"
	"driveapi/internal/storage"
)

// TrashService manages the soft-delete lifecycle: trashing, restoring and
// permanently purging nodes.
type TrashService interface {
	// SoftDelete moves a node to the trash. Only the node itself is flagged;
	// children keep their own state and reappear with it on restore.
	SoftDelete(ctx context.Context, ownerID, id string) error

	// Restore returns a trashed node to the active set.
	Restore(ctx context.Context, ownerID, id string) error

	// Purge permanently removes a trashed node: metadata row first, then the
	// blob for regular files. Versions and favorites go with the row via
	// cascading constraints.
	Purge(ctx context.Context, ownerID, id string) error

	// List returns the owner's trashed nodes, most recently modified first.
	List(ctx context.Context, ownerID string) ([]model.File, error)
}

type trashService struct {
	store storage.Storage
	files repository.FileRepository
}

// NewTrashService constructs a new TrashService.
func NewTrashService(store storage.Storage, files repository.FileRepository) TrashService {
	return &trashService{store: store, files: files}
}

func (s *trashService) SoftDelete(ctx context.Context, ownerID, id string) error {
	f, err := s.lookup(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if f.IsDeleted {
		return ErrNotFound
	}
	return s.files.SetDeleted(ctx, id, true)
}

func (s *trashService) Restore(ctx context.Context, ownerID, id string) error {
	f, err := s.lookup(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if !f.IsDeleted {
		return ErrNotFound
	}
	return s.files.SetDeleted(ctx, id, false)
}

func (s *trashService) Purge(ctx context.Context, ownerID, id string) error {
	f, err := s.lookup(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if !f.IsDeleted {
		return ErrNotFound
	}

	// Metadata goes first. A dangling blob is invisible garbage; a dangling
	// row would advertise content that no longer exists.
	if err := s.files.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete metadata: %w", err)
	}
	if !f.IsFolder && f.StoragePath != "" {
		if err := s.store.Delete(ctx, f.StoragePath); err != nil {
			return fmt.Errorf("delete blob: %w", err)
		}
	}
	return nil
}

func (s *trashService) List(ctx context.Context, ownerID string) ([]model.File, error) {
	return s.files.ListTrashed(ctx, ownerID)
}

// lookup fetches a node regardless of deletion state, hiding other owners'
// nodes behind ErrNotFound.
func (s *trashService) lookup(ctx context.Context, ownerID, id string) (*model.File, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	f, err := s.files.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if f.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return f, nil
}
