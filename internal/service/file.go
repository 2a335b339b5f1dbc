package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"driveapi/internal/model"
	"driveapi/internal/repository"
	"driveapi/internal/storage"
)

// UploadInput describes one incoming blob.
type UploadInput struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// UploadResult reports what one upload did: created a new file, or archived
// the previous content of an existing one as a version.
type UploadResult struct {
	File      *model.File `json:"file"`
	Versioned bool        `json:"versioned"`
}

// BatchItemResult is the per-file outcome of a multi-file upload. Failures are
// reported in place; they never abort the rest of the batch.
type BatchItemResult struct {
	Name      string      `json:"name"`
	File      *model.File `json:"file,omitempty"`
	Versioned bool        `json:"versioned,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// FileService defines the upload/versioning controller plus the single-node
// operations (folder creation, rename, move, download, storage usage).
type FileService interface {
	// Upload stores the blob first, then either inserts a new file row or,
	// when a non-deleted file with the same name already exists in the target
	// folder, archives that file's current content as a new version and
	// points the row at the fresh blob.
	Upload(ctx context.Context, ownerID string, folderID *string, in UploadInput) (*UploadResult, error)

	// UploadBatch processes inputs sequentially with a continue-on-error
	// policy, returning one result per input.
	UploadBatch(ctx context.Context, ownerID string, folderID *string, ins []UploadInput) []BatchItemResult

	// CreateFolder inserts a folder node under parentID (nil means root).
	CreateFolder(ctx context.Context, ownerID, name string, parentID *string) (*model.File, error)

	// Get returns a single active node owned by ownerID.
	Get(ctx context.Context, ownerID, id string) (*model.File, error)

	// Rename changes a node's name.
	Rename(ctx context.Context, ownerID, id, newName string) error

	// Move re-parents a node. The new parent must be one of the owner's
	// folders; moving a folder into its own subtree is rejected.
	Move(ctx context.Context, ownerID, id string, newParentID *string) error

	// Download streams a file's current content.
	Download(ctx context.Context, ownerID, id string) (io.ReadCloser, *model.File, error)

	// PresignURL returns a time-limited public URL for a file's content.
	PresignURL(ctx context.Context, ownerID, id string) (string, error)

	// StorageUsage totals the bytes of the owner's active regular files.
	StorageUsage(ctx context.Context, ownerID string) (int64, error)
}

type fileService struct {
	store     storage.Storage
	files     repository.FileRepository
	versions  repository.VersionRepository
	urlExpiry time.Duration

	now func() time.Time
}

// NewFileService constructs a new FileService.
func NewFileService(store storage.Storage, files repository.FileRepository, versions repository.VersionRepository, urlExpiry time.Duration) FileService {
	return &fileService{
		store:     store,
		files:     files,
		versions:  versions,
		urlExpiry: urlExpiry,
		now:       time.Now,
	}
}

func (s *fileService) Upload(ctx context.Context, ownerID string, folderID *string, in UploadInput) (*UploadResult, error) {
	if in.Reader == nil {
		return nil, ErrReaderNil
	}
	if in.Name == "" {
		return nil, ErrNameRequired
	}

	now := s.now().UTC()
	key := fmt.Sprintf("%s/%d-%s", ownerID, now.UnixMilli(), in.Name)

	// Blob first. No metadata row may ever point at an unwritten blob.
	if _, err := s.store.Put(ctx, key, in.Reader, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: in.ContentType,
		Metadata:    map[string]string{"original-filename": in.Name},
	}); err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	// Collision detection is scoped to (owner, folder, name): the same name
	// elsewhere in the account is a different file, not a new version.
	existing, err := s.files.FindActiveByName(ctx, ownerID, folderID, in.Name)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, s.rollbackBlob(ctx, key, err)
	}

	if existing != nil {
		if err := s.archiveCurrent(ctx, existing, ownerID, now); err != nil {
			return nil, s.rollbackBlob(ctx, key, err)
		}
		existing.StoragePath = key
		existing.Size = in.Size
		existing.ContentType = in.ContentType
		existing.ModifiedAt = now
		if err := s.files.Update(ctx, existing); err != nil {
			return nil, s.rollbackBlob(ctx, key, err)
		}
		return &UploadResult{File: existing, Versioned: true}, nil
	}

	created, err := s.files.Create(ctx, &model.File{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Name:        in.Name,
		ParentID:    folderID,
		Size:        in.Size,
		ContentType: in.ContentType,
		StoragePath: key,
		CreatedAt:   now,
		ModifiedAt:  now,
	})
	if err != nil {
		return nil, s.rollbackBlob(ctx, key, err)
	}
	return &UploadResult{File: created}, nil
}

// archiveCurrent snapshots a file's current blob reference as its next
// version. Version numbers are max(existing)+1, never a constant.
func (s *fileService) archiveCurrent(ctx context.Context, f *model.File, authorID string, now time.Time) error {
	next, err := s.versions.NextVersionNumber(ctx, f.ID)
	if err != nil {
		return fmt.Errorf("next version number: %w", err)
	}
	_, err = s.versions.Create(ctx, &model.FileVersion{
		ID:            uuid.New().String(),
		FileID:        f.ID,
		VersionNumber: next,
		StoragePath:   f.StoragePath,
		AuthorID:      authorID,
		CreatedAt:     now,
	})
	if err != nil {
		return fmt.Errorf("archive version: %w", err)
	}
	return nil
}

// rollbackBlob compensates a metadata failure by deleting the already-written
// blob, keeping the store free of orphans.
func (s *fileService) rollbackBlob(ctx context.Context, key string, cause error) error {
	if delErr := s.store.Delete(ctx, key); delErr != nil {
		return fmt.Errorf("metadata write failed: %v; rollback delete failed: %v", cause, delErr)
	}
	return fmt.Errorf("metadata write failed: %w", cause)
}

func (s *fileService) UploadBatch(ctx context.Context, ownerID string, folderID *string, ins []UploadInput) []BatchItemResult {
	results := make([]BatchItemResult, 0, len(ins))
	for _, in := range ins {
		item := BatchItemResult{Name: in.Name}
		res, err := s.Upload(ctx, ownerID, folderID, in)
		if err != nil {
			item.Error = err.Error()
		} else {
			item.File = res.File
			item.Versioned = res.Versioned
		}
		results = append(results, item)
	}
	return results
}

func (s *fileService) CreateFolder(ctx context.Context, ownerID, name string, parentID *string) (*model.File, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if parentID != nil {
		if err := s.requireFolder(ctx, ownerID, *parentID); err != nil {
			return nil, err
		}
	}

	now := s.now().UTC()
	return s.files.Create(ctx, &model.File{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Name:        name,
		IsFolder:    true,
		ParentID:    parentID,
		ContentType: "folder",
		CreatedAt:   now,
		ModifiedAt:  now,
	})
}

// requireFolder verifies that id is one of ownerID's active folders.
func (s *fileService) requireFolder(ctx context.Context, ownerID, id string) error {
	f, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if !f.IsFolder {
		return ErrNotAFolder
	}
	return nil
}

func (s *fileService) Get(ctx context.Context, ownerID, id string) (*model.File, error) {
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
	// Foreign and trashed nodes are indistinguishable from missing ones.
	if f.OwnerID != ownerID || f.IsDeleted {
		return nil, ErrNotFound
	}
	return f, nil
}

func (s *fileService) Rename(ctx context.Context, ownerID, id, newName string) error {
	if newName == "" {
		return ErrNameRequired
	}
	f, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return err
	}
	f.Name = newName
	f.ModifiedAt = s.now().UTC()
	return s.files.Update(ctx, f)
}

func (s *fileService) Move(ctx context.Context, ownerID, id string, newParentID *string) error {
	f, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if newParentID != nil {
		if *newParentID == id {
			return ErrInvalidMove
		}
		if err := s.requireFolder(ctx, ownerID, *newParentID); err != nil {
			return err
		}
		// Walking the target's ancestry keeps the tree acyclic: a folder may
		// never become a descendant of itself.
		if f.IsFolder {
			if err := s.ensureNotDescendant(ctx, id, *newParentID); err != nil {
				return err
			}
		}
	}
	f.ParentID = newParentID
	f.ModifiedAt = s.now().UTC()
	return s.files.Update(ctx, f)
}

func (s *fileService) ensureNotDescendant(ctx context.Context, folderID, targetID string) error {
	visited := make(map[string]struct{})
	for current := targetID; current != ""; {
		if current == folderID {
			return ErrInvalidMove
		}
		if _, seen := visited[current]; seen {
			return ErrCycleDetected
		}
		visited[current] = struct{}{}

		node, err := s.files.FindByID(ctx, current)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return err
		}
		if node.ParentID == nil {
			return nil
		}
		current = *node.ParentID
	}
	return nil
}

func (s *fileService) Download(ctx context.Context, ownerID, id string) (io.ReadCloser, *model.File, error) {
	f, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, nil, err
	}
	if f.IsFolder {
		return nil, nil, ErrIsFolder
	}
	rc, _, err := s.store.Get(ctx, f.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("download from storage: %w", err)
	}
	return rc, f, nil
}

func (s *fileService) PresignURL(ctx context.Context, ownerID, id string) (string, error) {
	f, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return "", err
	}
	if f.IsFolder {
		return "", ErrIsFolder
	}
	return s.store.PresignGet(ctx, f.StoragePath, s.urlExpiry)
}

func (s *fileService) StorageUsage(ctx context.Context, ownerID string) (int64, error) {
	return s.files.SumActiveSize(ctx, ownerID)
}
