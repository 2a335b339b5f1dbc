package model

import "time"

// File represents a node in the drive tree: either a regular file or a folder.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
type File struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	IsFolder    bool      `json:"is_folder"`
	ParentID    *string   `json:"parent_id"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	StoragePath string    `json:"storage_path"`
	IsDeleted   bool      `json:"is_deleted"`
	CreatedAt   time.Time `json:"created_at"`
	ModifiedAt  time.Time `json:"modified_at"`

	// IsFavorite is derived per request from the favorites relation.
	// It is never persisted on the files table.
	IsFavorite bool `json:"is_favorite"`
}
