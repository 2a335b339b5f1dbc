package model

import "time"

// FileVersion is a historical snapshot of a file's prior blob reference,
// created whenever the file's content is replaced. Version numbers increase
// monotonically per file.
type FileVersion struct {
	ID            string    `json:"id"`
	FileID        string    `json:"file_id"`
	VersionNumber int       `json:"version_number"`
	StoragePath   string    `json:"storage_path"`
	AuthorID      string    `json:"author_id"`
	CreatedAt     time.Time `json:"created_at"`
}
