package model

import "time"

// Permission is the access level a share grants.
type Permission string

const (
	PermissionView Permission = "view"
	PermissionEdit Permission = "edit"
)

// Share grants another user visibility of a single file.
// At most one share row exists per (file, shared_with) pair.
type Share struct {
	ID         string     `json:"id"`
	FileID     string     `json:"file_id"`
	SharedBy   string     `json:"shared_by"`
	SharedWith string     `json:"shared_with"`
	Permission Permission `json:"permission"`
	CreatedAt  time.Time  `json:"created_at"`
}

// SharedFile is a share joined with the file it grants access to,
// as returned by the shared-with-me listing.
type SharedFile struct {
	ShareID    string     `json:"share_id"`
	Permission Permission `json:"permission"`
	SharedBy   string     `json:"shared_by"`
	File       File       `json:"file"`
}
