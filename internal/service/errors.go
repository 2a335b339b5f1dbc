// Package service contains the use cases of the drive core. Each service owns
// one concern (listing, tree resolution, upload/versioning, trash, favorites,
// shares, version history) and depends only on repository and storage
// interfaces.
package service

import "errors"

var (
	ErrIDRequired        = errors.New("id is required")
	ErrNameRequired      = errors.New("name is required")
	ErrReaderNil         = errors.New("reader is nil")
	ErrNotFound          = errors.New("file not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrVersionNotFound   = errors.New("version not found")
	ErrAlreadyShared     = errors.New("file already shared with this user")
	ErrCycleDetected     = errors.New("folder tree cycle detected")
	ErrNotAFolder        = errors.New("target is not a folder")
	ErrIsFolder          = errors.New("operation not applicable to folders")
	ErrInvalidPermission = errors.New("permission must be view or edit")
	ErrInvalidMove       = errors.New("cannot move a folder into itself or its descendants")
)
