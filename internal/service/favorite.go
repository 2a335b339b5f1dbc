package service

import (
	"context"
	"database/sql"
	"errors"

	"driveapi/internal/repository"
)

// FavoriteService flips per-user favorite marks.
type FavoriteService interface {
	// Toggle marks the node as a favorite if it is not one, or unmarks it if
	// it is, and reports the resulting state. The insert-or-delete decision
	// is made by the database so concurrent toggles cannot double-insert.
	Toggle(ctx context.Context, ownerID, fileID string) (favorited bool, err error)
}

type favoriteService struct {
	files     repository.FileRepository
	favorites repository.FavoriteRepository
}

// NewFavoriteService constructs a new FavoriteService.
func NewFavoriteService(files repository.FileRepository, favorites repository.FavoriteRepository) FavoriteService {
	return &favoriteService{files: files, favorites: favorites}
}

func (s *favoriteService) Toggle(ctx context.Context, ownerID, fileID string) (bool, error) {
	if fileID == "" {
		return false, ErrIDRequired
	}
	f, err := s.files.FindByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrNotFound
		}
		return false, err
	}
	if f.OwnerID != ownerID || f.IsDeleted {
		return false, ErrNotFound
	}

	inserted, err := s.favorites.Insert(ctx, ownerID, fileID)
	if err != nil {
		return false, err
	}
	if inserted {
		return true, nil
	}
	// The mark already existed, so this toggle removes it.
	if err := s.favorites.Delete(ctx, ownerID, fileID); err != nil {
		return false, err
	}
	return false, nil
}
