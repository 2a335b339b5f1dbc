package service

import (
	"context"

	"driveapi/internal/model"
	"driveapi/internal/repository"
)

// Breadcrumb is the ordered ancestor path of a node, root-most first.
// Partial is set when a lookup failed midway: the path then holds only the
// suffix of the chain that could be resolved, so callers can tell "at root"
// apart from "chain broken".
type Breadcrumb struct {
	Path    []model.File `json:"path"`
	Partial bool         `json:"partial"`
}

// TreeService resolves folder ancestor chains for breadcrumb display.
type TreeService interface {
	// Breadcrumbs returns the path from the root down to id. An empty id
	// yields an empty path. A corrupted parent chain that revisits a node
	// fails with ErrCycleDetected.
	Breadcrumbs(ctx context.Context, id string) (*Breadcrumb, error)
}

type treeService struct {
	files repository.FileRepository
}

// NewTreeService constructs a new TreeService.
func NewTreeService(files repository.FileRepository) TreeService {
	return &treeService{files: files}
}

func (s *treeService) Breadcrumbs(ctx context.Context, id string) (*Breadcrumb, error) {
	bc := &Breadcrumb{Path: make([]model.File, 0)}
	if id == "" {
		return bc, nil
	}

	visited := make(map[string]struct{})
	for current := id; current != ""; {
		if _, seen := visited[current]; seen {
			return nil, ErrCycleDetected
		}
		visited[current] = struct{}{}

		// Both not-found and upstream failures truncate the chain rather
		// than failing the whole resolution; Partial tells the caller the
		// path is a suffix, not the full ancestry.
		f, err := s.files.FindByID(ctx, current)
		if err != nil {
			bc.Partial = true
			return bc, nil
		}

		bc.Path = append([]model.File{*f}, bc.Path...)
		if f.ParentID == nil {
			break
		}
		current = *f.ParentID
	}

	return bc, nil
}
