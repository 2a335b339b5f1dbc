package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"driveapi/internal/model"
	"driveapi/internal/repository"
)

// Filter selects a category of entries in a folder listing.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterImage     Filter = "image"
	FilterDocument  Filter = "document"
	FilterPDF       Filter = "pdf"
	FilterVideo     Filter = "video"
	FilterAudio     Filter = "audio"
	FilterFolders   Filter = "folders"
	FilterFiles     Filter = "files"
	FilterRecent    Filter = "recent"
	FilterFavorites Filter = "favorites"
	FilterLarge     Filter = "large"
)

// Sort selects the ordering of a folder listing.
type Sort string

const (
	SortNewest   Sort = "newest"
	SortOldest   Sort = "oldest"
	SortNameAsc  Sort = "name-asc"
	SortNameDesc Sort = "name-desc"
	SortSizeAsc  Sort = "size-asc"
	SortSizeDesc Sort = "size-desc"
	SortType     Sort = "type"
)

const (
	recentWindow   = 7 * 24 * time.Hour
	largeThreshold = 10 * 1024 * 1024
)

// ListQuery is the immutable view state for one listing request: folder scope,
// free-text query, filter selector and sort selector, applied in that order.
type ListQuery struct {
	OwnerID  string
	FolderID *string // nil means root
	Query    string
	Filter   Filter
	Sort     Sort
}

// ListResult carries the visible entries plus the pre-filter total so callers
// can render "showing X of Y".
type ListResult struct {
	Items   []model.File `json:"data"`
	Matched int          `json:"matched"`
	Total   int          `json:"total"`
}

// ListingService produces the annotated, filtered and sorted view of a folder.
type ListingService interface {
	List(ctx context.Context, q ListQuery) (*ListResult, error)
}

type listingService struct {
	files     repository.FileRepository
	favorites repository.FavoriteRepository

	// now is swappable for deterministic recent-filter tests.
	now func() time.Time
}

// NewListingService constructs a new ListingService.
func NewListingService(files repository.FileRepository, favorites repository.FavoriteRepository) ListingService {
	return &listingService{files: files, favorites: favorites, now: time.Now}
}

func (s *listingService) List(ctx context.Context, q ListQuery) (*ListResult, error) {
	if q.OwnerID == "" {
		return nil, ErrIDRequired
	}

	items, err := s.files.ListChildren(ctx, q.OwnerID, q.FolderID)
	if err != nil {
		return nil, err
	}

	favIDs, err := s.favorites.ListFileIDs(ctx, q.OwnerID)
	if err != nil {
		return nil, err
	}
	favSet := make(map[string]struct{}, len(favIDs))
	for _, id := range favIDs {
		favSet[id] = struct{}{}
	}
	for i := range items {
		_, items[i].IsFavorite = favSet[items[i].ID]
	}

	total := len(items)

	if q.Query != "" {
		needle := strings.ToLower(q.Query)
		items = keep(items, func(f model.File) bool {
			return strings.Contains(strings.ToLower(f.Name), needle)
		})
	}

	items = applyFilter(items, q.Filter, s.now())
	sortFiles(items, q.Sort)

	return &ListResult{Items: items, Matched: len(items), Total: total}, nil
}

func keep(items []model.File, pred func(model.File) bool) []model.File {
	out := items[:0:0]
	for _, f := range items {
		if pred(f) {
			out = append(out, f)
		}
	}
	return out
}

func applyFilter(items []model.File, filter Filter, now time.Time) []model.File {
	switch filter {
	case FilterImage:
		return keep(items, func(f model.File) bool { return hasTypePrefix(f, "image/") })
	case FilterDocument:
		return keep(items, isDocument)
	case FilterPDF:
		return keep(items, func(f model.File) bool {
			return strings.EqualFold(f.ContentType, "application/pdf")
		})
	case FilterVideo:
		return keep(items, func(f model.File) bool { return hasTypePrefix(f, "video/") })
	case FilterAudio:
		return keep(items, func(f model.File) bool { return hasTypePrefix(f, "audio/") })
	case FilterFolders:
		return keep(items, func(f model.File) bool { return f.IsFolder })
	case FilterFiles:
		return keep(items, func(f model.File) bool { return !f.IsFolder })
	case FilterRecent:
		cutoff := now.Add(-recentWindow)
		return keep(items, func(f model.File) bool { return f.CreatedAt.After(cutoff) })
	case FilterFavorites:
		return keep(items, func(f model.File) bool { return f.IsFavorite })
	case FilterLarge:
		return keep(items, func(f model.File) bool { return f.Size > largeThreshold })
	default:
		// "all" and unrecognized selectors apply no filtering.
		return items
	}
}

func hasTypePrefix(f model.File, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(f.ContentType), prefix)
}

func isDocument(f model.File) bool {
	ct := strings.ToLower(f.ContentType)
	for _, frag := range []string{"word", "excel", "powerpoint", "text"} {
		if strings.Contains(ct, frag) {
			return true
		}
	}
	return ct == "application/msword" ||
		ct == "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}

// sortFiles orders items by the given selector. Every ordering is total:
// comparisons that would tie fall back to name ascending.
func sortFiles(items []model.File, by Sort) {
	less := func(a, b model.File) bool { return a.CreatedAt.After(b.CreatedAt) } // newest default

	switch by {
	case SortOldest:
		less = func(a, b model.File) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortNameAsc:
		less = func(a, b model.File) bool { return a.Name < b.Name }
	case SortNameDesc:
		less = func(a, b model.File) bool { return a.Name > b.Name }
	case SortSizeAsc:
		less = func(a, b model.File) bool { return a.Size < b.Size }
	case SortSizeDesc:
		less = func(a, b model.File) bool { return a.Size > b.Size }
	case SortType:
		less = func(a, b model.File) bool {
			if a.IsFolder != b.IsFolder {
				return a.IsFolder
			}
			return a.Name < b.Name
		}
	case SortNewest:
		// default comparator
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if less(a, b) {
			return true
		}
		if less(b, a) {
			return false
		}
		return a.Name < b.Name
	})
}
