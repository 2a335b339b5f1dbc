package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"driveapi/internal/http/middleware"
	"driveapi/internal/model"
	"driveapi/internal/service"
)

// Services bundles the application services the HTTP layer depends on.
type Services struct {
	Files     service.FileService
	Listing   service.ListingService
	Tree      service.TreeService
	Trash     service.TrashService
	Favorites service.FavoriteService
	Shares    service.ShareService
	Versions  service.VersionService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app. Handlers stay
// thin: parse, delegate, translate errors.
func RegisterRoutes(app *fiber.App, db *sql.DB, svcs Services) {
	// API reference endpoints
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/", middleware.Auth())

	api.Get("/files", ListFiles(svcs.Listing))
	api.Post("/files", UploadFiles(svcs.Files))
	api.Post("/folders", CreateFolder(svcs.Files))
	api.Get("/files/:id", GetFile(svcs.Files))
	api.Patch("/files/:id", UpdateFile(svcs.Files))
	api.Delete("/files/:id", SoftDeleteFile(svcs.Trash))
	api.Get("/files/:id/download", DownloadFile(svcs.Files))
	api.Get("/files/:id/url", FileURL(svcs.Files))
	api.Get("/files/:id/breadcrumbs", GetBreadcrumbs(svcs.Files, svcs.Tree))
	api.Get("/files/:id/versions", ListVersions(svcs.Versions))
	api.Post("/files/:id/versions/:versionID/restore", RestoreVersion(svcs.Versions))
	api.Post("/files/:id/favorite", ToggleFavorite(svcs.Favorites))
	api.Post("/files/:id/shares", GrantShare(svcs.Shares))
	api.Get("/shared", ListSharedWithMe(svcs.Shares))
	api.Get("/trash", ListTrash(svcs.Trash))
	api.Post("/trash/:id/restore", RestoreFile(svcs.Trash))
	api.Delete("/trash/:id", PurgeFile(svcs.Trash))
	api.Get("/storage/usage", StorageUsage(svcs.Files))
}

// HealthCheck reports readiness by pinging the database.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a plain liveness check with no dependencies.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// ListFiles returns the contents of a folder (root when folder_id is absent),
// narrowed by q/filter and ordered by sort.
func ListFiles(svc service.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// An explicitly empty folder_id is not the root folder.
		if c.Context().QueryArgs().Has("folder_id") && c.Query("folder_id") == "" {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "folder_id must not be empty")
		}

		q := service.ListQuery{
			OwnerID:  middleware.UserIDFromCtx(c),
			FolderID: optionalIDQuery(c, "folder_id"),
			Query:    c.Query("q"),
			Filter:   service.Filter(c.Query("filter", string(service.FilterAll))),
			Sort:     service.Sort(c.Query("sort", string(service.SortNewest))),
		}

		res, err := svc.List(c.UserContext(), q)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// UploadFiles accepts multipart/form-data with one or more "files" parts and
// an optional folder_id field. Items fail independently.
func UploadFiles(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILES_REQUIRED", "multipart form is required")
		}
		headers := form.File["files"]
		if len(headers) == 0 {
			return writeError(c, fiber.StatusBadRequest, "FILES_REQUIRED", "at least one file is required")
		}

		var folderID *string
		if vals := form.Value["folder_id"]; len(vals) > 0 && vals[0] != "" {
			folderID = &vals[0]
		}

		inputs := make([]service.UploadInput, 0, len(headers))
		for _, fh := range headers {
			f, err := fh.Open()
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
			}
			defer f.Close()

			ct := fh.Header.Get("Content-Type")
			if ct == "" {
				ct = "application/octet-stream"
			}
			inputs = append(inputs, service.UploadInput{
				Name:        fh.Filename,
				ContentType: ct,
				Size:        fh.Size,
				Reader:      f,
			})
		}

		results := svc.UploadBatch(c.UserContext(), middleware.UserIDFromCtx(c), folderID, inputs)

		failed := 0
		for _, r := range results {
			if r.Error != "" {
				failed++
			}
		}
		status := fiber.StatusCreated
		if failed == len(results) {
			status = fiber.StatusInternalServerError
		}
		return c.Status(status).JSON(fiber.Map{"data": results})
	}
}

type createFolderPayload struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id"`
}

// CreateFolder inserts a folder node under parent_id (root when omitted).
func CreateFolder(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p createFolderPayload
		if err := c.BodyParser(&p); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		folder, err := svc.CreateFolder(c.UserContext(), middleware.UserIDFromCtx(c), p.Name, p.ParentID)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(folder)
	}
}

// GetFile returns a single active node owned by the caller.
func GetFile(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		f, err := svc.Get(c.UserContext(), middleware.UserIDFromCtx(c), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(f)
	}
}

// UpdateFile renames and/or moves a node. A present "name" renames; a present
// "parent_id" moves, with JSON null meaning the root.
func UpdateFile(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(c.Body(), &fields); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		userID := middleware.UserIDFromCtx(c)

		if raw, ok := fields["name"]; ok {
			var name string
			if err := json.Unmarshal(raw, &name); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "name must be a string")
			}
			if err := svc.Rename(c.UserContext(), userID, id, name); err != nil {
				return serviceError(c, err)
			}
		}

		if raw, ok := fields["parent_id"]; ok {
			var parentID *string
			if err := json.Unmarshal(raw, &parentID); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "parent_id must be a string or null")
			}
			if err := svc.Move(c.UserContext(), userID, id, parentID); err != nil {
				return serviceError(c, err)
			}
		}

		f, err := svc.Get(c.UserContext(), userID, id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(f)
	}
}

// DownloadFile streams a file's current content.
func DownloadFile(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rc, f, err := svc.Download(c.UserContext(), middleware.UserIDFromCtx(c), id)
		if err != nil {
			return serviceError(c, err)
		}

		c.Set(fiber.HeaderContentType, f.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", f.Name))
		return c.SendStream(rc, int(f.Size))
	}
}

// FileURL returns a time-limited direct download URL.
func FileURL(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		url, err := svc.PresignURL(c.UserContext(), middleware.UserIDFromCtx(c), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"url": url})
	}
}

// GetBreadcrumbs resolves a node's ancestor path for breadcrumb display.
func GetBreadcrumbs(files service.FileService, tree service.TreeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		// Ownership gate first; the chain walk itself is owner-agnostic.
		if _, err := files.Get(c.UserContext(), middleware.UserIDFromCtx(c), id); err != nil {
			return serviceError(c, err)
		}
		bc, err := tree.Breadcrumbs(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(bc)
	}
}

// ListVersions returns a file's archived versions, newest first.
func ListVersions(svc service.VersionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		versions, err := svc.List(c.UserContext(), middleware.UserIDFromCtx(c), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"data": versions})
	}
}

// RestoreVersion makes an archived version's content current again.
func RestoreVersion(svc service.VersionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		versionID := c.Params("versionID")
		if _, err := uuid.Parse(versionID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid version id format")
		}
		f, err := svc.Restore(c.UserContext(), middleware.UserIDFromCtx(c), id, versionID)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(f)
	}
}

// ToggleFavorite flips the caller's favorite mark on a node and reports the
// resulting state.
func ToggleFavorite(svc service.FavoriteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		favorited, err := svc.Toggle(c.UserContext(), middleware.UserIDFromCtx(c), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"favorited": favorited})
	}
}

type grantSharePayload struct {
	Email      string `json:"email"`
	Permission string `json:"permission"`
}

// GrantShare shares a node with another user, resolved by email.
func GrantShare(svc service.ShareService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var p grantSharePayload
		if err := c.BodyParser(&p); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if p.Email == "" {
			return writeError(c, fiber.StatusBadRequest, "EMAIL_REQUIRED", "email is required")
		}

		share, err := svc.Grant(c.UserContext(), middleware.UserIDFromCtx(c), id, p.Email, model.Permission(p.Permission))
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(share)
	}
}

// ListSharedWithMe returns nodes other users have shared with the caller.
func ListSharedWithMe(svc service.ShareService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		shared, err := svc.SharedWithMe(c.UserContext(), middleware.UserIDFromCtx(c))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"data": shared})
	}
}

// SoftDeleteFile moves a node to the trash.
func SoftDeleteFile(svc service.TrashService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.SoftDelete(c.UserContext(), middleware.UserIDFromCtx(c), id); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ListTrash returns the caller's trashed nodes.
func ListTrash(svc service.TrashService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext(), middleware.UserIDFromCtx(c))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"data": items})
	}
}

// RestoreFile returns a trashed node to the active set.
func RestoreFile(svc service.TrashService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Restore(c.UserContext(), middleware.UserIDFromCtx(c), id); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// PurgeFile permanently removes a trashed node and its content.
func PurgeFile(svc service.TrashService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Purge(c.UserContext(), middleware.UserIDFromCtx(c), id); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// StorageUsage totals the bytes of the caller's active files.
func StorageUsage(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		used, err := svc.StorageUsage(c.UserContext(), middleware.UserIDFromCtx(c))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"used_bytes": used})
	}
}

// pathID extracts and validates the :id path parameter.
func pathID(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", err
	}
	return id, nil
}

// optionalIDQuery returns a pointer to the named query parameter, nil when
// absent or empty.
func optionalIDQuery(c *fiber.Ctx, name string) *string {
	v := c.Query(name)
	if v == "" {
		return nil
	}
	return &v
}

// serviceError translates service sentinel errors into the standard error
// envelope, hiding everything else behind a 500.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "file not found")
	case errors.Is(err, service.ErrVersionNotFound):
		return writeError(c, fiber.StatusNotFound, "VERSION_NOT_FOUND", "version not found")
	case errors.Is(err, service.ErrAlreadyShared):
		return writeError(c, fiber.StatusConflict, "ALREADY_SHARED", "file already shared with this user")
	case errors.Is(err, service.ErrUserNotFound):
		return writeError(c, fiber.StatusUnprocessableEntity, "USER_NOT_FOUND", "no user with that email")
	case errors.Is(err, service.ErrInvalidPermission):
		return writeError(c, fiber.StatusUnprocessableEntity, "INVALID_PERMISSION", "permission must be view or edit")
	case errors.Is(err, service.ErrNotAFolder):
		return writeError(c, fiber.StatusUnprocessableEntity, "NOT_A_FOLDER", "target is not a folder")
	case errors.Is(err, service.ErrIsFolder):
		return writeError(c, fiber.StatusUnprocessableEntity, "IS_FOLDER", "folders have no content")
	case errors.Is(err, service.ErrInvalidMove), errors.Is(err, service.ErrCycleDetected):
		return writeError(c, fiber.StatusUnprocessableEntity, "INVALID_MOVE", "cannot move a folder into itself or its subtree")
	case errors.Is(err, service.ErrNameRequired):
		return writeError(c, fiber.StatusBadRequest, "NAME_REQUIRED", "name is required")
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "ID_REQUIRED", "id is required")
	case errors.Is(err, service.ErrReaderNil):
		return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file content is required")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
