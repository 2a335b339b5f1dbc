package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"driveapi/internal/http/middleware"
	"driveapi/internal/model"
	"driveapi/internal/service"
	serviceMocks "driveapi/internal/service/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testUserID = "user-1"

// newTestApp returns a Fiber app whose requests act as testUserID.
func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(middleware.UserIDLocalKey, testUserID)
		return c.Next()
	})
	return app
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListFiles(t *testing.T) {
	mockSvc := new(serviceMocks.MockListingService)
	app := newTestApp()
	app.Get("/files", ListFiles(mockSvc))

	t.Run("success with defaults", func(t *testing.T) {
		expected := &service.ListResult{
			Items:   []model.File{{ID: uuid.New().String(), Name: "a.txt"}},
			Matched: 1,
			Total:   1,
		}
		mockSvc.On("List", mock.Anything, service.ListQuery{
			OwnerID: testUserID,
			Filter:  service.FilterAll,
			Sort:    service.SortNewest,
		}).Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/files", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.ListResult
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result.Items, 1)
		assert.Equal(t, 1, result.Total)
		mockSvc.AssertExpectations(t)
	})

	t.Run("query parameters are forwarded", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, mock.MatchedBy(func(q service.ListQuery) bool {
			return q.FolderID != nil && q.Query == "report" &&
				q.Filter == service.FilterPDF && q.Sort == service.SortSizeDesc
		})).Return(&service.ListResult{Items: []model.File{}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/files?folder_id=d-1&q=report&filter=pdf&sort=size-desc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("explicit empty folder_id is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/files?folder_id=", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_ID", body.Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, mock.Anything).
			Return(nil, errors.New("db fail")).Once()

		req := httptest.NewRequest(http.MethodGet, "/files", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func multipartBody(t *testing.T, folderID string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)
	if folderID != "" {
		require.NoError(t, w.WriteField("folder_id", folderID))
	}
	for name, content := range files {
		part, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = io.Copy(part, strings.NewReader(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func TestUploadFiles(t *testing.T) {
	mockSvc := new(serviceMocks.MockFileService)
	app := newTestApp()
	app.Post("/files", UploadFiles(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("UploadBatch", mock.Anything, testUserID, mock.MatchedBy(func(p *string) bool {
			return p != nil && *p == "d-1"
		}), mock.MatchedBy(func(ins []service.UploadInput) bool {
			return len(ins) == 2
		})).Return([]service.BatchItemResult{
			{Name: "a.txt", File: &model.File{ID: "f-a"}},
			{Name: "b.txt", File: &model.File{ID: "f-b"}, Versioned: true},
		}).Once()

		body, ct := multipartBody(t, "d-1", map[string]string{"a.txt": "aaa", "b.txt": "bbb"})
		req := httptest.NewRequest(http.MethodPost, "/files", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing files", func(t *testing.T) {
		body, ct := multipartBody(t, "", nil)
		req := httptest.NewRequest(http.MethodPost, "/files", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var payload errorPayload
		json.NewDecoder(resp.Body).Decode(&payload)
		assert.Equal(t, "FILES_REQUIRED", payload.Error.Code)
	})

	t.Run("all items failed", func(t *testing.T) {
		mockSvc.On("UploadBatch", mock.Anything, testUserID, (*string)(nil), mock.Anything).
			Return([]service.BatchItemResult{{Name: "a.txt", Error: "storage fail"}}).Once()

		body, ct := multipartBody(t, "", map[string]string{"a.txt": "aaa"})
		req := httptest.NewRequest(http.MethodPost, "/files", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestCreateFolder(t *testing.T) {
	mockSvc := new(serviceMocks.MockFileService)
	app := newTestApp()
	app.Post("/folders", CreateFolder(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("CreateFolder", mock.Anything, testUserID, "Docs", (*string)(nil)).
			Return(&model.File{ID: "d-1", Name: "Docs", IsFolder: true}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/folders",
			strings.NewReader(`{"name":"Docs"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var folder model.File
		json.NewDecoder(resp.Body).Decode(&folder)
		assert.True(t, folder.IsFolder)
		mockSvc.AssertExpectations(t)
	})

	t.Run("parent is not a folder", func(t *testing.T) {
		mockSvc.On("CreateFolder", mock.Anything, testUserID, "Docs", mock.Anything).
			Return(nil, service.ErrNotAFolder).Once()

		req := httptest.NewRequest(http.MethodPost, "/folders",
			strings.NewReader(`{"name":"Docs","parent_id":"f-1"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestGetFile(t *testing.T) {
	mockSvc := new(serviceMocks.MockFileService)
	app := newTestApp()
	app.Get("/files/:id", GetFile(mockSvc))

	fileID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, testUserID, fileID).
			Return(&model.File{ID: fileID, Name: "a.txt"}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/files/"+fileID, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, testUserID, fileID).
			Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/files/"+fileID, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/files/not-a-uuid", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestUpdateFile(t *testing.T) {
	fileID := uuid.New().String()
	parentID := uuid.New().String()

	t.Run("rename", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockFileService)
		app := newTestApp()
		app.Patch("/files/:id", UpdateFile(mockSvc))

		mockSvc.On("Rename", mock.Anything, testUserID, fileID, "renamed.txt").Return(nil).Once()
		mockSvc.On("Get", mock.Anything, testUserID, fileID).
			Return(&model.File{ID: fileID, Name: "renamed.txt"}, nil).Once()

		req := httptest.NewRequest(http.MethodPatch, "/files/"+fileID,
			strings.NewReader(`{"name":"renamed.txt"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("move into folder", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockFileService)
		app := newTestApp()
		app.Patch("/files/:id", UpdateFile(mockSvc))

		mockSvc.On("Move", mock.Anything, testUserID, fileID, mock.MatchedBy(func(p *string) bool {
			return p != nil && *p == parentID
		})).Return(nil).Once()
		mockSvc.On("Get", mock.Anything, testUserID, fileID).
			Return(&model.File{ID: fileID}, nil).Once()

		req := httptest.NewRequest(http.MethodPatch, "/files/"+fileID,
			strings.NewReader(`{"parent_id":"`+parentID+`"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("explicit null moves to root", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockFileService)
		app := newTestApp()
		app.Patch("/files/:id", UpdateFile(mockSvc))

		mockSvc.On("Move", mock.Anything, testUserID, fileID, (*string)(nil)).Return(nil).Once()
		mockSvc.On("Get", mock.Anything, testUserID, fileID).
			Return(&model.File{ID: fileID}, nil).Once()

		req := httptest.NewRequest(http.MethodPatch, "/files/"+fileID,
			strings.NewReader(`{"parent_id":null}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("cycle is rejected", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockFileService)
		app := newTestApp()
		app.Patch("/files/:id", UpdateFile(mockSvc))

		mockSvc.On("Move", mock.Anything, testUserID, fileID, mock.Anything).
			Return(service.ErrInvalidMove).Once()

		req := httptest.NewRequest(http.MethodPatch, "/files/"+fileID,
			strings.NewReader(`{"parent_id":"`+parentID+`"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		var payload errorPayload
		json.NewDecoder(resp.Body).Decode(&payload)
		assert.Equal(t, "INVALID_MOVE", payload.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestDownloadFile(t *testing.T) {
	mockSvc := new(serviceMocks.MockFileService)
	app := newTestApp()
	app.Get("/files/:id/download", DownloadFile(mockSvc))

	fileID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Download", mock.Anything, testUserID, fileID).
			Return(io.NopCloser(strings.NewReader("content")),
				&model.File{ID: fileID, Name: "a.txt", ContentType: "text/plain", Size: 7}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/files/"+fileID+"/download", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "a.txt")

		data, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "content", string(data))
		mockSvc.AssertExpectations(t)
	})

	t.Run("folder has no content", func(t *testing.T) {
		mockSvc.On("Download", mock.Anything, testUserID, fileID).
			Return(nil, nil, service.ErrIsFolder).Once()

		req := httptest.NewRequest(http.MethodGet, "/files/"+fileID+"/download", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestFileURL(t *testing.T) {
	mockSvc := new(serviceMocks.MockFileService)
	app := newTestApp()
	app.Get("/files/:id/url", FileURL(mockSvc))

	fileID := uuid.New().String()
	mockSvc.On("PresignURL", mock.Anything, testUserID, fileID).
		Return("https://minio.local/signed", nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/files/"+fileID+"/url", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, "https://minio.local/signed", body["url"])
	mockSvc.AssertExpectations(t)
}

func TestGetBreadcrumbs(t *testing.T) {
	mockFiles := new(serviceMocks.MockFileService)
	mockTree := new(serviceMocks.MockTreeService)
	app := newTestApp()
	app.Get("/files/:id/breadcrumbs", GetBreadcrumbs(mockFiles, mockTree))

	fileID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		mockFiles.On("Get", mock.Anything, testUserID, fileID).
			Return(&model.File{ID: fileID}, nil).Once()
		mockTree.On("Breadcrumbs", mock.Anything, fileID).
			Return(&service.Breadcrumb{Path: []model.File{{Name: "Docs"}, {ID: fileID, Name: "Q2"}}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/files/"+fileID+"/breadcrumbs", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var bc service.Breadcrumb
		json.NewDecoder(resp.Body).Decode(&bc)
		assert.Len(t, bc.Path, 2)
		assert.False(t, bc.Partial)
		mockFiles.AssertExpectations(t)
		mockTree.AssertExpectations(t)
	})

	t.Run("foreign node is hidden", func(t *testing.T) {
		mockFiles.On("Get", mock.Anything, testUserID, fileID).
			Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/files/"+fileID+"/breadcrumbs", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockFiles.AssertExpectations(t)
	})
}

func TestVersionEndpoints(t *testing.T) {
	fileID := uuid.New().String()
	versionID := uuid.New().String()

	t.Run("list versions", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockVersionService)
		app := newTestApp()
		app.Get("/files/:id/versions", ListVersions(mockSvc))

		mockSvc.On("List", mock.Anything, testUserID, fileID).
			Return([]model.FileVersion{{ID: versionID, VersionNumber: 1}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/files/"+fileID+"/versions", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("restore version", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockVersionService)
		app := newTestApp()
		app.Post("/files/:id/versions/:versionID/restore", RestoreVersion(mockSvc))

		mockSvc.On("Restore", mock.Anything, testUserID, fileID, versionID).
			Return(&model.File{ID: fileID}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/files/"+fileID+"/versions/"+versionID+"/restore", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("restore missing version", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockVersionService)
		app := newTestApp()
		app.Post("/files/:id/versions/:versionID/restore", RestoreVersion(mockSvc))

		mockSvc.On("Restore", mock.Anything, testUserID, fileID, versionID).
			Return(nil, service.ErrVersionNotFound).Once()

		req := httptest.NewRequest(http.MethodPost, "/files/"+fileID+"/versions/"+versionID+"/restore", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestToggleFavorite(t *testing.T) {
	mockSvc := new(serviceMocks.MockFavoriteService)
	app := newTestApp()
	app.Post("/files/:id/favorite", ToggleFavorite(mockSvc))

	fileID := uuid.New().String()

	t.Run("toggled on", func(t *testing.T) {
		mockSvc.On("Toggle", mock.Anything, testUserID, fileID).Return(true, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/files/"+fileID+"/favorite", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]bool
		json.NewDecoder(resp.Body).Decode(&body)
		assert.True(t, body["favorited"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("toggled off", func(t *testing.T) {
		mockSvc.On("Toggle", mock.Anything, testUserID, fileID).Return(false, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/files/"+fileID+"/favorite", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]bool
		json.NewDecoder(resp.Body).Decode(&body)
		assert.False(t, body["favorited"])
		mockSvc.AssertExpectations(t)
	})
}

func TestGrantShare(t *testing.T) {
	fileID := uuid.New().String()

	tests := []struct {
		name       string
		body       string
		setupMocks func(mockSvc *serviceMocks.MockShareService)
		wantStatus int
		wantCode   string
	}{
		{
			name: "success",
			body: `{"email":"bob@example.com","permission":"view"}`,
			setupMocks: func(mockSvc *serviceMocks.MockShareService) {
				mockSvc.On("Grant", mock.Anything, testUserID, fileID, "bob@example.com", model.PermissionView).
					Return(&model.Share{ID: "s-1"}, nil).Once()
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "duplicate",
			body: `{"email":"bob@example.com","permission":"view"}`,
			setupMocks: func(mockSvc *serviceMocks.MockShareService) {
				mockSvc.On("Grant", mock.Anything, testUserID, fileID, "bob@example.com", model.PermissionView).
					Return(nil, service.ErrAlreadyShared).Once()
			},
			wantStatus: http.StatusConflict,
			wantCode:   "ALREADY_SHARED",
		},
		{
			name: "unknown recipient",
			body: `{"email":"ghost@example.com","permission":"edit"}`,
			setupMocks: func(mockSvc *serviceMocks.MockShareService) {
				mockSvc.On("Grant", mock.Anything, testUserID, fileID, "ghost@example.com", model.PermissionEdit).
					Return(nil, service.ErrUserNotFound).Once()
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "USER_NOT_FOUND",
		},
		{
			name:       "missing email",
			body:       `{"permission":"view"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "EMAIL_REQUIRED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(serviceMocks.MockShareService)
			app := newTestApp()
			app.Post("/files/:id/shares", GrantShare(mockSvc))

			if tt.setupMocks != nil {
				tt.setupMocks(mockSvc)
			}

			req := httptest.NewRequest(http.MethodPost, "/files/"+fileID+"/shares",
				strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, _ := app.Test(req)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantCode != "" {
				var payload errorPayload
				json.NewDecoder(resp.Body).Decode(&payload)
				assert.Equal(t, tt.wantCode, payload.Error.Code)
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestTrashEndpoints(t *testing.T) {
	fileID := uuid.New().String()

	t.Run("soft delete", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockTrashService)
		app := newTestApp()
		app.Delete("/files/:id", SoftDeleteFile(mockSvc))

		mockSvc.On("SoftDelete", mock.Anything, testUserID, fileID).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/files/"+fileID, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("list", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockTrashService)
		app := newTestApp()
		app.Get("/trash", ListTrash(mockSvc))

		mockSvc.On("List", mock.Anything, testUserID).
			Return([]model.File{{ID: fileID, IsDeleted: true}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/trash", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("restore", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockTrashService)
		app := newTestApp()
		app.Post("/trash/:id/restore", RestoreFile(mockSvc))

		mockSvc.On("Restore", mock.Anything, testUserID, fileID).Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/trash/"+fileID+"/restore", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("purge", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockTrashService)
		app := newTestApp()
		app.Delete("/trash/:id", PurgeFile(mockSvc))

		mockSvc.On("Purge", mock.Anything, testUserID, fileID).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/trash/"+fileID, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("purge active node", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockTrashService)
		app := newTestApp()
		app.Delete("/trash/:id", PurgeFile(mockSvc))

		mockSvc.On("Purge", mock.Anything, testUserID, fileID).
			Return(service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodDelete, "/trash/"+fileID, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestListSharedWithMe(t *testing.T) {
	mockSvc := new(serviceMocks.MockShareService)
	app := newTestApp()
	app.Get("/shared", ListSharedWithMe(mockSvc))

	mockSvc.On("SharedWithMe", mock.Anything, testUserID).
		Return([]model.SharedFile{
			{ShareID: "s-1", Permission: model.PermissionView, SharedBy: "user-2", File: model.File{ID: "f-1"}},
		}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/shared", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockSvc.AssertExpectations(t)
}

func TestStorageUsage(t *testing.T) {
	mockSvc := new(serviceMocks.MockFileService)
	app := newTestApp()
	app.Get("/storage/usage", StorageUsage(mockSvc))

	mockSvc.On("StorageUsage", mock.Anything, testUserID).Return(int64(4096), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/storage/usage", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]int64
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, int64(4096), body["used_bytes"])
	mockSvc.AssertExpectations(t)
}
