package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"driveapi/internal/model"
	"driveapi/internal/service"
)

type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) Upload(ctx context.Context, ownerID string, folderID *string, in service.UploadInput) (*service.UploadResult, error) {
	args := m.Called(ctx, ownerID, folderID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadResult), args.Error(1)
}

func (m *MockFileService) UploadBatch(ctx context.Context, ownerID string, folderID *string, ins []service.UploadInput) []service.BatchItemResult {
	args := m.Called(ctx, ownerID, folderID, ins)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]service.BatchItemResult)
}

func (m *MockFileService) CreateFolder(ctx context.Context, ownerID, name string, parentID *string) (*model.File, error) {
	args := m.Called(ctx, ownerID, name, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.File), args.Error(1)
}

func (m *MockFileService) Get(ctx context.Context, ownerID, id string) (*model.File, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.File), args.Error(1)
}

func (m *MockFileService) Rename(ctx context.Context, ownerID, id, newName string) error {
	args := m.Called(ctx, ownerID, id, newName)
	return args.Error(0)
}

func (m *MockFileService) Move(ctx context.Context, ownerID, id string, newParentID *string) error {
	args := m.Called(ctx, ownerID, id, newParentID)
	return args.Error(0)
}

func (m *MockFileService) Download(ctx context.Context, ownerID, id string) (io.ReadCloser, *model.File, error) {
	args := m.Called(ctx, ownerID, id)
	var rc io.ReadCloser
	if args.Get(0) != nil {
		rc = args.Get(0).(io.ReadCloser)
	}
	var f *model.File
	if args.Get(1) != nil {
		f = args.Get(1).(*model.File)
	}
	return rc, f, args.Error(2)
}

func (m *MockFileService) PresignURL(ctx context.Context, ownerID, id string) (string, error) {
	args := m.Called(ctx, ownerID, id)
	return args.String(0), args.Error(1)
}

func (m *MockFileService) StorageUsage(ctx context.Context, ownerID string) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}
