package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"driveapi/internal/model"
)

type MockVersionService struct {
	mock.Mock
}

func (m *MockVersionService) List(ctx context.Context, ownerID, fileID string) ([]model.FileVersion, error) {
	args := m.Called(ctx, ownerID, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FileVersion), args.Error(1)
}

func (m *MockVersionService) Restore(ctx context.Context, ownerID, fileID, versionID string) (*model.File, error) {
	args := m.Called(ctx, ownerID, fileID, versionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.File), args.Error(1)
}
