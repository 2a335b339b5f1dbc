package mocks

import (
	"context"

	"driveapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockVersionRepository struct {
	mock.Mock
}

func (m *MockVersionRepository) Create(ctx context.Context, v *model.FileVersion) (*model.FileVersion, error) {
	args := m.Called(ctx, v)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FileVersion), args.Error(1)
}

func (m *MockVersionRepository) FindByID(ctx context.Context, id string) (*model.FileVersion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FileVersion), args.Error(1)
}

func (m *MockVersionRepository) ListByFile(ctx context.Context, fileID string) ([]model.FileVersion, error) {
	args := m.Called(ctx, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FileVersion), args.Error(1)
}

func (m *MockVersionRepository) NextVersionNumber(ctx context.Context, fileID string) (int, error) {
	args := m.Called(ctx, fileID)
	return args.Int(0), args.Error(1)
}
