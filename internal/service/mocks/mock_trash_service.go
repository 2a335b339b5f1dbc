package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"driveapi/internal/model"
)

type MockTrashService struct {
	mock.Mock
}

func (m *MockTrashService) SoftDelete(ctx context.Context, ownerID, id string) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockTrashService) Restore(ctx context.Context, ownerID, id string) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockTrashService) Purge(ctx context.Context, ownerID, id string) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockTrashService) List(ctx context.Context, ownerID string) ([]model.File, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.File), args.Error(1)
}
