package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Insert(ctx context.Context, ownerID, fileID string) (bool, error) {
	args := m.Called(ctx, ownerID, fileID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) Delete(ctx context.Context, ownerID, fileID string) error {
	args := m.Called(ctx, ownerID, fileID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) ListFileIDs(ctx context.Context, ownerID string) ([]string, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
