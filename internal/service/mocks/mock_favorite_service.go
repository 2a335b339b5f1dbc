package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockFavoriteService struct {
	mock.Mock
}

func (m *MockFavoriteService) Toggle(ctx context.Context, ownerID, fileID string) (bool, error) {
	args := m.Called(ctx, ownerID, fileID)
	return args.Bool(0), args.Error(1)
}
