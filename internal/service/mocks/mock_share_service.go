package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"driveapi/internal/model"
)

type MockShareService struct {
	mock.Mock
}

func (m *MockShareService) Grant(ctx context.Context, ownerID, fileID, email string, permission model.Permission) (*model.Share, error) {
	args := m.Called(ctx, ownerID, fileID, email, permission)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Share), args.Error(1)
}

func (m *MockShareService) SharedWithMe(ctx context.Context, userID string) ([]model.SharedFile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SharedFile), args.Error(1)
}
