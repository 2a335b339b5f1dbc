package mocks

import (
	"context"

	"driveapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockShareRepository struct {
	mock.Mock
}

func (m *MockShareRepository) Create(ctx context.Context, s *model.Share) (*model.Share, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Share), args.Error(1)
}

func (m *MockShareRepository) Exists(ctx context.Context, fileID, sharedWith string) (bool, error) {
	args := m.Called(ctx, fileID, sharedWith)
	return args.Bool(0), args.Error(1)
}

func (m *MockShareRepository) ListSharedWith(ctx context.Context, userID string) ([]model.SharedFile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SharedFile), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindIDByEmail(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}
