package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"driveapi/internal/service"
)

type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) List(ctx context.Context, q service.ListQuery) (*service.ListResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult), args.Error(1)
}
