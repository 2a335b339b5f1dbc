package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"driveapi/internal/service"
)

type MockTreeService struct {
	mock.Mock
}

func (m *MockTreeService) Breadcrumbs(ctx context.Context, id string) (*service.Breadcrumb, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Breadcrumb), args.Error(1)
}
