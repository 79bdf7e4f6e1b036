package mocks

import (
	"context"

	"studiosync/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockLabelRepository struct {
	mock.Mock
}

func (m *MockLabelRepository) List(ctx context.Context) ([]model.Label, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Label), args.Error(1)
}
