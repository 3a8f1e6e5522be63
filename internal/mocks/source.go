package mocks

import (
	"context"

	"github.com/phrazzld/scry-match/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockSource is a testify mock of pool.Source.
type MockSource struct {
	mock.Mock
}

// World implements pool.Source.
func (m *MockSource) World(ctx context.Context, name string) (*domain.World, error) {
	args := m.Called(ctx, name)
	w, _ := args.Get(0).(*domain.World)
	return w, args.Error(1)
}

// Names implements pool.Source.
func (m *MockSource) Names(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}
