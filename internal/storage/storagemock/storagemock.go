// Package storagemock has testify mocks for the storage interfaces.
package storagemock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/olxver2025/Inline/internal/model"
)

// MockRepository is a mock for storage.SessionRepository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateSession(ctx context.Context, id string) (*model.Session, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*model.Session)
	return s, args.Error(1)
}

func (m *MockRepository) EnsureSession(ctx context.Context, id string) (*model.Session, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*model.Session)
	return s, args.Error(1)
}

func (m *MockRepository) ListSessions(ctx context.Context) ([]model.Session, error) {
	args := m.Called(ctx)
	ss, _ := args.Get(0).([]model.Session)
	return ss, args.Error(1)
}

func (m *MockRepository) TouchSession(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) SetSessionCwd(ctx context.Context, id, rel string) (*model.Session, error) {
	args := m.Called(ctx, id, rel)
	s, _ := args.Get(0).(*model.Session)
	return s, args.Error(1)
}

func (m *MockRepository) DeleteSession(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
