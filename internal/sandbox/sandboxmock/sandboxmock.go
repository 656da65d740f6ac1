// Package sandboxmock has testify mocks for the sandbox interfaces.
package sandboxmock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/olxver2025/Inline/internal/model"
)

// MockEngine is a mock for sandbox.Engine.
type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) Check(ctx context.Context) []model.CheckResult {
	args := m.Called(ctx)
	rs, _ := args.Get(0).([]model.CheckResult)
	return rs
}

func (m *MockEngine) Run(ctx context.Context, req model.ExecRequest) (*model.ExecResult, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(*model.ExecResult)
	return r, args.Error(1)
}

func (m *MockEngine) Install(ctx context.Context, req model.InstallRequest) (<-chan model.InstallUpdate, error) {
	args := m.Called(ctx, req)
	ch, _ := args.Get(0).(<-chan model.InstallUpdate)
	return ch, args.Error(1)
}

func (m *MockEngine) EnsureImage(ctx context.Context, pull bool) error {
	args := m.Called(ctx, pull)
	return args.Error(0)
}
