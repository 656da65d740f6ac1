package create_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/olxver2025/Inline/internal/app/create"
	"github.com/olxver2025/Inline/internal/log"
	"github.com/olxver2025/Inline/internal/model"
	"github.com/olxver2025/Inline/internal/storage/storagemock"
)

func TestNewService(t *testing.T) {
	tests := map[string]struct {
		cfg    create.ServiceConfig
		expErr bool
	}{
		"Valid configuration should create service successfully": {
			cfg: create.ServiceConfig{
				Repository: &storagemock.MockRepository{},
				Logger:     log.Noop,
			},
			expErr: false,
		},

		"Missing repository should fail": {
			cfg:    create.ServiceConfig{Logger: log.Noop},
			expErr: true,
		},

		"Missing logger should use noop logger": {
			cfg: create.ServiceConfig{
				Repository: &storagemock.MockRepository{},
			},
			expErr: false,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			svc, err := create.NewService(test.cfg)

			if test.expErr {
				assert.Error(err)
				assert.Nil(svc)
			} else {
				assert.NoError(err)
				assert.NotNil(svc)
			}
		})
	}
}

func TestServiceCreate(t *testing.T) {
	tests := map[string]struct {
		mock      func(mRepo *storagemock.MockRepository)
		req       create.Request
		expErr    error
		expNoErr  bool
		expSessID string
	}{
		"Creating a session for a new user should succeed": {
			req: create.Request{SessionID: "user-1"},
			mock: func(mRepo *storagemock.MockRepository) {
				mRepo.On("EnsureSession", mock.Anything, "user-1").Once().Return(nil, fmt.Errorf("session user-1: %w", model.ErrNotFound))
				mRepo.On("CreateSession", mock.Anything, "user-1").Once().Return(&model.Session{ID: "user-1", Cwd: "."}, nil)
			},
			expNoErr:  true,
			expSessID: "user-1",
		},

		"Creating over a live session should fail with already exists": {
			req: create.Request{SessionID: "user-1"},
			mock: func(mRepo *storagemock.MockRepository) {
				mRepo.On("EnsureSession", mock.Anything, "user-1").Once().Return(&model.Session{ID: "user-1"}, nil)
			},
			expErr: model.ErrAlreadyExists,
		},

		"Creating over an expired leftover should reap and recreate": {
			req: create.Request{SessionID: "user-1"},
			mock: func(mRepo *storagemock.MockRepository) {
				mRepo.On("EnsureSession", mock.Anything, "user-1").Once().Return(nil, fmt.Errorf("session user-1: %w", model.ErrExpired))
				mRepo.On("CreateSession", mock.Anything, "user-1").Once().Return(&model.Session{ID: "user-1", Cwd: "."}, nil)
			},
			expNoErr:  true,
			expSessID: "user-1",
		},

		"An invalid session id should fail": {
			req: create.Request{SessionID: "../evil"},
			mock: func(mRepo *storagemock.MockRepository) {
				mRepo.On("EnsureSession", mock.Anything, "../evil").Once().Return(nil, fmt.Errorf("session id: %w", model.ErrNotValid))
			},
			expErr: model.ErrNotValid,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			mRepo := &storagemock.MockRepository{}
			test.mock(mRepo)

			svc, err := create.NewService(create.ServiceConfig{Repository: mRepo})
			assert.NoError(err)

			session, err := svc.Create(context.Background(), test.req)

			if test.expNoErr {
				assert.NoError(err)
				assert.Equal(test.expSessID, session.ID)
			} else {
				assert.ErrorIs(err, test.expErr)
			}
			mRepo.AssertExpectations(t)
		})
	}
}
