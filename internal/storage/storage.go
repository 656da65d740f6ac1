package storage

import (
	"context"

	"github.com/olxver2025/Inline/internal/model"
)

// SessionRepository is the interface for session persistence. Sessions age
// out: implementations apply the retention window lazily, reaping an expired
// session the moment it is accessed through EnsureSession.
type SessionRepository interface {
	CreateSession(ctx context.Context, id string) (*model.Session, error)
	EnsureSession(ctx context.Context, id string) (*model.Session, error)
	ListSessions(ctx context.Context) ([]model.Session, error)
	TouchSession(ctx context.Context, id string) error
	SetSessionCwd(ctx context.Context, id, rel string) (*model.Session, error)
	DeleteSession(ctx context.Context, id string) error
}
