package inline

import (
	"context"
	"fmt"

	appcreate "github.com/olxver2025/Inline/internal/app/create"
	appsessionlist "github.com/olxver2025/Inline/internal/app/sessionlist"
	appsessionremove "github.com/olxver2025/Inline/internal/app/sessionremove"
)

// CreateSession creates a new session workspace under the given id.
//
// A live session under the same id fails with [ErrAlreadyExists]; an expired
// leftover is reaped first so the id becomes usable again.
//
// Returns [ErrNotValid] if the id is empty or contains path separators.
func (c *Client) CreateSession(ctx context.Context, sessionID string) (*Session, error) {
	svc, err := appcreate.NewService(appcreate.ServiceConfig{
		Repository: c.repo,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	session, err := svc.Create(ctx, appcreate.Request{SessionID: sessionID})
	if err != nil {
		return nil, mapError(err)
	}

	result := fromInternalSession(*session)
	return &result, nil
}

// ListSessions returns all stored sessions sorted by id. Listing does not
// count as use: it neither refreshes timestamps nor reaps expired sessions.
func (c *Client) ListSessions(ctx context.Context) ([]Session, error) {
	svc, err := appsessionlist.NewService(appsessionlist.ServiceConfig{
		Repository: c.repo,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	sessions, err := svc.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	return fromInternalSessionList(sessions), nil
}

// DeleteSession removes the session workspace and everything in it.
//
// Returns [ErrNotFound] if the session does not exist.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	svc, err := appsessionremove.NewService(appsessionremove.ServiceConfig{
		Repository: c.repo,
		Logger:     c.logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	if err := svc.Remove(ctx, appsessionremove.Request{SessionID: sessionID}); err != nil {
		return mapError(err)
	}

	return nil
}
