package inline

import (
	"context"
	"fmt"

	appfileremove "github.com/olxver2025/Inline/internal/app/fileremove"
	appfilewrite "github.com/olxver2025/Inline/internal/app/filewrite"
	applook "github.com/olxver2025/Inline/internal/app/look"
)

// Written describes a completed file write.
type Written struct {
	// Path is the written path relative to the workspace root.
	Path string
	// SizeBytes is the number of bytes written.
	SizeBytes int
}

// Look lists the session's current directory. When path is non-empty the
// session navigates there first and the new directory becomes the session
// cwd; a failed navigation leaves the cwd unchanged.
//
// Returns [ErrNotFound] if the session or path does not exist,
// [ErrPathEscape] if the path resolves outside the workspace, or
// [ErrNotValid] if the path is not a directory.
func (c *Client) Look(ctx context.Context, sessionID, path string) (*Listing, error) {
	svc, err := applook.NewService(applook.ServiceConfig{
		Repository: c.repo,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	listing, err := svc.Look(ctx, applook.Request{
		SessionID: sessionID,
		Path:      path,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return &Listing{
		Cwd:     listing.Cwd,
		Entries: fromInternalDirEntries(listing.Entries),
	}, nil
}

// WriteFile creates or overwrites a file inside the session workspace. The
// path is resolved against the session's current directory; missing parent
// directories are created.
//
// Returns [ErrNotFound] if the session does not exist, [ErrPathEscape] if
// the path resolves outside the workspace, or [ErrNotValid] if the target is
// an existing directory or the workspace root.
func (c *Client) WriteFile(ctx context.Context, sessionID, path string, content []byte) (*Written, error) {
	svc, err := appfilewrite.NewService(appfilewrite.ServiceConfig{
		Repository: c.repo,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	written, err := svc.Write(ctx, appfilewrite.Request{
		SessionID: sessionID,
		Path:      path,
		Content:   content,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return &Written{Path: written.Path, SizeBytes: written.SizeBytes}, nil
}

// RemovePath deletes a file, symlink or directory inside the session
// workspace. Directories require recursive; the workspace root itself cannot
// be removed.
//
// Returns [ErrNotFound] if the session or path does not exist,
// [ErrPathEscape] if the path resolves outside the workspace, or
// [ErrNotValid] for a directory without recursive.
func (c *Client) RemovePath(ctx context.Context, sessionID, path string, recursive bool) error {
	svc, err := appfileremove.NewService(appfileremove.ServiceConfig{
		Repository: c.repo,
		Logger:     c.logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	err = svc.Remove(ctx, appfileremove.Request{
		SessionID: sessionID,
		Path:      path,
		Recursive: recursive,
	})
	if err != nil {
		return mapError(err)
	}

	return nil
}
