package inline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olxver2025/Inline/pkg/inline"
)

// newTestClient creates a client with a temp base dir for test isolation.
func newTestClient(t *testing.T) *inline.Client {
	t.Helper()

	client, err := inline.New(inline.Config{
		BaseDir: t.TempDir(),
		Engine:  inline.EngineFake,
	})
	require.NoError(t, err)

	return client
}

func TestCreateSession(t *testing.T) {
	tests := map[string]struct {
		sessionID string
		prepare   func(ctx context.Context, t *testing.T, c *inline.Client)
		expErr    bool
		expIs     error
	}{
		"Creating a session should work.": {
			sessionID: "user-42",
		},

		"Creating a session without an id should fail.": {
			sessionID: "",
			expErr:    true,
			expIs:     inline.ErrNotValid,
		},

		"Creating a session with a path separator in the id should fail.": {
			sessionID: "../escape",
			expErr:    true,
			expIs:     inline.ErrNotValid,
		},

		"Creating a session that already exists should fail.": {
			sessionID: "user-42",
			prepare: func(ctx context.Context, t *testing.T, c *inline.Client) {
				_, err := c.CreateSession(ctx, "user-42")
				require.NoError(t, err)
			},
			expErr: true,
			expIs:  inline.ErrAlreadyExists,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			ctx := context.Background()
			client := newTestClient(t)

			if test.prepare != nil {
				test.prepare(ctx, t, client)
			}

			session, err := client.CreateSession(ctx, test.sessionID)

			if test.expErr {
				assert.Error(err)
				if test.expIs != nil {
					assert.True(errors.Is(err, test.expIs), "expected %v, got %v", test.expIs, err)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(test.sessionID, session.ID)
			assert.Equal(".", session.Cwd)
			assert.False(session.CreatedAt.IsZero())
		})
	}
}

func TestSessionLifecycle(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()
	client := newTestClient(t)

	// Create two sessions.
	_, err := client.CreateSession(ctx, "alice")
	require.NoError(err)
	_, err = client.CreateSession(ctx, "bob")
	require.NoError(err)

	// Both should be listed.
	sessions, err := client.ListSessions(ctx)
	require.NoError(err)
	assert.Len(sessions, 2)

	// Delete one, the other remains.
	err = client.DeleteSession(ctx, "alice")
	require.NoError(err)

	sessions, err = client.ListSessions(ctx)
	require.NoError(err)
	require.Len(sessions, 1)
	assert.Equal("bob", sessions[0].ID)

	// Deleting again should report not found.
	err = client.DeleteSession(ctx, "alice")
	assert.True(errors.Is(err, inline.ErrNotFound))
}

func TestWorkspaceOperations(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()
	client := newTestClient(t)

	_, err := client.CreateSession(ctx, "user-42")
	require.NoError(err)

	// Writing a file with missing parents should create them.
	written, err := client.WriteFile(ctx, "user-42", "data/notes.txt", []byte("hello"))
	require.NoError(err)
	assert.Equal("data/notes.txt", written.Path)
	assert.Equal(5, written.SizeBytes)

	// Navigating into the new directory should update the cwd.
	listing, err := client.Look(ctx, "user-42", "data")
	require.NoError(err)
	assert.Equal("data", listing.Cwd)
	require.Len(listing.Entries, 1)
	assert.Equal("notes.txt", listing.Entries[0].Name)
	assert.False(listing.Entries[0].Dir)

	// Navigating back up should land on the workspace root.
	listing, err = client.Look(ctx, "user-42", "..")
	require.NoError(err)
	assert.Equal(".", listing.Cwd)

	// Paths escaping the workspace should be rejected.
	_, err = client.WriteFile(ctx, "user-42", "../../outside.txt", []byte("x"))
	assert.True(errors.Is(err, inline.ErrPathEscape))

	// Removing a directory without recursive should fail.
	err = client.RemovePath(ctx, "user-42", "data", false)
	assert.True(errors.Is(err, inline.ErrNotValid))

	// With recursive it should work.
	err = client.RemovePath(ctx, "user-42", "data", true)
	require.NoError(err)

	listing, err = client.Look(ctx, "user-42", "")
	require.NoError(err)
	assert.Empty(listing.Entries)
}

func TestRun(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()
	client := newTestClient(t)

	_, err := client.CreateSession(ctx, "user-42")
	require.NoError(err)

	// The fake engine reports a clean empty run.
	result, err := client.Run(ctx, "user-42", "2 + 2", nil)
	require.NoError(err)
	assert.Equal(0, result.ExitCode)
	assert.False(result.TimedOut)

	// Empty code should be rejected.
	_, err = client.Run(ctx, "user-42", "   ", nil)
	assert.True(errors.Is(err, inline.ErrNotValid))

	// A missing session should be rejected.
	_, err = client.Run(ctx, "ghost", "2 + 2", nil)
	assert.True(errors.Is(err, inline.ErrNotFound))
}

func TestInstall(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()
	client := newTestClient(t)

	_, err := client.CreateSession(ctx, "user-42")
	require.NoError(err)

	result, err := client.Install(ctx, "user-42", []string{"requests"}, nil)
	require.NoError(err)
	assert.Equal(0, result.ExitCode)
	assert.False(result.TimedOut)

	// An empty package list should be rejected.
	_, err = client.Install(ctx, "user-42", nil, nil)
	assert.True(errors.Is(err, inline.ErrNotValid))

	// Shell metacharacters in package specs should be rejected.
	_, err = client.Install(ctx, "user-42", []string{"requests; rm -rf /"}, nil)
	assert.True(errors.Is(err, inline.ErrNotValid))
}

func TestDoctor(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()
	client := newTestClient(t)

	results, err := client.Doctor(ctx)
	require.NoError(err)
	assert.NotEmpty(results)
	for _, r := range results {
		assert.Equal(inline.CheckStatusOK, r.Status)
	}
}

func TestExecResultText(t *testing.T) {
	tests := map[string]struct {
		result inline.ExecResult
		expect string
	}{
		"Stdout only should render as-is.": {
			result: inline.ExecResult{Stdout: "hello\n"},
			expect: "hello\n",
		},

		"Stderr should get its own section.": {
			result: inline.ExecResult{Stdout: "out\n", Stderr: "boom\n", ExitCode: 1},
			expect: "out\n\n--- stderr ---\nboom\n",
		},

		"No output should fall back to the exit code.": {
			result: inline.ExecResult{ExitCode: 3},
			expect: "(no output, exit code 3)",
		},

		"Truncated output should carry a marker.": {
			result: inline.ExecResult{Stdout: "partial", Truncated: true},
			expect: "partial\n[output truncated]",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expect, test.result.Text())
		})
	}
}
