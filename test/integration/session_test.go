package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olxver2025/Inline/internal/sandbox/docker"
	"github.com/olxver2025/Inline/pkg/inline"
)

// ensureImage pulls the execution image once so individual tests do not race
// on the first pull.
func ensureImage(t *testing.T) {
	t.Helper()

	eng, err := docker.NewEngine(docker.EngineConfig{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	require.NoError(t, eng.EnsureImage(ctx, true), "Failed to ensure execution image")
}

func newIntegrationClient(t *testing.T, cfg inline.Config) *inline.Client {
	t.Helper()

	cfg.BaseDir = t.TempDir()
	client, err := inline.New(cfg)
	require.NoError(t, err)

	return client
}

func TestSessionEndToEnd(t *testing.T) {
	requireDocker(t)
	ensureImage(t)

	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()
	client := newIntegrationClient(t, inline.Config{})

	// Create a session.
	session, err := client.CreateSession(ctx, "user-e2e")
	require.NoError(err)
	assert.Equal(".", session.Cwd)

	// Run a bare expression, the REPL echo should print its value.
	result, err := client.Run(ctx, "user-e2e", "2+2", nil)
	require.NoError(err)
	assert.Equal(0, result.ExitCode)
	assert.False(result.TimedOut)
	assert.Contains(result.Stdout, "4")

	// Navigate to a created subdirectory and write a file there.
	_, err = client.WriteFile(ctx, "user-e2e", "data/greeting.txt", []byte("hello"))
	require.NoError(err)

	listing, err := client.Look(ctx, "user-e2e", "data")
	require.NoError(err)
	assert.Equal("data", listing.Cwd)
	require.Len(listing.Entries, 1)
	assert.Equal("greeting.txt", listing.Entries[0].Name)
	assert.Equal(int64(5), listing.Entries[0].SizeBytes)

	// Runs execute in the session cwd and see workspace files.
	result, err = client.Run(ctx, "user-e2e", `print(open("greeting.txt").read())`, nil)
	require.NoError(err)
	assert.Equal(0, result.ExitCode)
	assert.Contains(result.Stdout, "hello")

	// Files written by executed code persist in the workspace.
	result, err = client.Run(ctx, "user-e2e", `open("out.txt", "w").write("from code")`, nil)
	require.NoError(err)
	assert.Equal(0, result.ExitCode)

	listing, err = client.Look(ctx, "user-e2e", "")
	require.NoError(err)
	names := []string{}
	for _, e := range listing.Entries {
		names = append(names, e.Name)
	}
	assert.Contains(names, "out.txt")

	// Delete the session, further operations should fail.
	require.NoError(client.DeleteSession(ctx, "user-e2e"))

	_, err = client.Run(ctx, "user-e2e", "2+2", nil)
	assert.True(errors.Is(err, inline.ErrNotFound))
}

func TestRunIsolation(t *testing.T) {
	requireDocker(t)
	ensureImage(t)

	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()
	client := newIntegrationClient(t, inline.Config{})

	_, err := client.CreateSession(ctx, "user-isolation")
	require.NoError(err)

	// Runs have no network access.
	result, err := client.Run(ctx, "user-isolation", `
import urllib.request
urllib.request.urlopen("http://example.com", timeout=3)
`, nil)
	require.NoError(err)
	assert.NotEqual(0, result.ExitCode)

	// The root filesystem is read-only; only /tmp and the workspace are
	// writable.
	result, err = client.Run(ctx, "user-isolation", `open("/etc/hacked", "w")`, nil)
	require.NoError(err)
	assert.NotEqual(0, result.ExitCode)

	result, err = client.Run(ctx, "user-isolation", `open("/tmp/scratch", "w").write("ok")`, nil)
	require.NoError(err)
	assert.Equal(0, result.ExitCode)

	// Extra environment variables reach the process.
	result, err = client.Run(ctx, "user-isolation", `import os; print(os.environ["GREETING"])`, map[string]string{"GREETING": "hola"})
	require.NoError(err)
	assert.Contains(result.Stdout, "hola")
}

func TestRunTimeout(t *testing.T) {
	cli := requireDocker(t)
	ensureImage(t)

	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()
	client := newIntegrationClient(t, inline.Config{RunTimeout: 3 * time.Second})

	_, err := client.CreateSession(ctx, "user-timeout")
	require.NoError(err)

	result, err := client.Run(ctx, "user-timeout", `import time; time.sleep(60)`, nil)
	require.NoError(err)
	assert.True(result.TimedOut)
	assert.Equal(124, result.ExitCode)

	// The timed out container must not linger.
	assert.Eventually(func() bool {
		return containersWithPrefix(t, cli, "inline-run-") == 0
	}, 10*time.Second, time.Second)
}

func TestInstallEndToEnd(t *testing.T) {
	requireDocker(t)
	ensureImage(t)

	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()
	client := newIntegrationClient(t, inline.Config{})

	_, err := client.CreateSession(ctx, "user-install")
	require.NoError(err)

	// Install a tiny pure-Python package and import it from a run.
	progressCalls := 0
	result, err := client.Install(ctx, "user-install", []string{"six"}, func(logTail string) {
		progressCalls++
	})
	require.NoError(err)
	assert.Equal(0, result.ExitCode)
	assert.False(result.TimedOut)
	assert.NotEmpty(result.LogTail)

	runResult, err := client.Run(ctx, "user-install", `import six; print(six.__version__)`, nil)
	require.NoError(err)
	assert.Equal(0, runResult.ExitCode)
	assert.NotEmpty(runResult.Stdout)
}
