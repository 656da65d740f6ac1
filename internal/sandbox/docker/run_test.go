package docker

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/olxver2025/Inline/internal/model"
)

func TestBuildRunArgs(t *testing.T) {
	limits := model.ResourceLimits{CPUs: 1, MemoryBytes: 268435456, PidsLimit: 64}
	hardened := []string{
		"run", "--rm", "--name", "inline-run-test", "-i",
		"--network", "none",
		"--read-only",
		"--tmpfs", "/tmp:rw,noexec,nosuid,size=64m",
		"--pids-limit", "64",
		"--cpus", "1",
		"--memory", "268435456",
		"--cap-drop", "ALL",
		"--security-opt", "no-new-privileges",
		"--user", "1000:1000",
		"-e", "PYTHONDONTWRITEBYTECODE=1",
		"-e", "PYTHONUNBUFFERED=1",
	}

	tests := map[string]struct {
		req     model.ExecRequest
		expArgs []string
	}{
		"A run without a workspace should not mount anything.": {
			req: model.ExecRequest{Code: "print(1)", Timeout: 30 * time.Second, Limits: limits},
			expArgs: append(append([]string{}, hardened...),
				"python:3.11-alpine", "python", "-"),
		},
		"A mounted workspace should bind at the fixed path with its subdir as workdir.": {
			req: model.ExecRequest{
				Code:   "print(1)",
				Mount:  &model.WorkspaceMount{HostDir: "/data/sessions/u1", Subpath: "proj"},
				Limits: limits,
			},
			expArgs: append(append([]string{}, hardened...),
				"-v", "/data/sessions/u1:/workspace:rw",
				"-w", "/workspace/proj",
				"python:3.11-alpine", "python", "-"),
		},
		"A root subpath should use the workspace root as workdir.": {
			req: model.ExecRequest{
				Code:   "print(1)",
				Mount:  &model.WorkspaceMount{HostDir: "/data/sessions/u1", Subpath: "."},
				Limits: limits,
			},
			expArgs: append(append([]string{}, hardened...),
				"-v", "/data/sessions/u1:/workspace:rw",
				"-w", "/workspace",
				"python:3.11-alpine", "python", "-"),
		},
		"Extra env vars should be passed sorted after the fixed ones.": {
			req: model.ExecRequest{
				Code:   "print(1)",
				Env:    map[string]string{"PYTHONPATH": "/workspace/.site-packages", "DEBUG": "1"},
				Limits: limits,
			},
			expArgs: append(append([]string{}, hardened...),
				"-e", "DEBUG=1",
				"-e", "PYTHONPATH=/workspace/.site-packages",
				"python:3.11-alpine", "python", "-"),
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got := buildRunArgs("inline-run-test", "python:3.11-alpine", test.req)
			assert.Equal(t, test.expArgs, got)
		})
	}
}

func TestBuildRunArgsFractionalCPUs(t *testing.T) {
	req := model.ExecRequest{
		Limits: model.ResourceLimits{CPUs: 0.5, MemoryBytes: 268435456, PidsLimit: 64},
	}

	args := buildRunArgs("inline-run-test", "python:3.11-alpine", req)

	for i, a := range args {
		if a == "--cpus" {
			assert.Equal(t, "0.5", args[i+1])
			return
		}
	}
	t.Fatal("cpus flag not found")
}

func TestLimitedWriter(t *testing.T) {
	tests := map[string]struct {
		max          int
		writes       []string
		expOut       string
		expTruncated bool
	}{
		"Output under the cap should pass through untouched.": {
			max:    16,
			writes: []string{"hello ", "world"},
			expOut: "hello world",
		},
		"A single write over the cap should be clipped.": {
			max:          5,
			writes:       []string{"hello world"},
			expOut:       "hello",
			expTruncated: true,
		},
		"Writes after the cap is hit should be discarded.": {
			max:          5,
			writes:       []string{"hello", " world", "!"},
			expOut:       "hello",
			expTruncated: true,
		},
		"An exact fit should not count as truncated.": {
			max:    5,
			writes: []string{"hello"},
			expOut: "hello",
		},
		"A multibyte rune split at the cap should be replaced.": {
			max:          2,
			writes:       []string{"héllo"},
			expOut:       "h�",
			expTruncated: true,
		},
		"Invalid UTF-8 should be replaced in the text.": {
			max:    16,
			writes: []string{"ok\xff\xfeend"},
			expOut: "ok�end",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			w := newLimitedWriter(test.max)
			for _, chunk := range test.writes {
				n, err := w.Write([]byte(chunk))
				assert.NoError(err)
				assert.Equal(len(chunk), n)
			}

			assert.Equal(test.expOut, w.String())
			assert.Equal(test.expTruncated, w.Truncated())
		})
	}
}

func TestRunTimeout(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	// Stand-in for the docker CLI: emits output on both streams, then
	// outlives the deadline.
	bin := filepath.Join(t.TempDir(), "docker-stub")
	require.NoError(os.WriteFile(bin, []byte("#!/bin/sh\necho partial stdout\necho partial stderr >&2\nsleep 10\n"), 0o755))

	mCli := &mockDockerClient{}
	mCli.On("ContainerRemove", mock.Anything, mock.Anything, mock.Anything).Once().Return(nil)

	engine, err := NewEngine(EngineConfig{Client: mCli, DockerBin: bin})
	require.NoError(err)

	result, err := engine.Run(context.TODO(), model.ExecRequest{
		Code:    "while True: pass",
		Timeout: 300 * time.Millisecond,
		Limits:  model.ResourceLimits{CPUs: 1, MemoryBytes: 268435456, PidsLimit: 64},
	})
	require.NoError(err)

	// A timed out run reports the distinguished exit code and only the
	// explanatory message, anything captured before the deadline is dropped.
	assert.True(result.TimedOut)
	assert.Equal(model.TimeoutExitCode, result.ExitCode)
	assert.Empty(result.Stdout)
	assert.Equal(timeoutStderr, result.Stderr)

	mCli.AssertExpectations(t)
}
