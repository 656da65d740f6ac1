package fake_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olxver2025/Inline/internal/model"
	"github.com/olxver2025/Inline/internal/sandbox/fake"
)

func TestEngineRun(t *testing.T) {
	tests := map[string]struct {
		cfg    fake.EngineConfig
		req    model.ExecRequest
		expRes model.ExecResult
	}{
		"Default engine should return a clean empty result": {
			req:    model.ExecRequest{Code: "print('hi')"},
			expRes: model.ExecResult{ExitCode: 0},
		},

		"Configured result should be returned as is": {
			cfg: fake.EngineConfig{
				RunResult: &model.ExecResult{Stdout: "4\n", ExitCode: 0},
			},
			req:    model.ExecRequest{Code: "2+2"},
			expRes: model.ExecResult{Stdout: "4\n", ExitCode: 0},
		},

		"Timeout results should pass through untouched": {
			cfg: fake.EngineConfig{
				RunResult: &model.ExecResult{ExitCode: model.TimeoutExitCode, TimedOut: true},
			},
			req:    model.ExecRequest{Code: "while True: pass"},
			expRes: model.ExecResult{ExitCode: model.TimeoutExitCode, TimedOut: true},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			engine, err := fake.NewEngine(test.cfg)
			require.NoError(t, err)

			res, err := engine.Run(context.Background(), test.req)

			assert.NoError(err)
			assert.Equal(test.expRes, *res)
			require.Len(t, engine.Runs(), 1)
			assert.Equal(test.req.Code, engine.Runs()[0].Code)
		})
	}
}

func TestEngineInstall(t *testing.T) {
	assert := assert.New(t)

	engine, err := fake.NewEngine(fake.EngineConfig{
		InstallLog:      []string{"Collecting requests\n", "Successfully installed requests\n"},
		InstallExitCode: 0,
	})
	require.NoError(t, err)

	updates, err := engine.Install(context.Background(), model.InstallRequest{
		Packages: []string{"requests"},
		Mount:    model.WorkspaceMount{HostDir: "/tmp/ws"},
		Timeout:  time.Minute,
	})
	require.NoError(t, err)

	got := []model.InstallUpdate{}
	for u := range updates {
		got = append(got, u)
	}

	require.Len(t, got, 3)
	assert.Equal("Collecting requests\n", got[0].Chunk)
	assert.True(got[2].Done)
	assert.Equal(0, got[2].ExitCode)
}

func TestEngineInstallNoPackages(t *testing.T) {
	assert := assert.New(t)

	engine, err := fake.NewEngine(fake.EngineConfig{})
	require.NoError(t, err)

	_, err = engine.Install(context.Background(), model.InstallRequest{})

	assert.ErrorIs(err, model.ErrNotValid)
}

func TestEngineCheck(t *testing.T) {
	assert := assert.New(t)

	engine, err := fake.NewEngine(fake.EngineConfig{})
	require.NoError(t, err)

	results := engine.Check(context.Background())

	assert.False(model.HasErrors(results))
	assert.False(model.HasWarnings(results))
}
