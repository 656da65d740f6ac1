package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/docker/go-units"

	"github.com/olxver2025/Inline/internal/app/install"
	"github.com/olxver2025/Inline/internal/model"
)

type PipCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	sessionID string
	packages  []string
	timeout   time.Duration
	memory    string
	cpus      float64
	pids      int64
}

// NewPipCommand returns the pip command.
func NewPipCommand(rootCmd *RootCommand, app *kingpin.Application) *PipCommand {
	c := &PipCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("pip", "Install Python packages into the session workspace.")
	c.Cmd.Arg("session", "Session identifier.").Required().StringVar(&c.sessionID)
	c.Cmd.Arg("packages", "Package specs to install.").Required().StringsVar(&c.packages)
	c.Cmd.Flag("timeout", "Wall-clock limit for the whole install.").Default("5m").DurationVar(&c.timeout)
	c.Cmd.Flag("memory", "Container memory limit (accepts units, e.g. 256m).").Default("256m").StringVar(&c.memory)
	c.Cmd.Flag("cpus", "Container CPU share.").Default("1").Float64Var(&c.cpus)
	c.Cmd.Flag("pids-limit", "Container process limit.").Default("64").Int64Var(&c.pids)

	return c
}

func (c PipCommand) Name() string { return c.Cmd.FullCommand() }

func (c PipCommand) Run(ctx context.Context) error {
	memoryBytes, err := units.RAMInBytes(c.memory)
	if err != nil {
		return fmt.Errorf("invalid --memory value: %w", err)
	}

	repo, err := newRepository(c.rootCmd)
	if err != nil {
		return err
	}

	engine, err := newEngine(c.rootCmd, 0)
	if err != nil {
		return err
	}

	if err := engine.EnsureImage(ctx, c.rootCmd.Pull); err != nil {
		return fmt.Errorf("could not ensure image: %w", err)
	}

	svc, err := install.NewService(install.ServiceConfig{
		Engine:     engine,
		Repository: repo,
		Timeout:    c.timeout,
		Limits: model.ResourceLimits{
			CPUs:        c.cpus,
			MemoryBytes: memoryBytes,
			PidsLimit:   c.pids,
		},
		Logger: c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	fmt.Fprintln(c.rootCmd.Stdout, "Starting pip install...")

	result, err := svc.Install(ctx, install.Request{
		SessionID: c.sessionID,
		Packages:  c.packages,
		OnProgress: func(logTail string) {
			fmt.Fprintln(c.rootCmd.Stdout, logTail)
		},
	})
	if err != nil {
		return fmt.Errorf("could not install packages: %w", err)
	}

	fmt.Fprintln(c.rootCmd.Stdout, result.LogTail)
	if result.TimedOut {
		fmt.Fprintln(c.rootCmd.Stdout, "Install timed out.")
	}
	fmt.Fprintf(c.rootCmd.Stdout, "pip exited with code %d.\n", result.ExitCode)

	return nil
}
