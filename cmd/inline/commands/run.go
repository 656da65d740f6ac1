package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/docker/go-units"

	"github.com/olxver2025/Inline/internal/app/run"
	"github.com/olxver2025/Inline/internal/model"
	"github.com/olxver2025/Inline/internal/utils/env"
)

type RunCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	sessionID string
	code      string
	file      string
	timeout   time.Duration
	memory    string
	cpus      float64
	pids      int64
	outputCap int
	noEcho    bool
	envSpecs  []string
	output    string
}

// NewRunCommand returns the run command.
func NewRunCommand(rootCmd *RootCommand, app *kingpin.Application) *RunCommand {
	c := &RunCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("run", "Run Python code in a session workspace.")
	c.Cmd.Arg("session", "Session identifier.").Required().StringVar(&c.sessionID)
	c.Cmd.Arg("code", "Code to run. Use - or omit to read standard input.").StringVar(&c.code)
	c.Cmd.Flag("file", "Read the code from a file instead.").Short('f').StringVar(&c.file)
	c.Cmd.Flag("timeout", "Wall-clock limit for the run.").Default("30s").DurationVar(&c.timeout)
	c.Cmd.Flag("memory", "Container memory limit (accepts units, e.g. 256m).").Default("256m").StringVar(&c.memory)
	c.Cmd.Flag("cpus", "Container CPU share.").Default("1").Float64Var(&c.cpus)
	c.Cmd.Flag("pids-limit", "Container process limit.").Default("64").Int64Var(&c.pids)
	c.Cmd.Flag("output-cap", "Per-stream output cap in bytes.").Default("100000").IntVar(&c.outputCap)
	c.Cmd.Flag("no-echo", "Disable the REPL-style echo of a trailing expression.").BoolVar(&c.noEcho)
	c.Cmd.Flag("env", "Environment variables (KEY=VALUE or KEY from current environment). Can be repeated.").Short('e').StringsVar(&c.envSpecs)
	c.Cmd.Flag("output", "Output format.").Short('o').Default(OutputTable).EnumVar(&c.output, OutputTable, OutputJSON)

	return c
}

func (c RunCommand) Name() string { return c.Cmd.FullCommand() }

func (c RunCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	code, err := c.readCode()
	if err != nil {
		return err
	}

	runEnv, err := env.ParseSpecs(c.envSpecs)
	if err != nil {
		return fmt.Errorf("invalid --env value: %w", err)
	}

	memoryBytes, err := units.RAMInBytes(c.memory)
	if err != nil {
		return fmt.Errorf("invalid --memory value: %w", err)
	}

	repo, err := newRepository(c.rootCmd)
	if err != nil {
		return err
	}

	engine, err := newEngine(c.rootCmd, c.outputCap)
	if err != nil {
		return err
	}

	if err := engine.EnsureImage(ctx, c.rootCmd.Pull); err != nil {
		return fmt.Errorf("could not ensure image: %w", err)
	}

	echo := !c.noEcho
	svc, err := run.NewService(run.ServiceConfig{
		Engine:     engine,
		Repository: repo,
		Timeout:    c.timeout,
		Limits: model.ResourceLimits{
			CPUs:        c.cpus,
			MemoryBytes: memoryBytes,
			PidsLimit:   c.pids,
		},
		EchoLastExpr: &echo,
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	result, err := svc.Run(ctx, run.Request{
		SessionID: c.sessionID,
		Code:      code,
		Env:       runEnv,
	})
	if err != nil {
		return fmt.Errorf("could not run code: %w", err)
	}

	if err := newPrinter(c.rootCmd, c.output).PrintExecResult(*result); err != nil {
		return fmt.Errorf("could not print result: %w", err)
	}

	// Mirror the interpreter's exit code so the run composes in shells.
	if result.ExitCode != 0 {
		os.Exit(result.ExitCode)
	}

	return nil
}

func (c RunCommand) readCode() (string, error) {
	if c.file != "" {
		data, err := os.ReadFile(c.file)
		if err != nil {
			return "", fmt.Errorf("could not read code file: %w", err)
		}
		return string(data), nil
	}

	if c.code != "" && c.code != "-" {
		return c.code, nil
	}

	data, err := io.ReadAll(c.rootCmd.Stdin)
	if err != nil {
		return "", fmt.Errorf("could not read code from stdin: %w", err)
	}
	return string(data), nil
}
