package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/olxver2025/Inline/internal/app/sessionlist"
)

type ListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	output string
}

// NewListCommand returns the list command.
func NewListCommand(rootCmd *RootCommand, app *kingpin.Application) *ListCommand {
	c := &ListCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("ls", "List session workspaces.")
	c.Cmd.Flag("output", "Output format.").Short('o').Default(OutputTable).EnumVar(&c.output, OutputTable, OutputJSON)

	return c
}

func (c ListCommand) Name() string { return c.Cmd.FullCommand() }

func (c ListCommand) Run(ctx context.Context) error {
	repo, err := newRepository(c.rootCmd)
	if err != nil {
		return err
	}

	svc, err := sessionlist.NewService(sessionlist.ServiceConfig{
		Repository: repo,
		Logger:     c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	sessions, err := svc.List(ctx)
	if err != nil {
		return fmt.Errorf("could not list sessions: %w", err)
	}

	if err := newPrinter(c.rootCmd, c.output).PrintSessionList(sessions); err != nil {
		return fmt.Errorf("could not print sessions: %w", err)
	}

	return nil
}
