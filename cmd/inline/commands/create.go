package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/olxver2025/Inline/internal/app/create"
)

type CreateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	sessionID string
}

// NewCreateCommand returns the create command.
func NewCreateCommand(rootCmd *RootCommand, app *kingpin.Application) *CreateCommand {
	c := &CreateCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("create", "Create a session workspace (one per user).")
	c.Cmd.Arg("session", "Session identifier.").Required().StringVar(&c.sessionID)

	return c
}

func (c CreateCommand) Name() string { return c.Cmd.FullCommand() }

func (c CreateCommand) Run(ctx context.Context) error {
	repo, err := newRepository(c.rootCmd)
	if err != nil {
		return err
	}

	svc, err := create.NewService(create.ServiceConfig{
		Repository: repo,
		Logger:     c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	session, err := svc.Create(ctx, create.Request{SessionID: c.sessionID})
	if err != nil {
		return fmt.Errorf("could not create session: %w", err)
	}

	fmt.Fprintf(c.rootCmd.Stdout, "Session created: %s\n", session.ID)

	return nil
}
