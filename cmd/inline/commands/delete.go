package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/olxver2025/Inline/internal/app/sessionremove"
)

type DeleteCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	sessionID string
}

// NewDeleteCommand returns the delete command.
func NewDeleteCommand(rootCmd *RootCommand, app *kingpin.Application) *DeleteCommand {
	c := &DeleteCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("delete", "Delete a session workspace and all its files.")
	c.Cmd.Arg("session", "Session identifier.").Required().StringVar(&c.sessionID)

	return c
}

func (c DeleteCommand) Name() string { return c.Cmd.FullCommand() }

func (c DeleteCommand) Run(ctx context.Context) error {
	repo, err := newRepository(c.rootCmd)
	if err != nil {
		return err
	}

	svc, err := sessionremove.NewService(sessionremove.ServiceConfig{
		Repository: repo,
		Logger:     c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	if err := svc.Remove(ctx, sessionremove.Request{SessionID: c.sessionID}); err != nil {
		return fmt.Errorf("could not delete session: %w", err)
	}

	fmt.Fprintln(c.rootCmd.Stdout, "Session deleted.")

	return nil
}
