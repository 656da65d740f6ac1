package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/olxver2025/Inline/internal/app/fileremove"
)

type RmCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	sessionID string
	path      string
	recursive bool
}

// NewRmCommand returns the rm command.
func NewRmCommand(rootCmd *RootCommand, app *kingpin.Application) *RmCommand {
	c := &RmCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("rm", "Remove a file or directory inside the session workspace.")
	c.Cmd.Arg("session", "Session identifier.").Required().StringVar(&c.sessionID)
	c.Cmd.Arg("path", "Path to remove (relative to the session cwd).").Required().StringVar(&c.path)
	c.Cmd.Flag("recursive", "Remove directories with their contents.").Short('r').BoolVar(&c.recursive)

	return c
}

func (c RmCommand) Name() string { return c.Cmd.FullCommand() }

func (c RmCommand) Run(ctx context.Context) error {
	repo, err := newRepository(c.rootCmd)
	if err != nil {
		return err
	}

	svc, err := fileremove.NewService(fileremove.ServiceConfig{
		Repository: repo,
		Logger:     c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	err = svc.Remove(ctx, fileremove.Request{
		SessionID: c.sessionID,
		Path:      c.path,
		Recursive: c.recursive,
	})
	if err != nil {
		return fmt.Errorf("could not remove path: %w", err)
	}

	fmt.Fprintln(c.rootCmd.Stdout, "Removed.")

	return nil
}
