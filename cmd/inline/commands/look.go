package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/olxver2025/Inline/internal/app/look"
)

type LookCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	sessionID string
	path      string
	output    string
}

// NewLookCommand returns the look command.
func NewLookCommand(rootCmd *RootCommand, app *kingpin.Application) *LookCommand {
	c := &LookCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("look", "List the session's current directory, optionally changing it first.")
	c.Cmd.Arg("session", "Session identifier.").Required().StringVar(&c.sessionID)
	c.Cmd.Arg("path", "Directory to navigate to (relative).").StringVar(&c.path)
	c.Cmd.Flag("output", "Output format.").Short('o').Default(OutputTable).EnumVar(&c.output, OutputTable, OutputJSON)

	return c
}

func (c LookCommand) Name() string { return c.Cmd.FullCommand() }

func (c LookCommand) Run(ctx context.Context) error {
	repo, err := newRepository(c.rootCmd)
	if err != nil {
		return err
	}

	svc, err := look.NewService(look.ServiceConfig{
		Repository: repo,
		Logger:     c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	listing, err := svc.Look(ctx, look.Request{
		SessionID: c.sessionID,
		Path:      c.path,
	})
	if err != nil {
		return fmt.Errorf("could not look at directory: %w", err)
	}

	if err := newPrinter(c.rootCmd, c.output).PrintDirListing(listing.Cwd, listing.Entries); err != nil {
		return fmt.Errorf("could not print listing: %w", err)
	}

	return nil
}
