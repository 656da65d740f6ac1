package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"

	"github.com/olxver2025/Inline/internal/app/filewrite"
)

type WriteCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	sessionID string
	path      string
	content   string
	file      string
}

// NewWriteCommand returns the write command.
func NewWriteCommand(rootCmd *RootCommand, app *kingpin.Application) *WriteCommand {
	c := &WriteCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("write", "Create or overwrite a file in the session workspace.")
	c.Cmd.Arg("session", "Session identifier.").Required().StringVar(&c.sessionID)
	c.Cmd.Arg("path", "Target file path (relative to the session cwd).").Required().StringVar(&c.path)
	c.Cmd.Arg("content", "File content. Use - or omit to read standard input.").StringVar(&c.content)
	c.Cmd.Flag("file", "Read the content from a local file instead.").Short('f').StringVar(&c.file)

	return c
}

func (c WriteCommand) Name() string { return c.Cmd.FullCommand() }

func (c WriteCommand) Run(ctx context.Context) error {
	content, err := c.readContent()
	if err != nil {
		return err
	}

	repo, err := newRepository(c.rootCmd)
	if err != nil {
		return err
	}

	svc, err := filewrite.NewService(filewrite.ServiceConfig{
		Repository: repo,
		Logger:     c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	written, err := svc.Write(ctx, filewrite.Request{
		SessionID: c.sessionID,
		Path:      c.path,
		Content:   content,
	})
	if err != nil {
		return fmt.Errorf("could not write file: %w", err)
	}

	fmt.Fprintf(c.rootCmd.Stdout, "Wrote %s (%d bytes).\n", written.Path, written.SizeBytes)

	return nil
}

func (c WriteCommand) readContent() ([]byte, error) {
	if c.file != "" {
		data, err := os.ReadFile(c.file)
		if err != nil {
			return nil, fmt.Errorf("could not read content file: %w", err)
		}
		return data, nil
	}

	if c.content != "" && c.content != "-" {
		return []byte(c.content), nil
	}

	data, err := io.ReadAll(c.rootCmd.Stdin)
	if err != nil {
		return nil, fmt.Errorf("could not read content from stdin: %w", err)
	}
	return data, nil
}
