package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"k8s.io/client-go/util/homedir"

	"github.com/olxver2025/Inline/internal/conventions"
	"github.com/olxver2025/Inline/internal/log"
	"github.com/olxver2025/Inline/internal/printer"
	"github.com/olxver2025/Inline/internal/sandbox/docker"
	"github.com/olxver2025/Inline/internal/storage/fs"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"
)

const (
	// OutputTable is the table output format.
	OutputTable = "table"
	// OutputJSON is the JSON output format.
	OutputJSON = "json"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug      bool
	NoLog      bool
	NoColor    bool
	LoggerType string
	BaseDir    string
	Image      string
	Pull       bool
	Retention  time.Duration

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)

	defaultBaseDir := filepath.Join(homedir.HomeDir(), conventions.DefaultDataDir, conventions.SessionsDir)
	app.Flag("base-dir", "Directory holding the session workspaces.").Default(defaultBaseDir).StringVar(&c.BaseDir)
	app.Flag("image", "Docker image runs and installs execute in.").Default(docker.DefaultImage).StringVar(&c.Image)
	app.Flag("pull", "Pull the image when it is missing locally.").Default("true").BoolVar(&c.Pull)
	app.Flag("retention", "Idle time after which a session expires on next access.").Default("168h").DurationVar(&c.Retention)

	return c
}

// newRepository creates the filesystem session repository from the root
// configuration.
func newRepository(rootCmd *RootCommand) (*fs.Repository, error) {
	repo, err := fs.NewRepository(fs.RepositoryConfig{
		BaseDir:   rootCmd.BaseDir,
		Retention: rootCmd.Retention,
		Logger:    rootCmd.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create repository: %w", err)
	}

	return repo, nil
}

// newEngine creates the Docker engine from the root configuration.
func newEngine(rootCmd *RootCommand, maxOutputBytes int) (*docker.Engine, error) {
	engine, err := docker.NewEngine(docker.EngineConfig{
		Image:          rootCmd.Image,
		MaxOutputBytes: maxOutputBytes,
		Logger:         rootCmd.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create engine: %w", err)
	}

	return engine, nil
}

// newPrinter selects the output printer for a command.
func newPrinter(rootCmd *RootCommand, output string) printer.Printer {
	if output == OutputJSON {
		return printer.NewJSONPrinter(rootCmd.Stdout)
	}
	return printer.NewTablePrinter(rootCmd.Stdout)
}
