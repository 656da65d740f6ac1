// Package docker runs sandboxed code in throwaway Docker containers. Code
// runs go through the docker CLI so stdin delivery and stream capture behave
// exactly like a terminal run, everything else (installs, images, health,
// cleanup) talks to the daemon API.
package docker

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/client"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"

	"github.com/olxver2025/Inline/internal/log"
)

const (
	// DefaultImage is the Python image used when none is configured.
	DefaultImage = "python:3.11-alpine"
	// DefaultMaxOutputBytes caps each captured stream of a run.
	DefaultMaxOutputBytes = 100000
)

// DockerClient is the interface for Docker operations that we use.
// This allows us to mock the Docker client for testing.
type DockerClient interface {
	Ping(ctx context.Context) (types.Ping, error)
	ImagePull(ctx context.Context, refStr string, options image.PullOptions) (io.ReadCloser, error)
	ImageInspect(ctx context.Context, imageID string, options ...client.ImageInspectOption) (image.InspectResponse, error)
	ContainerCreate(ctx context.Context, config *container.Config, hostConfig *container.HostConfig, networkingConfig *network.NetworkingConfig, platform *ocispec.Platform, containerName string) (container.CreateResponse, error)
	ContainerStart(ctx context.Context, containerID string, options container.StartOptions) error
	ContainerLogs(ctx context.Context, containerID string, options container.LogsOptions) (io.ReadCloser, error)
	ContainerWait(ctx context.Context, containerID string, condition container.WaitCondition) (<-chan container.WaitResponse, <-chan error)
	ContainerRemove(ctx context.Context, containerID string, options container.RemoveOptions) error
}

// EngineConfig is the configuration for the Docker engine.
type EngineConfig struct {
	Client DockerClient
	// Image is the Python image runs and installs execute in.
	Image string
	// DockerBin is the docker CLI binary used for code runs.
	DockerBin string
	// MaxOutputBytes caps each captured stream of a run.
	MaxOutputBytes int
	Logger         log.Logger
}

func (c *EngineConfig) defaults() error {
	if c.Client == nil {
		// Create a default Docker client
		cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
		if err != nil {
			return fmt.Errorf("could not create Docker client: %w", err)
		}
		c.Client = cli
	}
	if c.Image == "" {
		c.Image = DefaultImage
	}
	if c.DockerBin == "" {
		c.DockerBin = "docker"
	}
	if c.MaxOutputBytes <= 0 {
		c.MaxOutputBytes = DefaultMaxOutputBytes
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "engine.Docker"})
	return nil
}

// Engine is the Docker implementation of the sandbox.Engine interface.
type Engine struct {
	client         DockerClient
	image          string
	dockerBin      string
	maxOutputBytes int
	logger         log.Logger
}

// NewEngine creates a new Docker engine.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		client:         cfg.Client,
		image:          cfg.Image,
		dockerBin:      cfg.DockerBin,
		maxOutputBytes: cfg.MaxOutputBytes,
		logger:         cfg.Logger,
	}, nil
}

// forceRemoveContainer removes a container by name no matter its state,
// tolerating it being gone already. Runs on its own context so it works
// after the caller's deadline fired.
func (e *Engine) forceRemoveContainer(name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := e.client.ContainerRemove(ctx, name, container.RemoveOptions{Force: true})
	if err != nil && !strings.Contains(err.Error(), "No such container") {
		e.logger.Warningf("Could not force remove container %s: %s", name, err)
	}
}
