package integration

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/stretchr/testify/require"
)

// requireDocker skips the test when no Docker daemon is reachable.
func requireDocker(t *testing.T) *client.Client {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	require.NoError(t, err, "Failed to create Docker client")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := cli.Ping(ctx); err != nil {
		t.Skipf("Skipping integration test, Docker daemon not reachable: %s", err)
	}

	return cli
}

// containersWithPrefix counts containers (running or not) whose name starts
// with the given prefix.
func containersWithPrefix(t *testing.T, cli *client.Client, prefix string) int {
	t.Helper()

	containers, err := cli.ContainerList(context.Background(), container.ListOptions{All: true})
	require.NoError(t, err, "Failed to list containers")

	count := 0
	for _, c := range containers {
		for _, name := range c.Names {
			// Docker names start with /
			if strings.HasPrefix(strings.TrimPrefix(name, "/"), prefix) {
				count++
				break
			}
		}
	}
	return count
}
