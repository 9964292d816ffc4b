// Package compose queries the local Docker runtime for the Polaris service
// container started by the devbox compose stack: locating the container,
// recovering the bootstrap credentials from its logs, and resolving its
// published API port.
package compose

import (
	"context"
	"io"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
)

// ContainerAPI is the slice of the Docker client this package needs.
// It is satisfied by *client.Client and by test mocks.
type ContainerAPI interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]types.Container, error)
	ContainerLogs(ctx context.Context, containerID string, options container.LogsOptions) (io.ReadCloser, error)
	ContainerInspect(ctx context.Context, containerID string) (types.ContainerJSON, error)
}

// NewClient builds a Docker client from the environment (DOCKER_HOST etc.),
// negotiating the API version with the daemon.
func NewClient() (*client.Client, error) {
	return client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
}
