package compose

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"

	"github.com/kameshsampath/polaris-spark-devbox/pkg/logging"
)

const (
	composeProjectLabel = "com.docker.compose.project"
	serviceNameFilter   = "polaris"
)

// ErrContainerNotFound indicates no running Polaris container matched the
// filter set.
var ErrContainerNotFound = errors.New("no running polaris container found")

// AmbiguousContainerError indicates more than one running container matched.
// The live registry gives no uniqueness guarantee, so rather than silently
// taking the first match in daemon order the caller gets all candidates and
// decides (the setup command fails loudly and asks for a project scope).
type AmbiguousContainerError struct {
	Names []string
}

func (e *AmbiguousContainerError) Error() string {
	return fmt.Sprintf("found %d running polaris containers (%s); scope the lookup with a compose project name",
		len(e.Names), strings.Join(e.Names, ", "))
}

// Locate finds the single running Polaris container. Filters: the compose
// project label (value-scoped when project is non-empty), a "polaris" name
// substring, and running status. Returns ErrContainerNotFound on zero
// matches and *AmbiguousContainerError on more than one.
func Locate(ctx context.Context, api ContainerAPI, project string) (types.Container, error) {
	args := filters.NewArgs(
		filters.Arg("label", composeProjectLabel),
		filters.Arg("name", serviceNameFilter),
		filters.Arg("status", "running"),
	)
	if project != "" {
		args.Add("label", fmt.Sprintf("%s=%s", composeProjectLabel, project))
	}

	containers, err := api.ContainerList(ctx, container.ListOptions{All: true, Filters: args})
	if err != nil {
		return types.Container{}, fmt.Errorf("listing containers: %w", err)
	}

	switch len(containers) {
	case 0:
		return types.Container{}, ErrContainerNotFound
	case 1:
		logging.Debug("locator", "Polaris container with ID: %s", containers[0].ID)
		return containers[0], nil
	default:
		names := make([]string, 0, len(containers))
		for _, c := range containers {
			names = append(names, containerName(c))
		}
		return types.Container{}, &AmbiguousContainerError{Names: names}
	}
}

func containerName(c types.Container) string {
	if len(c.Names) == 0 {
		return c.ID[:12]
	}
	return strings.TrimPrefix(c.Names[0], "/")
}
