package compose

import (
	"context"
	"fmt"

	"github.com/docker/go-connections/nat"

	"github.com/kameshsampath/polaris-spark-devbox/pkg/logging"
)

// HostPort inspects the container's published port mappings and returns the
// host-side port bound to the given container-internal TCP port. The second
// return value is false when the port is not published; that is not an
// error, callers fall back to a default. The error return covers inspect
// failures only.
func HostPort(ctx context.Context, api ContainerAPI, containerID string, containerPort int) (string, bool, error) {
	info, err := api.ContainerInspect(ctx, containerID)
	if err != nil {
		return "", false, fmt.Errorf("inspecting container %s: %w", containerID, err)
	}
	if info.NetworkSettings == nil {
		return "", false, nil
	}

	key := nat.Port(fmt.Sprintf("%d/tcp", containerPort))
	bindings := info.NetworkSettings.Ports[key]
	if len(bindings) == 0 {
		logging.Debug("ports", "No host binding for container port %s", key)
		return "", false, nil
	}
	return bindings[0].HostPort, true, nil
}
