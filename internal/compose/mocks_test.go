package compose

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
)

// mockContainerAPI implements ContainerAPI for tests.
type mockContainerAPI struct {
	containers []types.Container
	listErr    error
	listOpts   container.ListOptions

	logs    []byte
	logsErr error

	inspect    types.ContainerJSON
	inspectErr error
}

func (m *mockContainerAPI) ContainerList(ctx context.Context, options container.ListOptions) ([]types.Container, error) {
	m.listOpts = options
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.containers, nil
}

func (m *mockContainerAPI) ContainerLogs(ctx context.Context, containerID string, options container.LogsOptions) (io.ReadCloser, error) {
	if m.logsErr != nil {
		return nil, m.logsErr
	}
	return io.NopCloser(bytes.NewReader(m.logs)), nil
}

func (m *mockContainerAPI) ContainerInspect(ctx context.Context, containerID string) (types.ContainerJSON, error) {
	if m.inspectErr != nil {
		return types.ContainerJSON{}, m.inspectErr
	}
	return m.inspect, nil
}

// frameStdout wraps text in the daemon's stdout multiplexing frame, the way
// logs arrive for non-TTY containers.
func frameStdout(text string) []byte {
	payload := []byte(text)
	header := make([]byte, 8)
	header[0] = 1 // stdout
	binary.BigEndian.PutUint32(header[4:], uint32(len(payload)))
	return append(header, payload...)
}
