package setup

import (
	"bytes"
	"context"
	"io"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"

	"github.com/kameshsampath/polaris-spark-devbox/internal/polaris"
)

// mockRuntime implements compose.ContainerAPI.
type mockRuntime struct {
	containers []types.Container
	listErr    error
	logs       string
	logsErr    error
	ports      nat.PortMap
	inspectErr error
}

func (m *mockRuntime) ContainerList(ctx context.Context, options container.ListOptions) ([]types.Container, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.containers, nil
}

func (m *mockRuntime) ContainerLogs(ctx context.Context, containerID string, options container.LogsOptions) (io.ReadCloser, error) {
	if m.logsErr != nil {
		return nil, m.logsErr
	}
	return io.NopCloser(bytes.NewReader([]byte(m.logs))), nil
}

func (m *mockRuntime) ContainerInspect(ctx context.Context, containerID string) (types.ContainerJSON, error) {
	if m.inspectErr != nil {
		return types.ContainerJSON{}, m.inspectErr
	}
	return types.ContainerJSON{
		NetworkSettings: &types.NetworkSettings{
			NetworkSettingsBase: types.NetworkSettingsBase{Ports: m.ports},
		},
	}, nil
}

// healthyRuntime is a runtime with one running container whose logs carry a
// single root credentials line and whose API port is published on 18181.
func healthyRuntime() *mockRuntime {
	return &mockRuntime{
		containers: []types.Container{{ID: "abc123def456", Names: []string{"/demo-polaris-1"}}},
		logs:       "2024-06-01T00:00:00.000000000Z INFO realm root principal credentials: root-id:root-secret\n",
		ports: nat.PortMap{
			"8181/tcp": []nat.PortBinding{{HostIP: "0.0.0.0", HostPort: "18181"}},
		},
	}
}

// mockManagementAPI implements ManagementAPI, recording call order and
// returning per-call canned errors.
type mockManagementAPI struct {
	calls []string

	token    string
	tokenErr error

	principalCred polaris.Credential

	catalogErr           error
	principalErr         error
	principalRoleErr     error
	assignPrincipalErr   error
	catalogRoleErr       error
	assignCatalogRoleErr error
	grantErr             error

	host string
	port string
}

func (m *mockManagementAPI) ExchangeToken(ctx context.Context, clientID, clientSecret string) (string, error) {
	m.calls = append(m.calls, "exchange-token")
	return m.token, m.tokenErr
}

func (m *mockManagementAPI) CreateCatalog(ctx context.Context, token string, spec polaris.CatalogSpec) error {
	m.calls = append(m.calls, "create-catalog")
	return m.catalogErr
}

func (m *mockManagementAPI) CreatePrincipal(ctx context.Context, token, name string) (polaris.Credential, error) {
	m.calls = append(m.calls, "create-principal")
	return m.principalCred, m.principalErr
}

func (m *mockManagementAPI) CreatePrincipalRole(ctx context.Context, token, roleName string) error {
	m.calls = append(m.calls, "create-principal-role")
	return m.principalRoleErr
}

func (m *mockManagementAPI) AssignPrincipalRole(ctx context.Context, token, principalName, roleName string) error {
	m.calls = append(m.calls, "assign-principal-role")
	return m.assignPrincipalErr
}

func (m *mockManagementAPI) CreateCatalogRole(ctx context.Context, token, catalogName, roleName string) error {
	m.calls = append(m.calls, "create-catalog-role")
	return m.catalogRoleErr
}

func (m *mockManagementAPI) AssignCatalogRole(ctx context.Context, token, principalRole, catalogName, catalogRole string) error {
	m.calls = append(m.calls, "assign-catalog-role")
	return m.assignCatalogRoleErr
}

func (m *mockManagementAPI) GrantPrivilege(ctx context.Context, token, catalogName, catalogRole, privilege string) error {
	m.calls = append(m.calls, "grant-privileges")
	return m.grantErr
}

// recordingReporter captures step transitions for assertions.
type recordingReporter struct {
	started  []string
	finished []StepResult
}

func (r *recordingReporter) StepStarted(name string) {
	r.started = append(r.started, name)
}

func (r *recordingReporter) StepFinished(result StepResult) {
	r.finished = append(r.finished, result)
}
