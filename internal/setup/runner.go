// Package setup sequences the end-to-end provisioning workflow against a
// running Polaris container: locate the container, recover the bootstrap
// credentials from its logs, exchange them for a token, then drive the
// management API calls that provision a catalog, a principal, roles, and a
// privilege grant.
package setup

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kameshsampath/polaris-spark-devbox/internal/compose"
	"github.com/kameshsampath/polaris-spark-devbox/internal/config"
	"github.com/kameshsampath/polaris-spark-devbox/internal/polaris"
	"github.com/kameshsampath/polaris-spark-devbox/pkg/logging"
)

// ManagementAPI is the slice of the Polaris client the runner drives.
// Satisfied by *polaris.Client and by test mocks.
type ManagementAPI interface {
	ExchangeToken(ctx context.Context, clientID, clientSecret string) (string, error)
	CreateCatalog(ctx context.Context, token string, spec polaris.CatalogSpec) error
	CreatePrincipal(ctx context.Context, token, name string) (polaris.Credential, error)
	CreatePrincipalRole(ctx context.Context, token, roleName string) error
	AssignPrincipalRole(ctx context.Context, token, principalName, roleName string) error
	CreateCatalogRole(ctx context.Context, token, catalogName, roleName string) error
	AssignCatalogRole(ctx context.Context, token, principalRole, catalogName, catalogRole string) error
	GrantPrivilege(ctx context.Context, token, catalogName, catalogRole, privilege string) error
}

// Step names, in sequence order.
const (
	StepLocateContainer     = "locate-container"
	StepExtractCredentials  = "extract-root-credentials"
	StepResolvePort         = "resolve-api-port"
	StepExchangeToken       = "exchange-token"
	StepCreateCatalog       = "create-catalog"
	StepCreatePrincipal     = "create-principal"
	StepCreatePrincipalRole = "create-principal-role"
	StepAssignPrincipalRole = "assign-principal-role"
	StepCreateCatalogRole   = "create-catalog-role"
	StepAssignCatalogRole   = "assign-catalog-role"
	StepGrantPrivileges     = "grant-privileges"
)

// Runner executes the fixed provisioning sequence. It holds no state across
// runs; each Run starts from the resolved configuration.
type Runner struct {
	cfg      config.Config
	runtime  compose.ContainerAPI
	reporter Reporter

	// newManagementAPI builds the API client once the host port is known.
	// Swapped out in tests.
	newManagementAPI func(host, port string) ManagementAPI
}

// New creates a Runner over the given container runtime.
func New(cfg config.Config, runtime compose.ContainerAPI, reporter Reporter) *Runner {
	if reporter == nil {
		reporter = NewConsoleReporter()
	}
	return &Runner{
		cfg:      cfg,
		runtime:  runtime,
		reporter: reporter,
		newManagementAPI: func(host, port string) ManagementAPI {
			return polaris.New(host, port)
		},
	}
}

// step is one entry of the sequence. Steps whose prerequisites did not
// succeed are skipped, never executed against missing state. Fatal steps
// abort the run: every later call needs their output.
type step struct {
	name     string
	fatal    bool
	requires []string
	run      func(ctx context.Context) error
}

// Run executes the sequence and returns the accumulated provisioning
// context. The returned error is non-nil only for fatal outcomes;
// recoverable failures are recorded in the result's step list.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	res := &Result{
		Host:              r.cfg.APIHost,
		CatalogName:       r.cfg.CatalogName,
		PrincipalName:     r.cfg.PrincipalName,
		PrincipalRoleName: r.cfg.PrincipalRoleName,
		CatalogRoleName:   r.cfg.CatalogRoleName,
	}

	var (
		token string
		api   ManagementAPI
	)

	steps := []step{
		{
			name:  StepLocateContainer,
			fatal: true,
			run: func(ctx context.Context) error {
				found, err := compose.Locate(ctx, r.runtime, r.cfg.ComposeProject)
				if err != nil {
					return err
				}
				res.ContainerID = found.ID
				return nil
			},
		},
		{
			name:     StepExtractCredentials,
			fatal:    true,
			requires: []string{StepLocateContainer},
			run: func(ctx context.Context) error {
				cred, err := compose.RootCredentials(ctx, r.runtime, res.ContainerID)
				if err != nil {
					return err
				}
				res.RootCredential = cred
				return nil
			},
		},
		{
			name:     StepResolvePort,
			requires: []string{StepLocateContainer},
			run: func(ctx context.Context) error {
				res.Port = r.resolvePort(ctx, res.ContainerID)
				api = r.newManagementAPI(res.Host, res.Port)
				return nil
			},
		},
		{
			name:     StepExchangeToken,
			fatal:    true,
			requires: []string{StepExtractCredentials, StepResolvePort},
			run: func(ctx context.Context) error {
				t, err := api.ExchangeToken(ctx, res.RootCredential.ClientID, res.RootCredential.ClientSecret)
				if err != nil {
					return err
				}
				if t == "" {
					return fmt.Errorf("token endpoint returned an empty access token")
				}
				token = t
				return nil
			},
		},
		{
			name:     StepCreateCatalog,
			requires: []string{StepExchangeToken},
			run: func(ctx context.Context) error {
				return api.CreateCatalog(ctx, token, polaris.CatalogSpec{
					Name:         r.cfg.CatalogName,
					BaseLocation: r.cfg.DefaultBaseLocation,
				})
			},
		},
		{
			name:     StepCreatePrincipal,
			requires: []string{StepExchangeToken},
			run: func(ctx context.Context) error {
				cred, err := api.CreatePrincipal(ctx, token, r.cfg.PrincipalName)
				if err != nil {
					return err
				}
				res.PrincipalCredential = cred
				return nil
			},
		},
		{
			name:     StepCreatePrincipalRole,
			requires: []string{StepExchangeToken},
			run: func(ctx context.Context) error {
				return api.CreatePrincipalRole(ctx, token, r.cfg.PrincipalRoleName)
			},
		},
		{
			name:     StepAssignPrincipalRole,
			requires: []string{StepCreatePrincipal, StepCreatePrincipalRole},
			run: func(ctx context.Context) error {
				return api.AssignPrincipalRole(ctx, token, r.cfg.PrincipalName, r.cfg.PrincipalRoleName)
			},
		},
		{
			name:     StepCreateCatalogRole,
			requires: []string{StepCreateCatalog},
			run: func(ctx context.Context) error {
				return api.CreateCatalogRole(ctx, token, r.cfg.CatalogName, r.cfg.CatalogRoleName)
			},
		},
		{
			name:     StepAssignCatalogRole,
			requires: []string{StepCreateCatalogRole, StepCreatePrincipalRole},
			run: func(ctx context.Context) error {
				return api.AssignCatalogRole(ctx, token, r.cfg.PrincipalRoleName, r.cfg.CatalogName, r.cfg.CatalogRoleName)
			},
		},
		{
			name:     StepGrantPrivileges,
			requires: []string{StepCreateCatalogRole},
			run: func(ctx context.Context) error {
				return api.GrantPrivilege(ctx, token, r.cfg.CatalogName, r.cfg.CatalogRoleName, polaris.CatalogManageContent)
			},
		},
	}

	succeeded := make(map[string]bool, len(steps))
	for _, s := range steps {
		if missing := firstUnmet(s.requires, succeeded); missing != "" {
			result := StepResult{
				Name:  s.name,
				Class: ClassSkipped,
				Err:   fmt.Errorf("prerequisite step %s did not succeed", missing),
			}
			res.Steps = append(res.Steps, result)
			r.reporter.StepFinished(result)
			continue
		}

		r.reporter.StepStarted(s.name)
		err := s.run(ctx)

		result := StepResult{Name: s.name, Class: ClassOK, Err: err}
		if err != nil {
			if s.fatal {
				result.Class = ClassFatal
			} else {
				result.Class = ClassRecoverable
			}
		} else {
			succeeded[s.name] = true
		}
		res.Steps = append(res.Steps, result)
		r.reporter.StepFinished(result)

		if result.Class == ClassFatal {
			return res, fmt.Errorf("step %s: %w", s.name, err)
		}
	}

	return res, nil
}

func firstUnmet(requires []string, succeeded map[string]bool) string {
	for _, name := range requires {
		if !succeeded[name] {
			return name
		}
	}
	return ""
}

// resolvePort picks the API port: an explicit configuration value wins,
// then the container's published mapping, then the container-internal
// default.
func (r *Runner) resolvePort(ctx context.Context, containerID string) string {
	if r.cfg.APIPort != "" {
		return r.cfg.APIPort
	}
	port, ok, err := compose.HostPort(ctx, r.runtime, containerID, r.cfg.ContainerPort)
	if err != nil {
		logging.Error("setup", err, "Could not inspect port mappings, using default port")
	} else if ok {
		return port
	}
	return strconv.Itoa(r.cfg.ContainerPort)
}
