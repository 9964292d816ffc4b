package polaris

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kameshsampath/polaris-spark-devbox/pkg/logging"
)

const (
	// CatalogManageContent is the privilege granted to the catalog role.
	CatalogManageContent = "CATALOG_MANAGE_CONTENT"

	catalogTypeInternal = "INTERNAL"
	principalTypeUser   = "user"
	grantTypeCatalog    = "catalog"

	// DefaultStorageType is the storage backend for quickstart catalogs.
	DefaultStorageType = "FILE"
)

// CreateCatalog creates an internal, writable catalog.
func (c *Client) CreateCatalog(ctx context.Context, token string, spec CatalogSpec) error {
	if spec.StorageType == "" {
		spec.StorageType = DefaultStorageType
	}
	if len(spec.AllowedLocations) == 0 {
		spec.AllowedLocations = []string{spec.BaseLocation}
	}

	payload := catalogRequest{
		Catalog: catalogBody{
			Name:       spec.Name,
			Type:       catalogTypeInternal,
			ReadOnly:   false,
			Properties: catalogProperties{DefaultBaseLocation: spec.BaseLocation},
			StorageConfigInfo: storageConfig{
				StorageType:      spec.StorageType,
				AllowedLocations: spec.AllowedLocations,
			},
		},
	}

	_, err := c.doJSON(ctx, http.MethodPost, c.managementURL("/catalogs"), token, payload, http.StatusCreated)
	if err != nil {
		return fmt.Errorf("creating catalog %q: %w", spec.Name, err)
	}
	logging.Info("polaris", "Catalog %q created", spec.Name)
	return nil
}

// CreatePrincipal creates a service user and returns the credential pair
// the server mints for it. This is the one place a credential is created
// rather than recovered from logs.
func (c *Client) CreatePrincipal(ctx context.Context, token, name string) (Credential, error) {
	payload := principalRequest{Name: name, Type: principalTypeUser}

	body, err := c.doJSON(ctx, http.MethodPost, c.managementURL("/principals"), token, payload, http.StatusCreated)
	if err != nil {
		return Credential{}, fmt.Errorf("creating principal %q: %w", name, err)
	}

	var resp principalResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Credential{}, fmt.Errorf("decoding principal response: %w", err)
	}
	logging.Info("polaris", "Principal %q created", name)
	return resp.Credentials, nil
}

// CreatePrincipalRole creates a named principal role.
func (c *Client) CreatePrincipalRole(ctx context.Context, token, roleName string) error {
	payload := principalRoleRequest{Name: roleName}

	_, err := c.doJSON(ctx, http.MethodPost, c.managementURL("/principal-roles"), token, payload, http.StatusCreated)
	if err != nil {
		return fmt.Errorf("creating principal role %q: %w", roleName, err)
	}
	logging.Info("polaris", "Principal role %q created", roleName)
	return nil
}

// AssignPrincipalRole assigns a principal role to a principal.
func (c *Client) AssignPrincipalRole(ctx context.Context, token, principalName, roleName string) error {
	payload := principalRoleAssignment{PrincipalRole: namedResource{Name: roleName}}

	url := c.managementURL("/principals/%s/principal-roles", principalName)
	if _, err := c.doJSON(ctx, http.MethodPut, url, token, payload, http.StatusCreated); err != nil {
		return fmt.Errorf("assigning principal role %q to %q: %w", roleName, principalName, err)
	}
	logging.Info("polaris", "Principal role %q assigned to %q", roleName, principalName)
	return nil
}

// CreateCatalogRole creates a role scoped to one catalog.
func (c *Client) CreateCatalogRole(ctx context.Context, token, catalogName, roleName string) error {
	payload := catalogRoleRequest{CatalogRole: namedResource{Name: roleName}}

	url := c.managementURL("/catalogs/%s/catalog-roles", catalogName)
	if _, err := c.doJSON(ctx, http.MethodPost, url, token, payload, http.StatusCreated); err != nil {
		return fmt.Errorf("creating catalog role %q for catalog %q: %w", roleName, catalogName, err)
	}
	logging.Info("polaris", "Catalog role %q created for catalog %q", roleName, catalogName)
	return nil
}

// AssignCatalogRole associates a catalog role with a principal role.
func (c *Client) AssignCatalogRole(ctx context.Context, token, principalRole, catalogName, catalogRole string) error {
	payload := catalogRoleRequest{CatalogRole: namedResource{Name: catalogRole}}

	url := c.managementURL("/principal-roles/%s/catalog-roles/%s", principalRole, catalogName)
	if _, err := c.doJSON(ctx, http.MethodPut, url, token, payload, http.StatusCreated); err != nil {
		return fmt.Errorf("assigning catalog role %q to principal role %q: %w", catalogRole, principalRole, err)
	}
	logging.Info("polaris", "Catalog role %q assigned to principal role %q", catalogRole, principalRole)
	return nil
}

// GrantPrivilege grants a catalog-level privilege to a catalog role.
func (c *Client) GrantPrivilege(ctx context.Context, token, catalogName, catalogRole, privilege string) error {
	payload := grantRequest{Grant: grantBody{Type: grantTypeCatalog, Privilege: privilege}}

	url := c.managementURL("/catalogs/%s/catalog-roles/%s/grants", catalogName, catalogRole)
	if _, err := c.doJSON(ctx, http.MethodPut, url, token, payload, http.StatusCreated); err != nil {
		return fmt.Errorf("granting %s to catalog role %q on %q: %w", privilege, catalogRole, catalogName, err)
	}
	logging.Info("polaris", "Granted %s to catalog role %q on catalog %q", privilege, catalogRole, catalogName)
	return nil
}
