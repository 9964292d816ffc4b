package polaris

// Credential is a client id / client secret pair minted by the management
// API when a principal is created.
type Credential struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
}

// CatalogSpec describes the catalog to create. AllowedLocations defaults to
// a single-element list containing BaseLocation when left empty.
type CatalogSpec struct {
	Name             string
	BaseLocation     string
	StorageType      string
	AllowedLocations []string
}

// Request/response bodies of the management API. Shapes follow the Polaris
// management OpenAPI surface.

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type catalogRequest struct {
	Catalog catalogBody `json:"catalog"`
}

type catalogBody struct {
	Name              string            `json:"name"`
	Type              string            `json:"type"`
	ReadOnly          bool              `json:"readOnly"`
	Properties        catalogProperties `json:"properties"`
	StorageConfigInfo storageConfig     `json:"storageConfigInfo"`
}

type catalogProperties struct {
	DefaultBaseLocation string `json:"default-base-location"`
}

type storageConfig struct {
	StorageType      string   `json:"storageType"`
	AllowedLocations []string `json:"allowedLocations"`
}

type principalRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type principalResponse struct {
	Credentials Credential `json:"credentials"`
}

type principalRoleRequest struct {
	Name string `json:"name"`
}

type namedResource struct {
	Name string `json:"name"`
}

type principalRoleAssignment struct {
	PrincipalRole namedResource `json:"principalRole"`
}

type catalogRoleRequest struct {
	CatalogRole namedResource `json:"catalogRole"`
}

type grantRequest struct {
	Grant grantBody `json:"grant"`
}

type grantBody struct {
	Type      string `json:"type"`
	Privilege string `json:"privilege"`
}
