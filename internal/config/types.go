package config

// Config is the resolved configuration for one devbox run. It is built once
// at command start (defaults, then the optional project config file, then
// environment variables) and passed down to every component; nothing
// re-reads the environment mid-run.
type Config struct {
	// ComposeProject scopes the container lookup to one docker compose
	// project. Empty means any project.
	ComposeProject string `yaml:"composeProject,omitempty"`

	// CatalogName is the name of the catalog created on the Polaris server.
	CatalogName string `yaml:"catalogName,omitempty"`
	// DefaultBaseLocation is the storage base location for the catalog.
	DefaultBaseLocation string `yaml:"defaultBaseLocation,omitempty"`
	// PrincipalName is the service user created for API access.
	PrincipalName string `yaml:"principalName,omitempty"`
	// PrincipalRoleName is the role the principal is assigned to.
	PrincipalRoleName string `yaml:"principalRoleName,omitempty"`
	// CatalogRoleName is the catalog-scoped role that receives the grant.
	CatalogRoleName string `yaml:"catalogRoleName,omitempty"`

	// APIHost is the host the Polaris API is reachable on.
	APIHost string `yaml:"apiHost,omitempty"`
	// APIPort pins the host-side API port. Empty means resolve it from the
	// container's published port mappings, falling back to ContainerPort.
	APIPort string `yaml:"apiPort,omitempty"`
	// ContainerPort is the container-internal port the Polaris API listens on.
	ContainerPort int `yaml:"containerPort,omitempty"`

	// OutputDir is the directory the verification artifacts are written under.
	OutputDir string `yaml:"outputDir,omitempty"`

	// LogLevel is the logging level ("debug", "info", "warn", "error").
	LogLevel string `yaml:"logLevel,omitempty"`
}

// ManagementURI returns the base URI of the Polaris management API for the
// given host and port.
func ManagementURI(host, port string) string {
	return "http://" + host + ":" + port + "/api/management/v1"
}
