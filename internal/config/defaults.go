package config

// Defaults for the provisioning workflow. They match what the Polaris
// quickstart compose setup expects out of the box.
const (
	DefaultCatalogName       = "my_catalog"
	DefaultBaseLocation      = "file:///data/polaris"
	DefaultPrincipalName     = "polarisuser"
	DefaultPrincipalRoleName = "polarisuser_role"
	DefaultCatalogRoleName   = "my_catalog_role"
	DefaultAPIHost           = "localhost"
	DefaultContainerPort     = 8181
	DefaultOutputDir         = "."
	DefaultLogLevel          = "info"
)

// GetDefaultConfig returns the built-in default configuration. APIPort is
// deliberately left empty: an unset port means "resolve it from the running
// container's port mappings".
func GetDefaultConfig() Config {
	return Config{
		CatalogName:         DefaultCatalogName,
		DefaultBaseLocation: DefaultBaseLocation,
		PrincipalName:       DefaultPrincipalName,
		PrincipalRoleName:   DefaultPrincipalRoleName,
		CatalogRoleName:     DefaultCatalogRoleName,
		APIHost:             DefaultAPIHost,
		ContainerPort:       DefaultContainerPort,
		OutputDir:           DefaultOutputDir,
		LogLevel:            DefaultLogLevel,
	}
}
