package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Helper function to create a project config file under dir/.devbox.
func createProjectConfigFile(t *testing.T, dir string, content Config) string {
	t.Helper()
	confDir := filepath.Join(dir, projectConfigDir)
	require.NoError(t, os.MkdirAll(confDir, 0755))
	data, err := yaml.Marshal(&content)
	require.NoError(t, err)
	path := filepath.Join(confDir, configFileName)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func mockProjectPath(t *testing.T, dir string) {
	t.Helper()
	original := getProjectConfigPath
	t.Cleanup(func() { getProjectConfigPath = original })
	getProjectConfigPath = func() (string, error) {
		return filepath.Join(dir, projectConfigDir, configFileName), nil
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"COMPOSE_PROJECT_NAME", "POLARIS_CATALOG_NAME", "POLARIS_DEFAULT_BASE_LOCATION",
		"POLARIS_PRINCIPAL_NAME", "POLARIS_PRINCIPAL_ROLE_NAME", "POLARIS_CATALOG_ROLE_NAME",
		"POLARIS_API_HOST", "POLARIS_API_PORT", "DEVBOX_OUTPUT_DIR", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfig_DefaultOnly(t *testing.T) {
	tempDir := t.TempDir()
	mockProjectPath(t, tempDir)
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, GetDefaultConfig(), cfg)
	assert.Equal(t, "my_catalog", cfg.CatalogName)
	assert.Equal(t, "file:///data/polaris", cfg.DefaultBaseLocation)
	assert.Equal(t, "polarisuser", cfg.PrincipalName)
	assert.Equal(t, "localhost", cfg.APIHost)
	// Unset port means "resolve from the container".
	assert.Empty(t, cfg.APIPort)
	assert.Equal(t, 8181, cfg.ContainerPort)
}

func TestLoadConfig_ProjectOverride(t *testing.T) {
	tempDir := t.TempDir()
	mockProjectPath(t, tempDir)
	clearEnv(t)

	createProjectConfigFile(t, tempDir, Config{
		CatalogName: "lakehouse",
		APIHost:     "polaris.local",
	})

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "lakehouse", cfg.CatalogName)
	assert.Equal(t, "polaris.local", cfg.APIHost)
	// Untouched fields keep their defaults.
	assert.Equal(t, "polarisuser", cfg.PrincipalName)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	tempDir := t.TempDir()
	mockProjectPath(t, tempDir)
	clearEnv(t)

	createProjectConfigFile(t, tempDir, Config{CatalogName: "from_file"})

	t.Setenv("POLARIS_CATALOG_NAME", "from_env")
	t.Setenv("POLARIS_API_PORT", "18181")
	t.Setenv("COMPOSE_PROJECT_NAME", "polaris-demo")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "from_env", cfg.CatalogName)
	assert.Equal(t, "18181", cfg.APIPort)
	assert.Equal(t, "polaris-demo", cfg.ComposeProject)
}

func TestLoadConfig_MalformedProjectFile(t *testing.T) {
	tempDir := t.TempDir()
	mockProjectPath(t, tempDir)
	clearEnv(t)

	confDir := filepath.Join(tempDir, projectConfigDir)
	require.NoError(t, os.MkdirAll(confDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(confDir, configFileName), []byte("{not yaml"), 0644))

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestManagementURI(t *testing.T) {
	assert.Equal(t, "http://localhost:8181/api/management/v1", ManagementURI("localhost", "8181"))
}
