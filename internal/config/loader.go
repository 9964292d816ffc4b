package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osGetwd = os.Getwd

const (
	projectConfigDir = ".devbox"
	configFileName   = "config.yaml"
)

// LoadConfig resolves the devbox configuration by layering, in order:
// built-in defaults, the optional project config file
// (.devbox/config.yaml in the working directory), and environment
// variables. A .env file in the working directory is loaded into the
// environment first if present.
func LoadConfig() (Config, error) {
	cfg := GetDefaultConfig()

	// Optional .env file; a missing file is not an error.
	_ = godotenv.Load()

	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not determine project config path: %v\n", err)
	} else {
		if _, err := os.Stat(projectConfigPath); !os.IsNotExist(err) {
			fileConfig, err := loadConfigFromFile(projectConfigPath)
			if err != nil {
				return Config{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
			}
			cfg = mergeConfigs(cfg, fileConfig)
		}
	}

	return applyEnv(cfg), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadConfigFromFile loads a Config from a YAML file.
func loadConfigFromFile(filePath string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// mergeConfigs merges 'overlay' config into 'base' config. Zero-valued
// overlay fields leave the base value in place.
func mergeConfigs(base, overlay Config) Config {
	merged := base

	if overlay.ComposeProject != "" {
		merged.ComposeProject = overlay.ComposeProject
	}
	if overlay.CatalogName != "" {
		merged.CatalogName = overlay.CatalogName
	}
	if overlay.DefaultBaseLocation != "" {
		merged.DefaultBaseLocation = overlay.DefaultBaseLocation
	}
	if overlay.PrincipalName != "" {
		merged.PrincipalName = overlay.PrincipalName
	}
	if overlay.PrincipalRoleName != "" {
		merged.PrincipalRoleName = overlay.PrincipalRoleName
	}
	if overlay.CatalogRoleName != "" {
		merged.CatalogRoleName = overlay.CatalogRoleName
	}
	if overlay.APIHost != "" {
		merged.APIHost = overlay.APIHost
	}
	if overlay.APIPort != "" {
		merged.APIPort = overlay.APIPort
	}
	if overlay.ContainerPort != 0 {
		merged.ContainerPort = overlay.ContainerPort
	}
	if overlay.OutputDir != "" {
		merged.OutputDir = overlay.OutputDir
	}
	if overlay.LogLevel != "" {
		merged.LogLevel = overlay.LogLevel
	}

	return merged
}

// applyEnv overlays environment variables onto cfg. Each key falls back to
// the value already resolved from defaults and the project config file.
func applyEnv(cfg Config) Config {
	cfg.ComposeProject = env.GetString("COMPOSE_PROJECT_NAME", cfg.ComposeProject)
	cfg.CatalogName = env.GetString("POLARIS_CATALOG_NAME", cfg.CatalogName)
	cfg.DefaultBaseLocation = env.GetString("POLARIS_DEFAULT_BASE_LOCATION", cfg.DefaultBaseLocation)
	cfg.PrincipalName = env.GetString("POLARIS_PRINCIPAL_NAME", cfg.PrincipalName)
	cfg.PrincipalRoleName = env.GetString("POLARIS_PRINCIPAL_ROLE_NAME", cfg.PrincipalRoleName)
	cfg.CatalogRoleName = env.GetString("POLARIS_CATALOG_ROLE_NAME", cfg.CatalogRoleName)
	cfg.APIHost = env.GetString("POLARIS_API_HOST", cfg.APIHost)
	cfg.APIPort = env.GetString("POLARIS_API_PORT", cfg.APIPort)
	cfg.OutputDir = env.GetString("DEVBOX_OUTPUT_DIR", cfg.OutputDir)
	cfg.LogLevel = env.GetString("LOG_LEVEL", cfg.LogLevel)
	return cfg
}
