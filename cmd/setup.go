package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kameshsampath/polaris-spark-devbox/internal/artifacts"
	"github.com/kameshsampath/polaris-spark-devbox/internal/compose"
	"github.com/kameshsampath/polaris-spark-devbox/internal/config"
	"github.com/kameshsampath/polaris-spark-devbox/internal/setup"
	"github.com/kameshsampath/polaris-spark-devbox/pkg/logging"
)

// Flag values for the setup command. Each one overrides the corresponding
// configuration key; unset flags leave the env/file-resolved value in place.
var (
	setupProject         string
	setupHost            string
	setupPort            string
	setupCatalog         string
	setupBaseLocation    string
	setupPrincipal       string
	setupPrincipalRole   string
	setupCatalogRole     string
	setupOutputDir       string
	setupSkipArtifacts   bool
	setupCopyCredentials bool
	setupDebug           bool
)

func newSetupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Provision the local Polaris server and render verification artifacts",
		Long: `Runs the full provisioning sequence against the running Polaris container:

1. Locates the Polaris container (scoped by compose project if given).
2. Extracts the root principal credentials from the container logs.
3. Resolves the API port (explicit flag, then published mapping, then 8181).
4. Exchanges the root credentials for a bearer token.
5. Creates the catalog, the principal, a principal role and a catalog role,
   wires them together, and grants CATALOG_MANAGE_CONTENT.

Individual API failures (e.g. resources that already exist from a previous
run) are reported and the remaining independent steps still run; steps that
depend on a failed step are skipped. Missing container, missing credentials,
or a failed token exchange abort the run.

Configuration comes from .env / environment variables / .devbox/config.yaml;
flags override everything.`,
		Args: cobra.NoArgs,
		RunE: runSetup,
	}

	cmd.Flags().StringVar(&setupProject, "project", "", "compose project name to scope the container lookup")
	cmd.Flags().StringVar(&setupHost, "host", "", "Polaris API host (default \"localhost\")")
	cmd.Flags().StringVar(&setupPort, "port", "", "Polaris API port (default: resolved from the container)")
	cmd.Flags().StringVar(&setupCatalog, "catalog", "", "catalog name (default \"my_catalog\")")
	cmd.Flags().StringVar(&setupBaseLocation, "base-location", "", "catalog default base location (default \"file:///data/polaris\")")
	cmd.Flags().StringVar(&setupPrincipal, "principal", "", "principal name (default \"polarisuser\")")
	cmd.Flags().StringVar(&setupPrincipalRole, "principal-role", "", "principal role name (default \"polarisuser_role\")")
	cmd.Flags().StringVar(&setupCatalogRole, "catalog-role", "", "catalog role name (default \"my_catalog_role\")")
	cmd.Flags().StringVar(&setupOutputDir, "output-dir", "", "directory the artifacts are written under (default \".\")")
	cmd.Flags().BoolVar(&setupSkipArtifacts, "skip-artifacts", false, "skip rendering the verification artifacts")
	cmd.Flags().BoolVar(&setupCopyCredentials, "copy-credentials", false, "copy the principal credentials to the clipboard")
	cmd.Flags().BoolVar(&setupDebug, "debug", false, "enable verbose logging")

	return cmd
}

func runSetup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	applySetupFlags(cmd, &cfg)

	level := logging.ParseLevel(cfg.LogLevel)
	if setupDebug {
		level = logging.LevelDebug
	}
	logging.InitForCLI(level, os.Stderr)
	logging.SetRunID(uuid.NewString()[:8])

	runtime, err := compose.NewClient()
	if err != nil {
		return fmt.Errorf("connecting to the container runtime: %w", err)
	}
	defer runtime.Close()

	runner := setup.New(cfg, runtime, setup.NewConsoleReporter())
	res, err := runner.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("provisioning failed: %w", err)
	}

	if !setupSkipArtifacts {
		written, err := artifacts.NewGenerator(cfg.OutputDir).Render(artifacts.Vars{
			RootClientID:          res.RootCredential.ClientID,
			RootClientSecret:      res.RootCredential.ClientSecret,
			Host:                  res.Host,
			Port:                  res.Port,
			PrincipalClientID:     res.PrincipalCredential.ClientID,
			PrincipalClientSecret: res.PrincipalCredential.ClientSecret,
			CatalogName:           res.CatalogName,
		})
		if err != nil {
			return fmt.Errorf("rendering artifacts: %w", err)
		}
		for _, path := range written {
			fmt.Printf("Wrote %s\n", path)
		}
	}

	if setupCopyCredentials {
		pair := fmt.Sprintf("%s:%s", res.PrincipalCredential.ClientID, res.PrincipalCredential.ClientSecret)
		if err := clipboard.WriteAll(pair); err != nil {
			logging.Warn("setup", "Could not copy credentials to clipboard: %v", err)
		} else {
			fmt.Println("Principal credentials copied to clipboard.")
		}
	}

	fmt.Println(renderSummary(res))
	return nil
}

// applySetupFlags overlays explicitly set flags onto the resolved
// configuration.
func applySetupFlags(cmd *cobra.Command, cfg *config.Config) {
	flagTargets := map[string]*string{
		"project":        &cfg.ComposeProject,
		"host":           &cfg.APIHost,
		"port":           &cfg.APIPort,
		"catalog":        &cfg.CatalogName,
		"base-location":  &cfg.DefaultBaseLocation,
		"principal":      &cfg.PrincipalName,
		"principal-role": &cfg.PrincipalRoleName,
		"catalog-role":   &cfg.CatalogRoleName,
		"output-dir":     &cfg.OutputDir,
	}
	for name, target := range flagTargets {
		if cmd.Flags().Changed(name) {
			*target, _ = cmd.Flags().GetString(name)
		}
	}
}

var (
	summaryBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
	summaryTitleStyle = lipgloss.NewStyle().Bold(true)
	summaryWarnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// renderSummary formats the provisioning outcome for the console: the
// connection details a user needs next, and any steps that did not succeed.
func renderSummary(res *setup.Result) string {
	var b strings.Builder

	b.WriteString(summaryTitleStyle.Render("Polaris Devbox Setup") + "\n\n")
	fmt.Fprintf(&b, "Catalog:            %s\n", res.CatalogName)
	fmt.Fprintf(&b, "API endpoint:       http://%s:%s\n", res.Host, res.Port)
	fmt.Fprintf(&b, "Principal:          %s\n", res.PrincipalName)
	fmt.Fprintf(&b, "Principal clientId: %s\n", res.PrincipalCredential.ClientID)
	fmt.Fprintf(&b, "Principal secret:   %s\n", res.PrincipalCredential.ClientSecret)
	fmt.Fprintf(&b, "Root clientId:      %s", res.RootCredential.ClientID)

	if failed := res.Failed(); len(failed) > 0 {
		b.WriteString("\n\n" + summaryWarnStyle.Render("Steps that did not succeed:"))
		for _, s := range failed {
			fmt.Fprintf(&b, "\n  %-22s %s", s.Name, s.Class)
			if s.Err != nil {
				fmt.Fprintf(&b, " (%v)", s.Err)
			}
		}
	}

	return summaryBoxStyle.Render(b.String())
}
