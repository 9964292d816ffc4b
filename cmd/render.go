package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kameshsampath/polaris-spark-devbox/internal/artifacts"
	"github.com/kameshsampath/polaris-spark-devbox/internal/config"
)

// Flag values for the render command.
var (
	renderRootID          string
	renderRootSecret      string
	renderHost            string
	renderPort            string
	renderPrincipalID     string
	renderPrincipalSecret string
	renderCatalog         string
	renderOutputDir       string
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the verification artifacts from explicit values",
		Long: `Renders the verification notebook and HTTP script without touching
Docker or the Polaris API. Useful when a previous setup run printed the
credentials but artifact rendering failed, or to re-point the artifacts
at a different host or port.`,
		Args: cobra.NoArgs,
		RunE: runRender,
	}

	cmd.Flags().StringVar(&renderRootID, "root-id", "", "root principal client id")
	cmd.Flags().StringVar(&renderRootSecret, "root-secret", "", "root principal client secret")
	cmd.Flags().StringVar(&renderHost, "host", config.DefaultAPIHost, "Polaris API host")
	cmd.Flags().StringVar(&renderPort, "port", "8181", "Polaris API port")
	cmd.Flags().StringVar(&renderPrincipalID, "principal-id", "", "principal client id")
	cmd.Flags().StringVar(&renderPrincipalSecret, "principal-secret", "", "principal client secret")
	cmd.Flags().StringVar(&renderCatalog, "catalog", config.DefaultCatalogName, "catalog name")
	cmd.Flags().StringVar(&renderOutputDir, "output-dir", config.DefaultOutputDir, "directory the artifacts are written under")

	_ = cmd.MarkFlagRequired("principal-id")
	_ = cmd.MarkFlagRequired("principal-secret")

	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	written, err := artifacts.NewGenerator(renderOutputDir).Render(artifacts.Vars{
		RootClientID:          renderRootID,
		RootClientSecret:      renderRootSecret,
		Host:                  renderHost,
		Port:                  renderPort,
		PrincipalClientID:     renderPrincipalID,
		PrincipalClientSecret: renderPrincipalSecret,
		CatalogName:           renderCatalog,
	})
	if err != nil {
		return err
	}
	for _, path := range written {
		fmt.Printf("Wrote %s\n", path)
	}
	return nil
}
