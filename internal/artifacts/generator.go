// Package artifacts renders the human-facing verification documents of a
// completed setup run: a Jupyter notebook and an HTTP request script, both
// produced from embedded templates and one flat variable mapping.
package artifacts

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/kameshsampath/polaris-spark-devbox/pkg/logging"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Vars is the flat template-variable mapping both artifacts are rendered
// from.
type Vars struct {
	RootClientID          string
	RootClientSecret      string
	Host                  string
	Port                  string
	PrincipalClientID     string
	PrincipalClientSecret string
	CatalogName           string
}

// The fixed template/output pairs. Output paths are relative to the
// generator's output directory.
var renderTargets = []struct {
	templateName string
	outputPath   string
}{
	{"setup_verify_notebook.ipynb.tmpl", filepath.Join("notebooks", "polaris_setup_verify.ipynb")},
	{"polaris_api.http.tmpl", filepath.Join("http", "polaris_api.http")},
}

// Generator writes rendered artifacts under one output directory.
type Generator struct {
	outputDir string
}

// NewGenerator creates a Generator rooted at outputDir.
func NewGenerator(outputDir string) *Generator {
	return &Generator{outputDir: outputDir}
}

// Render renders both artifacts from vars, creating parent directories and
// overwriting any prior content. It returns the written paths.
func (g *Generator) Render(vars Vars) ([]string, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing artifact templates: %w", err)
	}

	var written []string
	for _, target := range renderTargets {
		var buf bytes.Buffer
		if err := tmpl.ExecuteTemplate(&buf, target.templateName, vars); err != nil {
			return written, fmt.Errorf("rendering %s: %w", target.templateName, err)
		}

		outPath := filepath.Join(g.outputDir, target.outputPath)
		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return written, fmt.Errorf("creating output directory for %s: %w", outPath, err)
		}
		if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
			return written, fmt.Errorf("writing %s: %w", outPath, err)
		}

		logging.Info("artifacts", "Wrote %s", outPath)
		written = append(written, outPath)
	}
	return written, nil
}
