package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/teranos/mimic/config"
	"github.com/teranos/mimic/contract"
	"github.com/teranos/mimic/errors"
	"github.com/teranos/mimic/flatten"
	"github.com/teranos/mimic/logger"
	"github.com/teranos/mimic/manifest"
	"github.com/teranos/mimic/pipeline"
	"github.com/teranos/mimic/render"
)

var (
	generateManifest string
	generateOutput   string
	generateWatch    bool
)

// GenerateCmd represents the generate command
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate tracking doubles from a manifest",
	Long: `Generate tracking doubles for every unit declared in the manifest.

Each unit flattens its target surfaces, resolves collision-free member
names, builds interceptor models, and renders one Go artifact. A unit
that fails emits no file at all.

Examples:
  mimic generate                    # Generate from mimic.yaml
  mimic generate -m contracts.yaml  # Explicit manifest
  mimic generate -o internal/mocks  # Write artifacts to a directory
  mimic generate --watch            # Regenerate on manifest changes`,
	RunE: runGenerate,
}

func init() {
	GenerateCmd.Flags().StringVarP(&generateManifest, "manifest", "m", "mimic.yaml", "Manifest file to generate from")
	GenerateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output directory (default: from config)")
	GenerateCmd.Flags().BoolVarP(&generateWatch, "watch", "w", false, "Watch the manifest and regenerate on change")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	outputDir := generateOutput
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}

	m, err := manifest.Load(generateManifest)
	if err != nil {
		return err
	}
	if err := generateAll(cfg, m, outputDir); err != nil {
		return err
	}

	if !generateWatch {
		return nil
	}

	watcher, err := manifest.NewWatcher(generateManifest)
	if err != nil {
		return err
	}
	defer watcher.Stop()

	watcher.OnReload(func(m *manifest.Manifest) error {
		return generateAll(cfg, m, outputDir)
	})
	watcher.Start()

	fmt.Printf("Watching %s for changes (Ctrl-C to stop)\n", generateManifest)
	select {}
}

// generateAll renders every unit in the manifest and writes the artifacts.
func generateAll(cfg *config.Config, m *manifest.Manifest, outputDir string) error {
	artifacts, err := buildAll(cfg, m)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return errors.Wrap(err, "failed to create output directory")
	}
	for _, a := range artifacts {
		outputPath := filepath.Join(outputDir, a.file)
		if err := os.WriteFile(outputPath, []byte(a.artifact.Text), 0644); err != nil {
			return errors.Wrapf(err, "failed to write %s", outputPath)
		}
		fmt.Printf("✓ Generated %s\n", outputPath)
	}
	return nil
}

// built pairs a rendered artifact with its output file name.
type built struct {
	file     string
	artifact *pipeline.Artifact
}

// buildAll renders every unit in the manifest without touching the
// filesystem, so generation and freshness checking share one path.
func buildAll(cfg *config.Config, m *manifest.Manifest) ([]built, error) {
	reg, err := m.Registry()
	if err != nil {
		return nil, err
	}

	p := pipeline.New(logger.ComponentLogger("pipeline"))
	out := make([]built, 0, len(m.Units))
	for i, unit := range m.Units {
		req, err := unitRequest(cfg, reg, unit)
		if err != nil {
			return nil, errors.Wrapf(err, "unit %d (%s)", i, strings.Join(unit.Targets, ", "))
		}
		artifact, err := p.Generate(req)
		if err != nil {
			return nil, errors.Wrapf(err, "unit %d (%s)", i, strings.Join(unit.Targets, ", "))
		}
		out = append(out, built{
			file:     fileName(artifact.Unit),
			artifact: artifact,
		})
	}
	return out, nil
}

// unitRequest turns one manifest unit into a pipeline request, filling
// unset fields from the tool configuration.
func unitRequest(cfg *config.Config, reg *flatten.Registry, unit manifest.Unit) (pipeline.Request, error) {
	surface, err := flatten.Flatten(reg, unit.Targets...)
	if err != nil {
		return pipeline.Request{}, err
	}

	strategy := unit.Strategy
	if strategy == "" {
		strategy = cfg.Strategy
	}
	pkg := unit.Package
	if pkg == "" {
		pkg = cfg.Package
	}

	var typeArgs []contract.TypeDescriptor
	for _, ref := range unit.TypeArguments {
		t, err := ref.Descriptor()
		if err != nil {
			return pipeline.Request{}, err
		}
		typeArgs = append(typeArgs, t)
	}

	return pipeline.Request{
		Surface:       surface,
		Strategy:      render.Strategy(strategy),
		Strict:        unit.Strict || cfg.Strict,
		Package:       pkg,
		TypeArguments: typeArgs,
	}, nil
}

// fileName derives the artifact file name from the unit name:
// CalculatorMimic becomes calculator_mimic.go.
func fileName(unit string) string {
	var sb strings.Builder
	for i, r := range unit {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('_')
			}
			sb.WriteRune(unicode.ToLower(r))
		} else {
			sb.WriteRune(r)
		}
	}
	sb.WriteString(".go")
	return sb.String()
}
