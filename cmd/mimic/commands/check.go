package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/teranos/mimic/config"
	"github.com/teranos/mimic/errors"
	"github.com/teranos/mimic/manifest"
)

var (
	checkManifest string
	checkOutput   string
)

// CheckCmd checks whether generated doubles are up to date
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that generated doubles are up to date",
	Long: `Check that generated doubles match the current manifest.

This command regenerates every unit in memory and compares the result
with the files on disk.

Exit codes:
  0 - Doubles are up to date
  1 - Doubles are out of date or missing

Examples:
  mimic check                      # Check against mimic.yaml
  mimic check -m contracts.yaml    # Explicit manifest`,
	RunE: runCheck,
}

func init() {
	CheckCmd.Flags().StringVarP(&checkManifest, "manifest", "m", "mimic.yaml", "Manifest file to check against")
	CheckCmd.Flags().StringVarP(&checkOutput, "output", "o", "", "Directory holding generated doubles (default: from config)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	fmt.Println("Checking generated doubles...")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	outputDir := checkOutput
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}

	m, err := manifest.Load(checkManifest)
	if err != nil {
		return err
	}
	artifacts, err := buildAll(cfg, m)
	if err != nil {
		return err
	}

	var stale []string
	for _, a := range artifacts {
		outputPath := filepath.Join(outputDir, a.file)
		existing, err := os.ReadFile(outputPath)
		if err != nil {
			stale = append(stale, fmt.Sprintf("%s (missing)", outputPath))
			continue
		}
		if string(existing) != a.artifact.Text {
			stale = append(stale, outputPath)
		}
	}

	if len(stale) == 0 {
		fmt.Println("✓ Doubles are up to date")
		return nil
	}

	fmt.Println("✗ Doubles are out of date.")
	for _, file := range stale {
		fmt.Printf("  - %s\n", file)
	}
	return errors.New("doubles are out of date - run 'mimic generate' to update")
}
