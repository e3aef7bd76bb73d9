package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/mimic/cmd/mimic/commands"
	"github.com/teranos/mimic/config"
	"github.com/teranos/mimic/logger"
)

var rootCmd = &cobra.Command{
	Use:   "mimic",
	Short: "mimic - tracking double generator",
	Long: `mimic generates build-time tracking doubles from contract manifests.

A tracking double satisfies a contract surface while recording every
interaction and dispatching each access through a configurable priority
chain: runtime callback, authored override, synthesized default.

Available commands:
  generate - Generate tracking doubles from a manifest
  check    - Check that generated doubles are up to date
  version  - Show version information

Examples:
  mimic generate                    # Generate from mimic.yaml
  mimic generate -m contracts.yaml  # Explicit manifest
  mimic generate --watch            # Regenerate on manifest changes
  mimic check                       # CI freshness gate`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := logger.Initialize(cfg.JSONLogs, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
