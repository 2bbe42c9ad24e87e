// Package cli implements the mapkeeper command tree.
package cli

import (
	"github.com/spf13/cobra"

	configfile "github.com/mapkeeper/mapkeeper-cli/internal/adapters/driven/config/file"
	"github.com/mapkeeper/mapkeeper-cli/internal/logger"
)

var (
	version = "dev"

	verboseFlag bool

	// cfg carries file-based defaults into the commands. Loaded once
	// before any command runs; flags still win.
	cfg = configfile.Default()
)

var rootCmd = &cobra.Command{
	Use:   "mapkeeper",
	Short: "Offline data-prep utilities for the Mapkeeper quote explorer",
	Long: `Mapkeeper prepares quote data for the Mapkeeper web application.

It normalises Kindle highlight exports into canonical quote records
(JSONL) and builds a semantic nearest-neighbour graph over them using
text embeddings.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseFlag)

		loaded, err := configfile.Load("")
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the command tree. The version string is stamped in by
// the build.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.Execute()
}
