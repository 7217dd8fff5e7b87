package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/devlog/internal"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "devlog",
	Short: "Capture and relay coding assistant sessions",
	Long: `devlog ingests line-delimited session transcripts from an interactive
coding assistant and reduces them to durable, human-readable records.

Each ingested session becomes a JSON document under the project's .devlog
directory: the conversation (user turns, assistant turns, collapsed tool
summaries) plus git context and session metadata. Documents can optionally
be relayed to a shared receiver for cross-machine retrieval.

Quick Start:
  devlog ingest session.jsonl    # Ingest a transcript
  devlog search "auth bug"       # Search local devlogs
  devlog stats --days 7          # Per-project activity
  devlog serve                   # Run the shared receiver

For detailed usage, see: https://github.com/iksnae/devlog`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Custom config file location (default ~/.devlog/config.yaml)")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// loadConfig loads the config from --config or the default location
func loadConfig() (*internal.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = internal.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}
	return internal.LoadConfig(path)
}
