package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iksnae/devlog/internal"
	"github.com/spf13/cobra"
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest [transcript]",
	Short: "Ingest a session transcript",
	Long: `Ingest a line-delimited session transcript into a devlog document.

With no argument the transcript is discovered: a hook payload on stdin
naming the transcript path is honored first, then the most recently
modified transcript under ~/.claude/projects.

The resulting document is written to <project>/.devlog and, if push is
enabled in the config, relayed to the configured receiver. A failed relay
never fails the ingestion; the local document is authoritative.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		transcriptPath, err := resolveTranscriptPath(args)
		if err != nil {
			return err
		}
		internal.LogInfo("Ingesting session from: %s", transcriptPath)

		file, err := os.Open(transcriptPath)
		if err != nil {
			return fmt.Errorf("failed to open transcript: %w", err)
		}
		defer func() { _ = file.Close() }()

		conversation, err := internal.IngestTranscript(file)
		if err != nil {
			return err
		}

		projectDir := resolveProjectDir()
		git := internal.ResolveGitContext(cmd.Context(), projectDir)
		sessionID := sessionIDFromPath(transcriptPath)

		doc := internal.BuildSessionDocument(conversation, git, sessionID, projectDir)

		outputPath, err := internal.WriteOutput(doc)
		if err != nil {
			return err
		}
		internal.LogInfo("Wrote devlog to: %s", outputPath)

		cfg, err := loadConfig()
		if err != nil {
			internal.LogWarn("Failed to load config, skipping push: %v", err)
			return nil
		}
		pusher := internal.NewPusher(cfg.Push)
		if err := pusher.Push(cmd.Context(), doc, internal.MachineID()); err != nil {
			internal.LogWarn("Failed to push session: %v", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func resolveTranscriptPath(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	// A hook invocation pipes a JSON payload naming the transcript.
	if stat, err := os.Stdin.Stat(); err == nil && stat.Mode()&os.ModeCharDevice == 0 {
		if path, ok := internal.TranscriptFromHookInput(os.Stdin); ok {
			return path, nil
		}
	}

	return internal.FindMostRecentTranscript()
}

func resolveProjectDir() string {
	if dir := os.Getenv("CLAUDE_PROJECT_DIR"); dir != "" {
		return dir
	}
	if dir, err := os.Getwd(); err == nil {
		return dir
	}
	return "."
}

func sessionIDFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
