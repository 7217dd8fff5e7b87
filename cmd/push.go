package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/iksnae/devlog/internal"
	"github.com/spf13/cobra"
)

// pushCmd represents the push command
var pushCmd = &cobra.Command{
	Use:   "push [devlog.json]",
	Short: "Push a devlog document to the configured receiver",
	Long: `Push an already-written devlog document to the configured receiver.

With no argument the most recent document in the current directory's
.devlog folder is pushed. Unlike the push that follows an ingest, a
failure here is reported as an error.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var devlogPath string
		if len(args) == 1 {
			devlogPath = args[0]
		} else {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}
			devlogPath, err = internal.FindMostRecentDevlog(cwd)
			if err != nil {
				return err
			}
		}
		internal.LogInfo("Pushing devlog from: %s", devlogPath)

		data, err := os.ReadFile(devlogPath)
		if err != nil {
			return fmt.Errorf("failed to read devlog file: %w", err)
		}
		var doc internal.SessionDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to parse devlog file %s: %w", devlogPath, err)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if !cfg.Push.Enabled {
			return fmt.Errorf("push is disabled in config")
		}

		machineID := doc.MachineID
		if machineID == "" {
			machineID = internal.MachineID()
		}

		pusher := internal.NewPusher(cfg.Push)
		return pusher.Push(cmd.Context(), &doc, machineID)
	},
}

func init() {
	rootCmd.AddCommand(pushCmd)
}
