package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/devlog/internal"
	"github.com/spf13/cobra"
)

var (
	statsDir  string
	statsDays int
)

var statsTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("62"))

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-project session activity",
	Long: `Aggregate activity across local devlog documents: session counts,
prompt counts, tool calls, files touched, and word counts per project.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := internal.GatherProjectStats(statsDir, statsDays)
		if err != nil {
			return fmt.Errorf("failed to gather stats: %w", err)
		}

		if len(stats) == 0 {
			fmt.Printf("No activity in the last %d days\n", statsDays)
			return nil
		}

		fmt.Println(statsTitleStyle.Render(fmt.Sprintf("Project activity (last %d days)", statsDays)))
		fmt.Println()

		w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', tabwriter.AlignRight)
		_, _ = fmt.Fprintln(w, "Project\tSessions\tPrompts\tTool Calls\tFiles\tLast Activity\t")
		for _, stat := range stats {
			_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%s\t\n",
				stat.Project,
				stat.SessionCount,
				stat.PromptCount,
				stat.ToolCalls,
				stat.FilesTouched,
				formatTimestamp(stat.LastActivity),
			)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		totalSessions, totalPrompts := 0, 0
		for _, stat := range stats {
			totalSessions += stat.SessionCount
			totalPrompts += stat.PromptCount
		}
		fmt.Printf("\nTotal: %d sessions, %d prompts across %d project(s)\n",
			totalSessions, totalPrompts, len(stats))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVar(&statsDir, "dir", ".devlog", "Directory to scan")
	statsCmd.Flags().IntVar(&statsDays, "days", 7, "Window in days (0 = all)")
}
