package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/devlog/internal"
	"github.com/spf13/cobra"
)

var (
	searchDir   string
	searchScope string
	searchDays  int
	searchLimit int
)

var (
	// Styles
	matchHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212"))

	snippetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true)
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search local devlog documents",
	Long: `Search devlog documents for matching conversation content.

Scopes: prompts (user turns only), conversations (user and assistant,
the default), all (additionally tool summaries).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]

		results, err := internal.SearchDevlogs(searchDir, query, internal.SearchOptions{
			Scope: internal.ParseSearchScope(searchScope),
			Days:  searchDays,
			Limit: searchLimit,
		})
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		if len(results) == 0 {
			fmt.Printf("No matches for %q\n", query)
			return nil
		}

		for _, result := range results {
			header := fmt.Sprintf("[%s] %s", result.EntryType, result.SessionFile)
			fmt.Println(matchHeaderStyle.Render(header))
			fmt.Println(metaStyle.Render(fmt.Sprintf("  %s  %s", formatTimestamp(result.Timestamp), result.Project)))
			fmt.Println(snippetStyle.Render("  " + result.Snippet))
			fmt.Println()
		}
		fmt.Printf("%d match(es)\n", len(results))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchDir, "dir", ".devlog", "Directory to search")
	searchCmd.Flags().StringVar(&searchScope, "scope", "conversations", "Search scope (prompts, conversations, all)")
	searchCmd.Flags().IntVar(&searchDays, "days", 0, "Only search sessions from the last N days (0 = all)")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 20, "Maximum number of results")
}

func formatTimestamp(ts string) string {
	if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
		return parsed.Format("2006-01-02 15:04")
	}
	return ts
}
