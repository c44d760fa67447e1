package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/feedworks/friendfeed/internal/config"
	"github.com/feedworks/friendfeed/internal/store"
)

var (
	statHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"})

	statDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"})

	statCountStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"})
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show snapshot statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		path := flagOutput
		if path == "" {
			path = cfg.OutputPath
		}
		if path == "" {
			path = config.DefaultOutputPath()
		}

		snap := store.Load(path)

		fmt.Println(statHeaderStyle.Render("friendfeed snapshot"))
		fmt.Printf("Path:      %s\n", path)
		fmt.Printf("Articles:  %s\n", statCountStyle.Render(fmt.Sprintf("%d", snap.Meta.TotalArticles)))
		fmt.Printf("Updated:   %s\n", orDash(snap.Meta.LastUpdated))
		fmt.Printf("Page size: %d\n", snap.Meta.EntriesPerPage)
		if info, err := os.Stat(path); err == nil {
			fmt.Printf("Size:      %s\n", formatBytes(info.Size()))
		}

		if len(snap.Meta.Categories) == 0 {
			return nil
		}

		fmt.Println()
		fmt.Println(statHeaderStyle.Render("Categories"))
		for _, name := range sortedKeys(snap.Meta.Categories) {
			cat := snap.Meta.Categories[name]
			fmt.Printf("%s %s  %s\n", cat.Icon, name, statCountStyle.Render(fmt.Sprintf("%d", cat.Count)))
			for _, src := range sortedKeys(cat.Sources) {
				fmt.Printf("  %s\n", statDimStyle.Render(fmt.Sprintf("%s: %d", src, cat.Sources[src])))
			}
		}
		return nil
	},
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
