package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/feedworks/friendfeed/internal/config"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List configured feed sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		for _, src := range cfg.Sources {
			var flags []string
			if src.FetchFullContent {
				flags = append(flags, "full-content")
			}
			if src.SanitizeSummary {
				flags = append(flags, "sanitized")
			}
			suffix := ""
			if len(flags) > 0 {
				suffix = " [" + strings.Join(flags, ", ") + "]"
			}
			fmt.Printf("%s %s (%s, weight %d)%s\n  %s\n",
				src.Icon, src.Name, src.Category, src.EffectiveWeight(), suffix, src.URL)
		}
		return nil
	},
}
