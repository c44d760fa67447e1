package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/feedworks/friendfeed/internal/allocate"
	"github.com/feedworks/friendfeed/internal/config"
	"github.com/feedworks/friendfeed/internal/pipeline"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig   string
	flagStrategy string
	flagOutput   string
	flagCapacity int
	flagWorkers  int
	flagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "friendfeed",
	Short: "Incremental friends/blogs feed aggregator",
	Long: `friendfeed pulls articles from configured feed sources into a single
bounded, deduplicated, categorized JSON snapshot, refreshed incrementally on
each run. The snapshot powers a static friends/blogs page with no database
behind it.`,
	RunE: runAggregate,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.Flags().StringVar(&flagStrategy, "strategy", "", "allocation strategy: equal, weighted, or dynamic")
	rootCmd.PersistentFlags().StringVar(&flagOutput, "output", "", "snapshot path (default from config)")
	rootCmd.Flags().IntVar(&flagCapacity, "capacity", 0, "max entries retained (default from config)")
	rootCmd.Flags().IntVar(&flagWorkers, "workers", 0, "fetch worker count (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(sourcesCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("friendfeed %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func runAggregate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagWorkers > 0 {
		cfg.Workers = flagWorkers
	}

	strategy := resolveStrategy(flagStrategy, cfg.Strategy)

	summary, err := pipeline.Run(cmd.Context(), cfg, pipeline.Options{
		Strategy:   strategy,
		Capacity:   flagCapacity,
		OutputPath: flagOutput,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Strategy: %s\n", summary.Strategy)
	fmt.Printf("History:  %d entries\n", summary.Historical)
	fmt.Printf("Fetched:  %d entries\n", summary.Fetched)
	if len(summary.Failed) > 0 {
		fmt.Printf("Failed:   %s\n", strings.Join(summary.Failed, ", "))
	}
	fmt.Printf("Kept:     %d entries → %s\n", summary.Final, summary.OutputPath)
	return nil
}

// resolveStrategy layers the flag over the config default, falling back to
// dynamic with a warning on anything unrecognized.
func resolveStrategy(flag, configured string) allocate.Strategy {
	name := flag
	if name == "" {
		name = configured
	}
	strategy, ok := allocate.ParseStrategy(name)
	if !ok {
		log.Warn("unknown strategy, falling back to dynamic", "strategy", name)
	}
	return strategy
}

func Execute() {
	log.SetReportTimestamp(false)
	cobra.OnInitialize(func() {
		if flagVerbose {
			log.SetLevel(log.DebugLevel)
		}
	})
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
