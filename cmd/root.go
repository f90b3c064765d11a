package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagTriDaily bool
	flagWeekly   bool
	flagConfig   string
	flagOutput   string
	flagDryRun   bool
)

var rootCmd = &cobra.Command{
	Use:   "sentinel-ops",
	Short: "DevOps ecosystem digest generator",
	Long: `sentinel-ops pulls RSS feeds, GitHub releases, and Hacker News
discussions, then writes a Markdown digest of everything new since the
start of the reporting window.`,
	RunE: runDigest,
}

func init() {
	rootCmd.Flags().BoolVar(&flagTriDaily, "tri-daily", false, "use the tri-daily window (8h)")
	rootCmd.Flags().BoolVar(&flagWeekly, "weekly", false, "use the weekly window (7d)")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.Flags().StringVar(&flagOutput, "output", "", "digest output directory (overrides config)")
	rootCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "print the digest to stdout instead of writing a file")
	rootCmd.MarkFlagsMutuallyExclusive("tri-daily", "weekly")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(historyCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sentinel-ops %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

// newLogger writes to stderr so --dry-run digests stay clean on stdout.
func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return log
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
