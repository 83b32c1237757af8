package commands

import (
	"cfr/internal/cli"
	"cfr/internal/config"
	"cfr/internal/discovery"
	"cfr/internal/storage"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Review      *ReviewCommand
	Summary     *SummaryCommand
	Report      *ReportCommand
	Export      *ExportCommand
	Revert      *RevertCommand
	Screenshots *ScreenshotsCommand

	config *config.Config
	log    *logrus.Logger
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config, log *logrus.Logger) *Commands {
	scanner := discovery.NewScanner([]string{"node_modules"})
	jsonStorage := storage.NewJSONStorage(cfg)
	loader := newLoader(cfg, scanner, log)

	return &Commands{
		Review:      NewReviewCommand(cfg, loader, jsonStorage, log),
		Summary:     NewSummaryCommand(cfg, loader, jsonStorage),
		Report:      NewReportCommand(cfg, loader, jsonStorage),
		Export:      NewExportCommand(cfg, loader, jsonStorage),
		Revert:      NewRevertCommand(cfg, scanner, jsonStorage, log),
		Screenshots: NewScreenshotsCommand(cfg, loader, log),
		config:      cfg,
		log:         log,
	}
}

// prepare loads the layered configuration into the shared config once flags are parsed
func (c *Commands) prepare(flags *cli.Flags) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(flags.ToConfigFlags())
		if err != nil {
			return err
		}
		*c.config = *loaded
		c.log.SetLevel(c.config.GetLogLevel())
		return nil
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags) {
	persistent := rootCmd.PersistentFlags()
	persistent.StringVar(&flags.ConfigFile, "config", "", "Config file (default .cfr.yaml when present)")
	persistent.StringVar(&flags.Prefix, "prefix", "", "Prefix of every artifact inside the archive (default \"archive/\")")
	persistent.IntVarP(&flags.Workers, "workers", "w", 0, "Number of report documents decoded concurrently (default 4)")
	persistent.StringVar(&flags.StateDir, "state-dir", "", "Directory holding triage decisions (default \".cfr\")")
	persistent.StringVar(&flags.RepoPath, "repo", "", "Git repository used to preview revert targets (default \".\")")
	persistent.StringVar(&flags.LogLevel, "log-level", "", "Log level: debug, info, warn, error (default \"info\")")
	persistent.BoolVar(&flags.NoProgress, "no-progress", false, "Disable the progress bar")

	prepare := c.prepare(flags)

	// Review command
	reviewCmd := &cobra.Command{
		Use:     "review <archive.zip|dir>",
		Short:   "Review test failures interactively",
		Long:    "Load a CI artifact archive, group test cases by failure reason and triage them in an interactive viewer",
		Args:    cobra.ExactArgs(1),
		RunE:    c.Review.Execute,
		PreRunE: prepare,
	}
	reviewCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter test cases by name or test file (supports wildcards, e.g., 'consent-*' or '*banner*')")
	reviewCmd.Flags().BoolVar(&flags.FailedOnly, "failed", false, "Hide the success group")
	reviewCmd.Flags().StringVarP(&flags.Output, "out", "o", "", "Directory for exported screenshots (default \"screenshots\")")
	rootCmd.AddCommand(reviewCmd)

	// Summary command
	summaryCmd := &cobra.Command{
		Use:     "summary <archive.zip|dir>",
		Short:   "Print failure statistics",
		Long:    "Load a CI artifact archive and print the statistics table and failure groups",
		Args:    cobra.ExactArgs(1),
		RunE:    c.Summary.Execute,
		PreRunE: prepare,
	}
	summaryCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter test cases by name or test file (supports wildcards)")
	rootCmd.AddCommand(summaryCmd)

	// Report command
	reportCmd := &cobra.Command{
		Use:     "report <archive.zip|dir>",
		Short:   "Write a Markdown or HTML report",
		Long:    "Render the grouped failures, triage marks and revert commands as Markdown or HTML",
		Args:    cobra.ExactArgs(1),
		RunE:    c.Report.Execute,
		PreRunE: prepare,
	}
	reportCmd.Flags().StringVar(&flags.Format, "format", "md", "Report format: md or html")
	reportCmd.Flags().StringVarP(&flags.Output, "out", "o", "", "Output file (default stdout)")
	reportCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter test cases by name or test file (supports wildcards)")
	reportCmd.Flags().BoolVar(&flags.FailedOnly, "failed", false, "Leave out the success group")
	rootCmd.AddCommand(reportCmd)

	// Export command
	exportCmd := &cobra.Command{
		Use:     "export <archive.zip|dir>",
		Short:   "Export groups and statistics as JSON",
		Args:    cobra.ExactArgs(1),
		RunE:    c.Export.Execute,
		PreRunE: prepare,
	}
	exportCmd.Flags().StringVarP(&flags.Output, "out", "o", "", "Output file (default stdout)")
	exportCmd.Flags().BoolVar(&flags.FailedOnly, "failed", false, "Leave out the success group")
	rootCmd.AddCommand(exportCmd)

	// Revert command
	revertCmd := &cobra.Command{
		Use:     "revert <archive.zip|dir>",
		Short:   "Print the git revert command for the selected test files",
		Long:    "Print one command reverting the last commit of every test file selected for rollback while reviewing the archive",
		Args:    cobra.ExactArgs(1),
		RunE:    c.Revert.Execute,
		PreRunE: prepare,
	}
	revertCmd.Flags().BoolVar(&flags.Preview, "preview", false, "Resolve and show the commit each file would revert")
	rootCmd.AddCommand(revertCmd)

	// Screenshots command
	screenshotsCmd := &cobra.Command{
		Use:     "screenshots <archive.zip|dir>",
		Short:   "Extract the screenshots of a test",
		Args:    cobra.ExactArgs(1),
		RunE:    c.Screenshots.Execute,
		PreRunE: prepare,
	}
	screenshotsCmd.Flags().StringVarP(&flags.TestName, "test", "t", "", "Test name whose screenshots are extracted")
	screenshotsCmd.Flags().StringVarP(&flags.Output, "out", "o", "", "Output directory (default \"screenshots\")")
	_ = screenshotsCmd.MarkFlagRequired("test")
	rootCmd.AddCommand(screenshotsCmd)
}
