// Package cmd provides the command-line interface for the jiratime tool.
package cmd

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/intapp/jiratime/internal/classify"
	"github.com/intapp/jiratime/internal/config"
	"github.com/intapp/jiratime/internal/jira"
	"github.com/intapp/jiratime/internal/logging"
	"github.com/intapp/jiratime/internal/report"
)

// dateFlagLayout is the format of the --start and --end flag values.
const dateFlagLayout = "2006-01-02"

var (
	startDate  string
	endDate    string
	outputPath string
)

var rootCmd = &cobra.Command{
	Use:   "jiratime",
	Short: "Aggregate Jira activity into a daily timesheet report",
	Long: `Jiratime queries a Jira server for the current user's activity over a
date range and writes a tab-separated timesheet report.

For every weekday in the range the tool classifies each issue the user
touched as completed, worked, code review, or investigated, then groups
the results by day. Weekends are skipped.

Jira credentials are read from the JIRA_URL, JIRA_USERNAME, and
JIRA_TOKEN environment variables.

Example:
  jiratime --start 2024-05-01 --end 2024-05-17 --output report.txt`,
	RunE: runReport,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().StringVarP(&startDate, "start", "s", "", "First day of the report (YYYY-MM-DD, default: first day of the end month)")
	rootCmd.Flags().StringVarP(&endDate, "end", "e", "", "Last day of the report (YYYY-MM-DD, default: today)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "report.txt", "Report file path")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	start, end, err := resolveRange(startDate, endDate, time.Now())
	if err != nil {
		return err
	}

	logging.Info("starting report run",
		"start", start.Format(dateFlagLayout),
		"end", end.Format(dateFlagLayout),
		"jira_url", cfg.Jira.URL,
		"user", cfg.Jira.Username,
		"token", logging.MaskSensitive(cfg.Jira.Token))

	client, err := jira.NewClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize jira client: %w", err)
	}

	bar := progressbar.NewOptions(classify.CountWeekdays(start, end),
		progressbar.OptionSetDescription("Classifying days"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
	)

	aggregator := &classify.Aggregator{
		Searcher: client,
		User:     cfg.Jira.Username,
		OnDay: func(time.Time) {
			bar.Add(1)
		},
	}

	classifications, err := aggregator.Aggregate(start, end)
	if err != nil {
		return fmt.Errorf("failed to aggregate classifications: %w", err)
	}
	bar.Finish()
	fmt.Println()

	text, err := report.Format(classifications)
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}

	if err := report.WriteFile(outputPath, text); err != nil {
		return err
	}

	logging.Info("report written",
		"path", outputPath,
		"entries", len(classifications))

	return nil
}

// resolveRange turns the optional flag values into a concrete date range.
// With no flags the report covers the current month up to today.
func resolveRange(startStr, endStr string, now time.Time) (time.Time, time.Time, error) {
	end := now
	if endStr != "" {
		parsed, err := time.ParseInLocation(dateFlagLayout, endStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --end date %q: %w", endStr, err)
		}
		end = parsed
	}

	start := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, end.Location())
	if startStr != "" {
		parsed, err := time.ParseInLocation(dateFlagLayout, startStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --start date %q: %w", startStr, err)
		}
		start = parsed
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start date %s is after end date %s",
			start.Format(dateFlagLayout), end.Format(dateFlagLayout))
	}

	return start, end, nil
}
