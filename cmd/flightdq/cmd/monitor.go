package cmd

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/flightdq/internal/database"
	"github.com/dbsmedya/flightdq/internal/table"
)

var (
	monitorSchedule string
	monitorNow      bool
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Regenerate the report on a schedule",
	Long: `Monitor rewrites the Markdown report (and the XLSX workbook, when
report.xlsx_path is set) on a cron schedule until interrupted.

Schedules use standard five-field cron syntax or descriptors such as
"@hourly" and "@every 30m". A failed run is logged and the next run
proceeds as scheduled.

Example:
  flightdq monitor --config flightdq.yaml --schedule "0 6 * * *"`,
	RunE: runMonitor,
}

func init() {
	monitorCmd.Flags().StringVar(&monitorSchedule, "schedule", "",
		"Cron schedule (overrides report.schedule)")
	monitorCmd.Flags().BoolVar(&monitorNow, "now", false,
		"Also generate a report immediately on start")

	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	schedule := s.cfg.Report.Schedule
	if monitorSchedule != "" {
		schedule = monitorSchedule
	}

	ctx := database.SetupSignalHandler()

	job := func() {
		run := s.nextRun()
		res, err := run.analyze(ctx, table.Filters{})
		if err != nil {
			run.log.Errorf("Scheduled analysis failed: %v", err)
			return
		}
		if err := run.saveReports(res, run.cfg.Report.Path, run.cfg.Report.XLSXPath); err != nil {
			run.log.Errorf("Scheduled report failed: %v", err)
		}
	}

	c, err := newScheduler(schedule, job)
	if err != nil {
		return err
	}

	if monitorNow {
		job()
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Monitoring %s on schedule %q\n", s.cfg.Table, schedule)
	s.log.Infow("Monitor started", "schedule", schedule, "report", s.cfg.Report.Path)

	runScheduler(ctx, c)
	s.log.Info("Monitor stopped")
	return nil
}

// newScheduler registers job on schedule. Overlapping runs are skipped.
func newScheduler(schedule string, job func()) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(schedule, job); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}
	return c, nil
}

// runScheduler runs c until ctx is done and waits for a running job to finish.
func runScheduler(ctx context.Context, c *cron.Cron) {
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
}
