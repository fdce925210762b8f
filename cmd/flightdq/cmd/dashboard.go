package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/flightdq/internal/dashboard"
	"github.com/dbsmedya/flightdq/internal/database"
	"github.com/dbsmedya/flightdq/internal/report"
)

var dashboardListen string

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Serve the interactive data quality dashboard",
	Long: `Dashboard loads the flight table once and serves a web page with
sidebar filters and one tab per check. Every page view re-runs the checks
on the filtered rows.

The "Generate report" button runs "flightdq report" as a separate process
with the same configuration, then shows the rendered Markdown report.

Example:
  flightdq dashboard --config flightdq.yaml --listen :8501`,
	RunE: runDashboard,
}

func init() {
	dashboardCmd.Flags().StringVarP(&dashboardListen, "listen", "l", "",
		"Address to listen on (overrides dashboard.listen)")

	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	addr := s.cfg.Dashboard.Listen
	if dashboardListen != "" {
		addr = dashboardListen
	}

	ctx := database.SetupSignalHandler()

	t, err := s.loadTable(ctx)
	if err != nil {
		return err
	}

	trigger, err := reportTrigger()
	if err != nil {
		s.log.Warnf("Report generation disabled: %v", err)
	}

	opts := dashboard.Options{
		TableName:  s.cfg.Table,
		Analysis:   report.OptionsFromConfig(&s.cfg.Analysis),
		Limits:     report.LimitsFromConfig(&s.cfg.Report),
		ReportPath: s.cfg.Report.Path,
	}
	// A nil *CommandTrigger must not become a non-nil interface.
	if trigger != nil {
		opts.Trigger = trigger
	}

	srv, err := dashboard.New(t, opts, s.log)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Dashboard listening on %s\n", addr)
	return srv.ListenAndServe(ctx, addr)
}

// reportTrigger re-runs this binary's report command with the settings of the
// current invocation. --config is forwarded only when it names a real file, so
// a child of a defaults-only parent also falls back to the defaults.
func reportTrigger() (*dashboard.CommandTrigger, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to locate executable: %w", err)
	}

	var configFile string
	if _, statErr := os.Stat(GetConfigFile()); configFileExplicit() || statErr == nil {
		configFile = GetConfigFile()
	}
	trigger := dashboard.NewCommandTrigger(exe, configFile)

	overrides := GetCLIOverrides()
	for _, f := range []struct{ flag, value string }{
		{"--log-level", overrides.LogLevel},
		{"--log-format", overrides.LogFormat},
		{"--table", overrides.Table},
		{"--db", overrides.DBPath},
	} {
		if f.value != "" {
			trigger.Args = append(trigger.Args, f.flag, f.value)
		}
	}
	return trigger, nil
}
