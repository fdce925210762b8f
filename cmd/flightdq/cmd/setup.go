package cmd

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dbsmedya/flightdq/internal/config"
	"github.com/dbsmedya/flightdq/internal/database"
	"github.com/dbsmedya/flightdq/internal/loader"
	"github.com/dbsmedya/flightdq/internal/logger"
	"github.com/dbsmedya/flightdq/internal/report"
	"github.com/dbsmedya/flightdq/internal/table"
)

// session is the configuration and logger shared by one command invocation.
type session struct {
	cfg   *config.Config
	base  *logger.Logger
	log   *logger.Logger
	runID string
}

// newSession loads the configuration, applies CLI overrides, validates it and
// initializes the logger. A missing config file is an error only when --config
// was given explicitly.
func newSession() (*session, error) {
	configFile := GetConfigFile()

	var (
		cfg *config.Config
		err error
	)
	if configFileExplicit() {
		cfg, err = config.Load(configFile)
	} else {
		cfg, err = config.LoadOrDefault(configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Apply CLI overrides
	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(config.Overrides{
		LogLevel:  overrides.LogLevel,
		LogFormat: overrides.LogFormat,
		Table:     overrides.Table,
		DBPath:    overrides.DBPath,
	})

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Initialize logger
	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return (&session{cfg: cfg, base: log}).nextRun(), nil
}

// nextRun returns a session for a new analysis run, with its own run id.
func (s *session) nextRun() *session {
	runID := uuid.NewString()
	return &session{cfg: s.cfg, base: s.base, log: s.base.WithRun(runID), runID: runID}
}

func (s *session) loader() (*loader.Loader, error) {
	return loader.New(database.NewManager(&s.cfg.Source), s.cfg.Source.SourceName(), s.log)
}

// loadTable reads the configured table. The connection is closed before it returns.
func (s *session) loadTable(ctx context.Context) (*table.Table, error) {
	l, err := s.loader()
	if err != nil {
		return nil, err
	}
	return l.Load(ctx, s.cfg.Table)
}

// analyze loads the table and runs every analysis on it.
func (s *session) analyze(ctx context.Context, filters table.Filters) (*report.Result, error) {
	t, err := s.loadTable(ctx)
	if err != nil {
		return nil, err
	}
	if !filters.Empty() {
		t = filters.Apply(t)
		s.log.Infof("Filters matched %d rows", t.Len())
	}
	return report.Run(t, s.cfg.Table, s.runID, report.OptionsFromConfig(&s.cfg.Analysis), s.log), nil
}

// saveReports writes the Markdown report and, when xlsxPath is set, the workbook.
func (s *session) saveReports(res *report.Result, mdPath, xlsxPath string) error {
	if err := report.SaveMarkdown(mdPath, res, report.LimitsFromConfig(&s.cfg.Report)); err != nil {
		return err
	}
	s.log.Infow("Markdown report written", "path", mdPath)

	if xlsxPath != "" {
		if err := report.WriteXLSX(xlsxPath, res); err != nil {
			return err
		}
		s.log.Infow("Workbook written", "path", xlsxPath)
	}
	return nil
}
