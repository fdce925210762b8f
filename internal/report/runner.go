// Package report runs every analysis over a loaded table and renders the results
// as console text, Markdown or XLSX.
package report

import (
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dbsmedya/flightdq/internal/analysis"
	"github.com/dbsmedya/flightdq/internal/config"
	"github.com/dbsmedya/flightdq/internal/logger"
	"github.com/dbsmedya/flightdq/internal/table"
)

// Options carries the analysis parameters.
type Options struct {
	MissingThreshold float64
	OutlierThreshold float64
	IDColumn         string
}

// OptionsFromConfig maps the analysis config section to runner options.
func OptionsFromConfig(cfg *config.AnalysisConfig) Options {
	return Options{
		MissingThreshold: cfg.MissingThreshold,
		OutlierThreshold: cfg.OutlierThreshold,
		IDColumn:         cfg.IDColumn,
	}
}

// Result holds the output of one run. A section whose analysis failed has a nil
// value and an entry in Errors; the other sections are unaffected.
type Result struct {
	RunID       string
	Table       string
	Rows        int
	GeneratedAt time.Time
	Options     Options

	Missing         []analysis.ColumnStat
	Outliers        []analysis.OutlierStat
	OutlierRows     *table.Table
	Duration        *analysis.OutlierStat
	DurationRows    *table.Table
	ExactDuplicates *table.Table
	DuplicateIDs    []analysis.DuplicateGroup
	Validation      []analysis.FieldResult
	Summary         *analysis.Stats

	Errors map[string]error
}

// Err returns the error of the named analysis, or nil.
func (r *Result) Err(name string) error {
	return r.Errors[name]
}

// Run executes every analysis against t. Analyses run in parallel since the
// table is read-only; each one records its own error.
func Run(t *table.Table, tableName, runID string, opts Options, log *logger.Logger) *Result {
	if log == nil {
		log = logger.NewNop()
	}

	res := &Result{
		RunID:       runID,
		Table:       tableName,
		Rows:        t.Len(),
		GeneratedAt: time.Now(),
		Options:     opts,
		Errors:      make(map[string]error),
	}

	var mu sync.Mutex
	fail := func(name string, err error) {
		mu.Lock()
		defer mu.Unlock()
		res.Errors[name] = err
		log.WithAnalysis(name).Warnf("Analysis failed: %v", err)
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	g.Go(func() error {
		res.Missing = analysis.AnalyzeMissingValues(t, opts.MissingThreshold)
		return nil
	})
	g.Go(func() error {
		stats, rows, err := analysis.DetectOutliers(t, nil, opts.OutlierThreshold)
		if err != nil {
			fail(analysis.NameOutliers, err)
			return nil
		}
		res.Outliers, res.OutlierRows = stats, rows
		return nil
	})
	g.Go(func() error {
		stat, rows, err := analysis.DetectFlightDurationOutliers(t, opts.OutlierThreshold)
		if err != nil {
			fail(analysis.NameFlightDurationOutliers, err)
			return nil
		}
		res.Duration, res.DurationRows = &stat, rows
		return nil
	})
	g.Go(func() error {
		res.ExactDuplicates = analysis.DetectExactDuplicates(t)
		return nil
	})
	g.Go(func() error {
		groups, err := analysis.DetectDuplicateFlightNumbers(t, opts.IDColumn)
		if err != nil {
			fail(analysis.NameDuplicateFlightNumbers, err)
			return nil
		}
		res.DuplicateIDs = groups
		return nil
	})
	g.Go(func() error {
		results, err := analysis.ValidateData(t)
		if err != nil {
			fail(analysis.NameValidation, err)
			return nil
		}
		res.Validation = results
		return nil
	})
	g.Go(func() error {
		stats, err := analysis.SummaryStats(t)
		if err != nil {
			fail(analysis.NameSummaryStats, err)
			return nil
		}
		res.Summary = stats
		return nil
	})

	// Every task returns nil; failures live in res.Errors.
	_ = g.Wait()

	log.WithRun(runID).Infof("Analyzed %d rows with %d failed analyses", res.Rows, len(res.Errors))
	return res
}
