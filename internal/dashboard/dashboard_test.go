package dashboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/flightdq/internal/analysis"
	"github.com/dbsmedya/flightdq/internal/logger"
	"github.com/dbsmedya/flightdq/internal/report"
	"github.com/dbsmedya/flightdq/internal/table"
)

// ============================================================================
// Test Helpers
// ============================================================================

func sampleFlights() *table.Table {
	row := func(airport, country, city string, duration int64, number, airline string) table.Row {
		return table.Row{table.Text(airport), table.Text("K" + airport), table.Text("US-NY"), table.Text(country),
			table.Text(city), table.Int(duration), table.Text(number), table.Text("LAX"), table.Text(airline)}
	}
	return table.MustNew(table.FlightSchema(), []table.Row{
		row("JFK", "USA", "New York", 180, "AA100", "AA"),
		row("LHR", "UK", "London", 420, "BA200", "BA"),
		row("CDG", "France", "Paris", 90, "AF300", "AF"),
		row("JFK", "USA", "Boston", 60, "AA100", "AA"),
		row("SFO", "USA", "Seattle", 5000, "AA7", "AA"),
	})
}

type fakeTrigger struct {
	output string
	err    error
	write  func() error
	calls  int
}

func (f *fakeTrigger) Generate(ctx context.Context) (string, error) {
	f.calls++
	if f.write != nil {
		if err := f.write(); err != nil {
			return "", err
		}
	}
	return f.output, f.err
}

func newTestServer(t *testing.T, tbl *table.Table, trigger Trigger) (*Server, string) {
	t.Helper()
	reportPath := filepath.Join(t.TempDir(), "data_quality_report.md")
	s, err := New(tbl, Options{
		TableName: "MOCK_DATA",
		Analysis: report.Options{
			MissingThreshold: analysis.DefaultMissingThreshold,
			OutlierThreshold: analysis.DefaultOutlierThreshold,
			IDColumn:         table.ColFlightNumber,
		},
		Limits:     report.Limits{Detailed: 5, Duplicates: 20},
		ReportPath: reportPath,
		Trigger:    trigger,
	}, logger.NewNop())
	require.NoError(t, err)
	return s, reportPath
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

// ============================================================================
// Filter Tests
// ============================================================================

func TestParseFilters(t *testing.T) {
	q := url.Values{
		ParamCity:    {"London", ""},
		ParamCountry: {"UK", "USA"},
		ParamAirline: {},
		"other":      {"x"},
	}
	f := ParseFilters(q)
	assert.Equal(t, []string{"London"}, f.Cities)
	assert.Equal(t, []string{"UK", "USA"}, f.Countries)
	assert.Nil(t, f.Airlines)
	assert.Nil(t, f.Airports)

	assert.True(t, ParseFilters(url.Values{}).Empty())
}

// ============================================================================
// Handler Tests
// ============================================================================

func TestNew_NilTable(t *testing.T) {
	_, err := New(nil, Options{}, nil)
	assert.Error(t, err)
}

func TestIndex(t *testing.T) {
	s, _ := newTestServer(t, sampleFlights(), nil)

	rec := get(t, s, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	for _, tab := range []string{"Missing Values", "Outliers", "Duplicates", "Invalid Codes", "Summary Stats"} {
		assert.Contains(t, body, ">"+tab+"</label>")
	}
	assert.Contains(t, body, "<strong>Total Rows:</strong> 5")
	assert.Contains(t, body, "<strong>Filtered Rows:</strong> 5")
	assert.Contains(t, body, "Flights per Arrival Country")
	assert.Contains(t, body, `<option value="London">London</option>`)
}

func TestIndex_Filtered(t *testing.T) {
	s, _ := newTestServer(t, sampleFlights(), nil)

	rec := get(t, s, "/?country=USA&airport=JFK")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "<strong>Filtered Rows:</strong> 2")
	assert.Contains(t, body, `<option value="USA" selected>USA</option>`)
	assert.Contains(t, body, `<option value="UK">UK</option>`, "options come from the full table")
}

func TestIndex_FilterMatchesNothing(t *testing.T) {
	s, _ := newTestServer(t, sampleFlights(), nil)

	rec := get(t, s, "/?city=Nowhere")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<strong>Filtered Rows:</strong> 0")
}

func TestIndex_SchemaErrorsStayInTheirTab(t *testing.T) {
	tbl, err := sampleFlights().Select(table.ColAirportCode, table.ColFlightNumber, table.ColArrivalCity)
	require.NoError(t, err)
	s, _ := newTestServer(t, tbl, nil)

	rec := get(t, s, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `class="error">flight duration outliers: required column &#34;Flight Duration&#34; not found`)
	assert.Contains(t, body, "Duplicate Flight Numbers")
	assert.Contains(t, body, "AA100")
}

func TestReport_NotGenerated(t *testing.T) {
	s, _ := newTestServer(t, sampleFlights(), nil)

	rec := get(t, s, "/report")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No report has been generated yet")
}

func TestReport_RendersMarkdown(t *testing.T) {
	s, path := newTestServer(t, sampleFlights(), nil)
	require.NoError(t, os.WriteFile(path, []byte("# Analysis Report\n\n## Missing Values Summary\n\n| Column | Display |\n|:--|:--|\n| Airport Code | 0.00% |\n"), 0o644))

	rec := get(t, s, "/report")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `<h1 id="analysis-report">Analysis Report</h1>`)
	assert.Contains(t, body, "<table>")
	assert.Contains(t, body, "Airport Code")
}

func TestGenerateReport(t *testing.T) {
	trigger := &fakeTrigger{output: "Report saved to data_quality_report.md\n"}
	s, path := newTestServer(t, sampleFlights(), trigger)
	trigger.write = func() error {
		return os.WriteFile(path, []byte("# Analysis Report\n"), 0o644)
	}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/report", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, trigger.calls)
	body := rec.Body.String()
	assert.Contains(t, body, "Report saved to data_quality_report.md")
	assert.Contains(t, body, "Analysis Report</h1>")
}

func TestGenerateReport_Failure(t *testing.T) {
	trigger := &fakeTrigger{output: "cannot build report", err: errors.New("exit status 1")}
	s, _ := newTestServer(t, sampleFlights(), trigger)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/report", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Report generation failed: exit status 1")
	assert.Contains(t, rec.Body.String(), "cannot build report")
}

func TestGenerateReport_NotConfigured(t *testing.T) {
	s, _ := newTestServer(t, sampleFlights(), nil)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/report", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t, sampleFlights(), nil)
	rec := get(t, s, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRenderMarkdown_SkipsRawHTML(t *testing.T) {
	out := string(RenderMarkdown([]byte("hello <script>alert(1)</script>\n")))
	assert.NotContains(t, out, "<script>")
}

// ============================================================================
// Server Lifecycle Tests
// ============================================================================

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	s, _ := newTestServer(t, sampleFlights(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestListenAndServe_BadAddress(t *testing.T) {
	s, _ := newTestServer(t, sampleFlights(), nil)
	err := s.ListenAndServe(context.Background(), "not-an-address")
	assert.Error(t, err)
}

// ============================================================================
// CommandTrigger Tests
// ============================================================================

func TestNewCommandTrigger(t *testing.T) {
	c := NewCommandTrigger("/usr/local/bin/flightdq", "flightdq.yaml")
	assert.Equal(t, "/usr/local/bin/flightdq", c.Path)
	assert.Equal(t, []string{"report", "--config", "flightdq.yaml"}, c.Args)

	c = NewCommandTrigger("flightdq", "")
	assert.Equal(t, []string{"report"}, c.Args)
}

func TestCommandTrigger_Generate(t *testing.T) {
	echo, err := exec.LookPath("echo")
	if err != nil {
		t.Skip("echo not available")
	}

	out, err := NewCommandTrigger(echo, "flightdq.yaml").Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "report --config flightdq.yaml", strings.TrimSpace(out))

	_, err = (&CommandTrigger{Path: filepath.Join(t.TempDir(), "missing")}).Generate(context.Background())
	assert.Error(t, err)
}
