package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/adyen/shopcheck/internal/config"
	"github.com/adyen/shopcheck/internal/driver"
	"github.com/adyen/shopcheck/internal/driver/drivertest"
	"github.com/adyen/shopcheck/internal/fixtures"
	"github.com/adyen/shopcheck/internal/locator"
	"github.com/adyen/shopcheck/internal/models"
	"github.com/adyen/shopcheck/internal/scenario"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSessions hands out empty drivertest sessions
type fakeSessions struct{}

func (fakeSessions) NewSession() (driver.Session, error) {
	return drivertest.NewSession(), nil
}

// memoryRecorder keeps runs and results in memory
type memoryRecorder struct {
	runs      map[string]*models.Run
	results   []*models.ScenarioResult
	createErr error
	saveErr   error
}

func newMemoryRecorder() *memoryRecorder {
	return &memoryRecorder{runs: map[string]*models.Run{}}
}

func (m *memoryRecorder) CreateRun(run *models.Run) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.runs[run.ID] = run
	return nil
}

func (m *memoryRecorder) SaveResult(res *models.ScenarioResult) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	res.ID = int64(len(m.results) + 1)
	m.results = append(m.results, res)
	return nil
}

func (m *memoryRecorder) FinishRun(run *models.Run) error {
	if _, ok := m.runs[run.ID]; !ok {
		return errors.New("run not found")
	}
	return nil
}

func (m *memoryRecorder) ListRecentRuns(limit int) ([]*models.Run, error) {
	var runs []*models.Run
	for _, r := range m.runs {
		runs = append(runs, r)
	}
	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (m *memoryRecorder) GetRun(id string) (*models.Run, error) {
	r, ok := m.runs[id]
	if !ok {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	return r, nil
}

func (m *memoryRecorder) GetResults(runID string) ([]*models.ScenarioResult, error) {
	var out []*models.ScenarioResult
	for _, r := range m.results {
		if r.RunID == runID {
			out = append(out, r)
		}
	}
	return out, nil
}

func testSuites() []scenario.Suite {
	return []scenario.Suite{
		{Name: "home", Scenarios: []scenario.Scenario{
			{Name: "homepage_load", Tags: []string{scenario.TagSmoke}, Run: func(*scenario.Context) error { return nil }},
			{Name: "nav_items", Run: func(*scenario.Context) error {
				return scenario.EqualStrings("navigation items do not match", []string{"Categories"}, nil)
			}},
		}},
	}
}

// createTestDeps creates RunDependencies with fake sessions and the given output buffer
func createTestDeps(out *bytes.Buffer) RunDependencies {
	return RunDependencies{
		Sessions: fakeSessions{},
		Fixtures: fixtures.MustDefault(),
		Browser:  &config.BrowserConfig{BaseURL: config.DefaultBaseURL, Driver: config.DriverPlaywright},
		Suites:   testSuites(),
		Log:      zerolog.Nop(),
		Out:      out,
	}
}

func TestRunSuites_ReportsFailures(t *testing.T) {
	// GIVEN
	var out bytes.Buffer
	deps := createTestDeps(&out)

	// WHEN
	err := RunSuites(deps)

	// THEN
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrScenariosFailed))
	assert.Contains(t, out.String(), "PASS home/homepage_load")
	assert.Contains(t, out.String(), "FAIL home/nav_items")
	assert.Contains(t, out.String(), "[assertion-mismatch]")
	assert.Contains(t, out.String(), "2 scenarios, 1 passed, 1 failed")
}

func TestRunSuites_FilteredRunPasses(t *testing.T) {
	var out bytes.Buffer
	deps := createTestDeps(&out)
	deps.Filter = scenario.Filter{Tags: []string{scenario.TagSmoke}}

	err := RunSuites(deps)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "1 scenarios, 1 passed, 0 failed")
	assert.NotContains(t, out.String(), "nav_items")
}

func TestRunSuites_NoScenariosSelected(t *testing.T) {
	var out bytes.Buffer
	deps := createTestDeps(&out)
	deps.Filter = scenario.Filter{Suites: []string{"checkout"}}

	err := RunSuites(deps)

	assert.True(t, errors.Is(err, ErrNoScenarios))
	assert.Empty(t, out.String())
}

func TestRunSuites_RecordsRun(t *testing.T) {
	// GIVEN
	var out bytes.Buffer
	deps := createTestDeps(&out)
	recorder := newMemoryRecorder()
	deps.Recorder = recorder

	// WHEN
	err := RunSuites(deps)

	// THEN
	require.True(t, errors.Is(err, ErrScenariosFailed))
	require.Len(t, recorder.runs, 1)
	var run *models.Run
	for _, r := range recorder.runs {
		run = r
	}
	assert.Equal(t, models.RunStatusFailed, run.Status)
	assert.Equal(t, 2, run.Total)
	assert.Equal(t, 1, run.Failed)
	assert.Equal(t, config.DriverPlaywright, run.Driver)

	require.Len(t, recorder.results, 2)
	assert.True(t, recorder.results[0].Passed)
	assert.Equal(t, "assertion-mismatch", recorder.results[1].Kind)
	assert.Contains(t, out.String(), "run "+run.ID+" recorded")
}

func TestRunSuites_RecorderErrors(t *testing.T) {
	t.Run("create failure aborts before running", func(t *testing.T) {
		var out bytes.Buffer
		deps := createTestDeps(&out)
		recorder := newMemoryRecorder()
		recorder.createErr = errors.New("connection refused")
		deps.Recorder = recorder

		err := RunSuites(deps)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
		assert.NotContains(t, out.String(), "PASS")
	})

	t.Run("save failure keeps running", func(t *testing.T) {
		var out bytes.Buffer
		deps := createTestDeps(&out)
		recorder := newMemoryRecorder()
		recorder.saveErr = errors.New("disk full")
		deps.Recorder = recorder

		err := RunSuites(deps)

		assert.True(t, errors.Is(err, ErrScenariosFailed))
		assert.Contains(t, out.String(), "2 scenarios")
		assert.Empty(t, recorder.results)
	})
}

func TestListSuites(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, ListSuites(&out, testSuites()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "home", lines[0])
	assert.Contains(t, lines[1], "homepage_load")
	assert.Contains(t, lines[1], "smoke")
	assert.Contains(t, lines[2], "nav_items")
}

func TestListLocators(t *testing.T) {
	var out bytes.Buffer
	reg := locator.NewRegistry("signin", map[string]locator.Locator{
		"login": locator.ID("login"),
	})

	require.NoError(t, ListLocators(&out, reg))

	assert.Contains(t, out.String(), "signin\n")
	assert.Contains(t, out.String(), `id="login"`)
}

func TestPrintHistory(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, PrintHistory(&out, newMemoryRecorder(), 10))
		assert.Equal(t, "no runs recorded\n", out.String())
	})

	t.Run("runs and results", func(t *testing.T) {
		// GIVEN
		store := newMemoryRecorder()
		run, _ := models.NewRun("chromedp", config.DefaultBaseURL)
		require.NoError(t, store.CreateRun(run))
		res, _ := models.NewScenarioResult(run.ID, "shop", "adding_to_cart", errors.New("overlay not visible"), "wait-timeout", time.Second)
		require.NoError(t, store.SaveResult(res))
		require.NoError(t, run.Finish([]*models.ScenarioResult{res}))

		// WHEN
		var list, detail bytes.Buffer
		require.NoError(t, PrintHistory(&list, store, 10))
		require.NoError(t, PrintRun(&detail, store, run.ID))

		// THEN
		assert.Contains(t, list.String(), run.ID)
		assert.Contains(t, list.String(), "failed")
		assert.Contains(t, detail.String(), "FAIL")
		assert.Contains(t, detail.String(), "shop/adding_to_cart")
		assert.Contains(t, detail.String(), "overlay not visible")
	})

	t.Run("unknown run", func(t *testing.T) {
		err := PrintRun(&bytes.Buffer{}, newMemoryRecorder(), "missing")
		assert.Error(t, err)
	})
}

// closeCounter records Close calls
type closeCounter struct {
	mu     sync.Mutex
	closed int
}

func (c *closeCounter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed++
	return nil
}

func (c *closeCounter) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func TestWatchInterrupt_ClosesBrowserOnSignal(t *testing.T) {
	// GIVEN
	browser := &closeCounter{}
	shutdown := make(chan os.Signal, 1)
	stop := WatchInterrupt(browser, shutdown, zerolog.Nop())
	defer stop()

	// WHEN
	shutdown <- syscall.SIGINT

	// THEN
	assert.Eventually(t, func() bool { return browser.count() == 1 }, time.Second, 5*time.Millisecond)
}

func TestWatchInterrupt_StopWithoutSignal(t *testing.T) {
	browser := &closeCounter{}
	stop := WatchInterrupt(browser, make(chan os.Signal, 1), zerolog.Nop())

	stop()
	time.Sleep(20 * time.Millisecond)

	assert.Zero(t, browser.count())
}
