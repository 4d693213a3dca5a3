package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adyen/shopcheck/internal/config"
	"github.com/adyen/shopcheck/internal/fixtures"
	"github.com/adyen/shopcheck/internal/models"
	"github.com/adyen/shopcheck/internal/scenario"
	"github.com/rs/zerolog"
)

// Run errors
var (
	ErrScenariosFailed = errors.New("scenarios failed")
	ErrNoScenarios     = errors.New("no scenarios selected")
)

// Recorder stores runs and their results. *repository.RunRepository
// satisfies it.
type Recorder interface {
	CreateRun(run *models.Run) error
	SaveResult(result *models.ScenarioResult) error
	FinishRun(run *models.Run) error
}

// RunDependencies holds all dependencies needed for a run
type RunDependencies struct {
	Sessions scenario.SessionFactory
	Fixtures *fixtures.Set
	Browser  *config.BrowserConfig
	Suites   []scenario.Suite
	Filter   scenario.Filter
	// Recorder is optional; nil skips run history
	Recorder Recorder
	Log      zerolog.Logger
	Out      io.Writer
}

// RunSuites runs the selected scenarios, prints a report to deps.Out and
// returns ErrScenariosFailed when any scenario failed
func RunSuites(deps RunDependencies) error {
	selected := deps.Filter.Apply(deps.Suites)
	if len(selected) == 0 {
		return ErrNoScenarios
	}

	var run *models.Run
	var recorded []*models.ScenarioResult
	if deps.Recorder != nil {
		var err error
		run, err = models.NewRun(deps.Browser.Driver, deps.Browser.BaseURL)
		if err != nil {
			return fmt.Errorf("failed to create run: %w", err)
		}
		if err := deps.Recorder.CreateRun(run); err != nil {
			return fmt.Errorf("failed to record run: %w", err)
		}
		deps.Log.Info().Str("run", run.ID).Msg("recording run")
	}

	runner := scenario.NewRunner(deps.Sessions, deps.Fixtures, deps.Browser.BaseURL, deps.Log)
	runner.OnResult = func(r scenario.Result) {
		printResult(deps.Out, r)
		if run == nil {
			return
		}
		res, err := models.NewScenarioResult(run.ID, r.Suite, r.Name, r.Err, string(r.Kind), r.Duration)
		if err == nil {
			err = deps.Recorder.SaveResult(res)
		}
		if err != nil {
			deps.Log.Warn().Err(err).Str("scenario", r.Name).Msg("failed to record result")
			return
		}
		recorded = append(recorded, res)
	}

	results := runner.Run(selected)
	summary := scenario.Summarize(results)
	fmt.Fprintf(deps.Out, "\n%d scenarios, %d passed, %d failed\n", summary.Total, summary.Passed, summary.Failed)

	if run != nil {
		if err := run.Finish(recorded); err != nil {
			return err
		}
		if err := deps.Recorder.FinishRun(run); err != nil {
			return fmt.Errorf("failed to record run: %w", err)
		}
		fmt.Fprintf(deps.Out, "run %s recorded\n", run.ID)
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrScenariosFailed, summary.Failed, summary.Total)
	}
	return nil
}

func printResult(out io.Writer, r scenario.Result) {
	took := r.Duration.Round(time.Millisecond)
	if r.Passed() {
		fmt.Fprintf(out, "PASS %s/%s (%s)\n", r.Suite, r.Name, took)
		return
	}
	fmt.Fprintf(out, "FAIL %s/%s (%s) [%s] %v\n", r.Suite, r.Name, took, r.Kind, r.Err)
}

// WatchInterrupt closes browser when an interrupt arrives so that a blocked
// wait fails and the run ends. If shutdown is nil, a channel is registered
// with signal.Notify. The returned func stops watching.
func WatchInterrupt(browser io.Closer, shutdown chan os.Signal, log zerolog.Logger) func() {
	registered := shutdown == nil
	if registered {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	}

	done := make(chan struct{})
	go func() {
		select {
		case sig := <-shutdown:
			log.Warn().Str("signal", sig.String()).Msg("interrupted, closing browser")
			if err := browser.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close browser")
			}
		case <-done:
		}
	}()

	return func() {
		if registered {
			signal.Stop(shutdown)
		}
		close(done)
	}
}
