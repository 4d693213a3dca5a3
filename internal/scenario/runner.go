package scenario

import (
	"fmt"
	"time"

	"github.com/adyen/shopcheck/internal/driver"
	"github.com/adyen/shopcheck/internal/fixtures"
	"github.com/adyen/shopcheck/internal/logging"
	"github.com/rs/zerolog"
)

// SessionFactory hands out a fresh browser session per suite
type SessionFactory interface {
	NewSession() (driver.Session, error)
}

// Result is the outcome of one scenario
type Result struct {
	Suite    string
	Name     string
	Err      error
	Kind     Kind
	Duration time.Duration
}

// Passed reports whether the scenario succeeded
func (r Result) Passed() bool {
	return r.Err == nil
}

// Summary counts results
type Summary struct {
	Total  int
	Passed int
	Failed int
}

// Summarize counts passed and failed results
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Passed() {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	return s
}

// Runner executes suites one after another, each on its own session
type Runner struct {
	sessions SessionFactory
	fixtures *fixtures.Set
	baseURL  string
	log      zerolog.Logger

	// OnResult is called after every scenario
	OnResult func(Result)
}

// NewRunner creates a runner opening suites at baseURL
func NewRunner(sessions SessionFactory, set *fixtures.Set, baseURL string, log zerolog.Logger) *Runner {
	return &Runner{sessions: sessions, fixtures: set, baseURL: baseURL, log: log}
}

// Run executes every scenario of suites in order. A failing scenario does
// not stop the ones after it. When a suite cannot get a session, each of its
// scenarios is reported with that error.
func (r *Runner) Run(suites []Suite) []Result {
	var results []Result
	for _, suite := range suites {
		results = append(results, r.runSuite(suite)...)
	}
	return results
}

func (r *Runner) runSuite(suite Suite) []Result {
	log := r.log.With().Str("suite", suite.Name).Logger()
	log.Info().Int("scenarios", len(suite.Scenarios)).Msg("suite started")

	session, err := r.open()
	if err != nil {
		log.Error().Err(err).Msg("suite aborted")
		results := make([]Result, 0, len(suite.Scenarios))
		for _, sc := range suite.Scenarios {
			results = append(results, r.record(Result{Suite: suite.Name, Name: sc.Name, Err: err, Kind: Classify(err)}))
		}
		return results
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close session")
		}
	}()

	results := make([]Result, 0, len(suite.Scenarios))
	for _, sc := range suite.Scenarios {
		ctx := &Context{
			Session:  session,
			Fixtures: r.fixtures,
			Log:      logging.Scenario(r.log, suite.Name, sc.Name),
			BaseURL:  r.baseURL,
		}
		results = append(results, r.record(runOne(suite.Name, sc, ctx)))
	}
	return results
}

func (r *Runner) open() (driver.Session, error) {
	session, err := r.sessions.NewSession()
	if err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}
	if err := session.Navigate(r.baseURL); err != nil {
		session.Close()
		return nil, fmt.Errorf("failed to open %s: %w", r.baseURL, err)
	}
	return session, nil
}

func (r *Runner) record(res Result) Result {
	var ev *zerolog.Event
	if res.Passed() {
		ev = r.log.Info()
	} else {
		ev = r.log.Error().Err(res.Err).Str("kind", string(res.Kind))
	}
	ev.Str("suite", res.Suite).Str("scenario", res.Name).Dur("took", res.Duration).Bool("passed", res.Passed()).Msg("scenario finished")
	if r.OnResult != nil {
		r.OnResult(res)
	}
	return res
}

func runOne(suite string, sc Scenario, ctx *Context) (res Result) {
	res = Result{Suite: suite, Name: sc.Name}
	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			res.Err = fmt.Errorf("scenario panicked: %v", p)
		}
		res.Duration = time.Since(start)
		res.Kind = Classify(res.Err)
	}()
	res.Err = sc.Run(ctx)
	return res
}
