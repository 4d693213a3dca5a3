package main

import (
	"fmt"
	"io"
	"os"

	internalcli "github.com/adyen/shopcheck/internal/cli"
	"github.com/adyen/shopcheck/internal/config"
	"github.com/adyen/shopcheck/internal/database"
	"github.com/adyen/shopcheck/internal/driver"
	"github.com/adyen/shopcheck/internal/fixtures"
	"github.com/adyen/shopcheck/internal/logging"
	"github.com/adyen/shopcheck/internal/pages"
	"github.com/adyen/shopcheck/internal/repository"
	"github.com/adyen/shopcheck/internal/scenario"
	"github.com/adyen/shopcheck/internal/suites"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

var version = "0.1.0"

// loadFixtures returns the embedded fixtures or the override file named by
// SHOPCHECK_FIXTURES
func loadFixtures() (*fixtures.Set, error) {
	if path := os.Getenv("SHOPCHECK_FIXTURES"); path != "" {
		return fixtures.LoadFile(path)
	}
	return fixtures.Default()
}

func newLogger() (zerolog.Logger, io.Closer, error) {
	logConfig, err := config.LoadLogConfig(os.Getenv)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	return logging.New(logConfig, os.Stderr)
}

// connectHistory opens the run history database and prepares its tables
func connectHistory() (*repository.RunRepository, error) {
	pgConfig, err := config.LoadPostgresConfig(os.Getenv)
	if err != nil {
		return nil, fmt.Errorf("failed to load postgres config: %w", err)
	}
	if err := database.Connect(pgConfig); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.RunMigrations(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	return repository.NewRunRepository(), nil
}

// buildRunDependencies creates everything a run needs except the browser
func buildRunDependencies(c *cli.Context, log zerolog.Logger) (internalcli.RunDependencies, error) {
	var deps internalcli.RunDependencies

	browserConfig, err := config.LoadBrowserConfig(os.Getenv)
	if err != nil {
		return deps, fmt.Errorf("invalid browser configuration: %w", err)
	}
	if d := c.String("driver"); d != "" {
		browserConfig.Driver = d
	}
	deps.Browser = browserConfig

	set, err := loadFixtures()
	if err != nil {
		return deps, fmt.Errorf("failed to load fixtures: %w", err)
	}
	deps.Fixtures = set
	deps.Suites = suites.All(set)
	deps.Filter = scenario.Filter{
		Suites:    c.StringSlice("suite"),
		Tags:      c.StringSlice("tag"),
		Scenarios: c.StringSlice("scenario"),
	}
	deps.Log = log
	deps.Out = os.Stdout

	return deps, nil
}

// RunCommand returns the run command
func RunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run storefront scenarios in a browser",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "suite", Usage: "only run these suites (home, shop, signin)"},
			&cli.StringSliceFlag{Name: "tag", Usage: "only run scenarios with one of these tags"},
			&cli.StringSliceFlag{Name: "scenario", Usage: "only run these scenarios"},
			&cli.StringFlag{Name: "driver", Usage: "browser driver (playwright, chromedp), overrides SHOPCHECK_DRIVER"},
			&cli.BoolFlag{Name: "record", Usage: "record the run in the history database"},
		},
		Action: func(c *cli.Context) error {
			log, closer, err := newLogger()
			if err != nil {
				return err
			}
			defer closer.Close()

			deps, err := buildRunDependencies(c, log)
			if err != nil {
				return err
			}

			if c.Bool("record") {
				repo, err := connectHistory()
				if err != nil {
					return err
				}
				defer database.Close()
				log.Info().Msg("connected to run history database")
				deps.Recorder = repo
			}

			launcher, err := driver.Launch(deps.Browser, log)
			if err != nil {
				return fmt.Errorf("failed to launch browser: %w", err)
			}
			defer launcher.Close()
			stop := internalcli.WatchInterrupt(launcher, nil, log)
			defer stop()

			deps.Sessions = launcher
			return internalcli.RunSuites(deps)
		},
	}
}

// ListCommand returns the list command
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List suites and scenarios",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "locators", Usage: "also print the page locators"},
		},
		Action: func(c *cli.Context) error {
			set, err := loadFixtures()
			if err != nil {
				return fmt.Errorf("failed to load fixtures: %w", err)
			}
			if err := internalcli.ListSuites(os.Stdout, suites.All(set)); err != nil {
				return err
			}
			if !c.Bool("locators") {
				return nil
			}
			fmt.Fprintln(os.Stdout)
			return internalcli.ListLocators(os.Stdout, pages.HomeLocators, pages.ShopLocators, pages.SigninLocators)
		},
	}
}

// HistoryCommand returns the history command
func HistoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show recorded runs",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Value: 20, Usage: "number of runs to show"},
			&cli.StringFlag{Name: "run", Usage: "show the results of one run"},
		},
		Action: func(c *cli.Context) error {
			repo, err := connectHistory()
			if err != nil {
				return err
			}
			defer database.Close()

			if id := c.String("run"); id != "" {
				return internalcli.PrintRun(os.Stdout, repo, id)
			}
			return internalcli.PrintHistory(os.Stdout, repo, c.Int("limit"))
		},
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: .env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "shopcheck",
		Usage:   "Browser checks for the target.com storefront",
		Version: version,
		Commands: []*cli.Command{
			RunCommand(),
			ListCommand(),
			HistoryCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
