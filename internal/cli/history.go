package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/adyen/shopcheck/internal/models"
)

// HistoryStore reads recorded runs. *repository.RunRepository satisfies it.
type HistoryStore interface {
	ListRecentRuns(limit int) ([]*models.Run, error)
	GetRun(id string) (*models.Run, error)
	GetResults(runID string) ([]*models.ScenarioResult, error)
}

// PrintHistory lists the latest runs, newest first
func PrintHistory(out io.Writer, store HistoryStore, limit int) error {
	runs, err := store.ListRecentRuns(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs recorded")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTARTED\tDRIVER\tSTATUS\tPASSED\tFAILED\tDURATION")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			r.ID, r.StartedAt.Format(time.RFC3339), r.Driver, r.Status, r.Passed, r.Failed, r.Duration().Round(time.Second))
	}
	return w.Flush()
}

// PrintRun prints one run with every recorded scenario result
func PrintRun(out io.Writer, store HistoryStore, runID string) error {
	run, err := store.GetRun(runID)
	if err != nil {
		return err
	}
	results, err := store.GetResults(runID)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "run %s (%s, %s) %s\n", run.ID, run.Driver, run.BaseURL, run.Status)
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, res := range results {
		status := "PASS"
		if !res.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(w, "%s\t%s/%s\t%dms\t%s\t%s\n", status, res.Suite, res.Name, res.DurationMS, res.Kind, res.Message)
	}
	return w.Flush()
}
