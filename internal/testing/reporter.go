package testing

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// WriteTable renders a suite summary. With verbose set, failures are listed
// under the table with the failing step and output.
func WriteTable(w io.Writer, suite *SuiteResult, verbose bool) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("SCENARIO"),
		text.FgHiCyan.Sprint("RESULT"),
		text.FgHiCyan.Sprint("STEPS"),
		text.FgHiCyan.Sprint("DURATION"),
	})

	for _, sr := range suite.Scenarios {
		t.AppendRow(table.Row{
			sr.Scenario.Name,
			colorResult(sr.Result),
			fmt.Sprintf("%d/%d", passedSteps(sr), len(sr.Scenario.Steps)),
			sr.Duration.Round(time.Millisecond),
		})
	}

	t.AppendFooter(table.Row{
		"",
		fmt.Sprintf("%d passed, %d failed, %d skipped, %d errors", suite.Passed, suite.Failed, suite.Skipped, suite.Errored),
		"",
		suite.Duration.Round(time.Millisecond),
	})
	t.Render()

	if !verbose {
		return
	}
	for _, sr := range suite.Scenarios {
		if sr.Error != "" {
			fmt.Fprintf(w, "\n%s: %s\n", sr.Scenario.Name, sr.Error)
		}
		for _, step := range sr.Steps {
			if step.Result == ResultPassed {
				continue
			}
			fmt.Fprintf(w, "\n%s / %s (%s):\n", sr.Scenario.Name, step.Step.ID, step.Step.Tool)
			for _, failure := range step.Failures {
				fmt.Fprintf(w, "  - %s\n", failure)
			}
			if step.Output != "" {
				fmt.Fprintf(w, "  output: %s\n", strings.ReplaceAll(step.Output, "\n", "\n          "))
			}
		}
	}
}

// WriteJSON writes the suite result as indented JSON.
func WriteJSON(w io.Writer, suite *SuiteResult) error {
	data, err := json.MarshalIndent(suite, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode test results: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func passedSteps(sr ScenarioResult) int {
	n := 0
	for _, step := range sr.Steps {
		if step.Result == ResultPassed {
			n++
		}
	}
	return n
}

func colorResult(r Result) string {
	switch r {
	case ResultPassed:
		return text.FgGreen.Sprint(string(r))
	case ResultSkipped:
		return text.FgYellow.Sprint(string(r))
	default:
		return text.FgRed.Sprint(string(r))
	}
}
