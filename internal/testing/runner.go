package testing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"fabric-mcp/internal/fabric"
	"fabric-mcp/internal/testing/mock"
	"fabric-mcp/internal/tools"
	"fabric-mcp/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
)

// Runner executes scenarios, each against a fresh fake provider.
type Runner struct {
	failFast bool
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithFailFast stops a run after the first failed or errored scenario.
func WithFailFast(failFast bool) RunnerOption {
	return func(r *Runner) {
		r.failFast = failFast
	}
}

// NewRunner creates a scenario runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes scenarios in order and aggregates their results.
func (r *Runner) Run(ctx context.Context, scenarios []Scenario) *SuiteResult {
	start := time.Now()
	suite := &SuiteResult{}

	for _, scenario := range scenarios {
		if ctx.Err() != nil {
			break
		}

		result := r.RunScenario(ctx, scenario)
		suite.Scenarios = append(suite.Scenarios, result)

		switch result.Result {
		case ResultPassed:
			suite.Passed++
		case ResultFailed:
			suite.Failed++
		case ResultSkipped:
			suite.Skipped++
		case ResultError:
			suite.Errored++
		}

		if r.failFast && !suite.OK() {
			logging.Info("Scenario", "Stopping after %s: fail-fast is enabled", scenario.Name)
			break
		}
	}

	suite.Duration = time.Since(start)
	return suite
}

// RunScenario executes one scenario. The first failing step ends it.
func (r *Runner) RunScenario(ctx context.Context, scenario Scenario) (result ScenarioResult) {
	start := time.Now()
	result = ScenarioResult{Scenario: scenario, Result: ResultPassed}
	defer func() {
		result.Duration = time.Since(start)
	}()

	if scenario.Skip {
		result.Result = ResultSkipped
		logging.Debug("Scenario", "Skipping %s", scenario.Name)
		return result
	}

	srv := mock.NewFabricServer()
	defer srv.Close()

	for _, route := range scenario.Fabric.Routes {
		status := route.Status
		if status == 0 {
			status = http.StatusOK
		}
		srv.Handle(strings.ToUpper(route.Method), route.Path, status, route.Body)
	}
	if failure := scenario.Fabric.TokenFailure; failure != nil {
		srv.FailTokenRequests(failure.Status, failure.Body)
	}

	router, err := newScenarioRouter(srv)
	if err != nil {
		result.Result = ResultError
		result.Error = err.Error()
		return result
	}

	timeout := scenario.Timeout
	if timeout == 0 {
		timeout = DefaultScenarioTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logging.Debug("Scenario", "Running %s (%d steps)", scenario.Name, len(scenario.Steps))
	for _, step := range scenario.Steps {
		stepResult := runStep(ctx, router, srv, step)
		result.Steps = append(result.Steps, stepResult)
		if stepResult.Result != ResultPassed {
			result.Result = ResultFailed
			break
		}
	}
	return result
}

func newScenarioRouter(srv *mock.FabricServer) (*tools.Router, error) {
	auth := fabric.NewAuthenticator(srv.TokenURL(), mock.ClientID, mock.ClientSecret,
		fabric.WithAuthHTTPClient(srv.Client()))
	client := fabric.NewClient(srv.APIBaseURL(), auth, fabric.WithHTTPClient(srv.Client()))
	return tools.NewRouter(fabric.NewService(client))
}

func runStep(ctx context.Context, router *tools.Router, srv *mock.FabricServer, step Step) StepResult {
	before := len(srv.Requests())
	start := time.Now()

	callResult := router.Call(ctx, step.Tool, step.Args)

	stepResult := StepResult{
		Step:     step,
		Result:   ResultPassed,
		Output:   resultText(callResult),
		Duration: time.Since(start),
	}
	sent := srv.Requests()[before:]
	stepResult.Failures = checkExpectation(step.Expected, callResult.IsError, stepResult.Output, sent)
	if len(stepResult.Failures) > 0 {
		stepResult.Result = ResultFailed
	}

	logging.Debug("Scenario", "Step %s (%s): %s in %s", step.ID, step.Tool, stepResult.Result, stepResult.Duration)
	return stepResult
}

func resultText(result *mcp.CallToolResult) string {
	var parts []string
	for _, content := range result.Content {
		if text, ok := mcp.AsTextContent(content); ok {
			parts = append(parts, text.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// checkExpectation returns one message per unmet expectation.
func checkExpectation(expected Expectation, isError bool, output string, sent []mock.RecordedRequest) []string {
	var failures []string

	if expected.Success && isError {
		failures = append(failures, fmt.Sprintf("expected success, got error result: %s", output))
	}
	if !expected.Success && !isError {
		failures = append(failures, "expected an error result, got success")
	}

	for _, text := range expected.ErrorContains {
		if !isError || !containsFold(output, text) {
			failures = append(failures, fmt.Sprintf("error result does not contain %q", text))
		}
	}
	for _, text := range expected.Contains {
		if !containsFold(output, text) {
			failures = append(failures, fmt.Sprintf("result does not contain %q", text))
		}
	}
	for _, text := range expected.NotContains {
		if containsFold(output, text) {
			failures = append(failures, fmt.Sprintf("result unexpectedly contains %q", text))
		}
	}

	if len(expected.JSONPath) > 0 {
		failures = append(failures, checkJSONPaths(expected.JSONPath, output)...)
	}

	if expected.APICalls != nil && len(sent) != *expected.APICalls {
		failures = append(failures, fmt.Sprintf("expected %d API calls, got %d", *expected.APICalls, len(sent)))
	}

	if expected.Request != nil {
		failures = append(failures, checkRequest(*expected.Request, sent)...)
	}
	return failures
}

func checkJSONPaths(paths map[string]any, output string) []string {
	var doc any
	if err := json.Unmarshal([]byte(output), &doc); err != nil {
		return []string{fmt.Sprintf("result is not JSON: %v", err)}
	}

	keys := make([]string, 0, len(paths))
	for key := range paths {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var failures []string
	for _, key := range keys {
		actual, ok := lookupPath(doc, key)
		if !ok {
			failures = append(failures, fmt.Sprintf("json path %q not found", key))
			continue
		}
		if !sameJSON(actual, paths[key]) {
			failures = append(failures, fmt.Sprintf("json path %q: expected %v, got %v", key, paths[key], actual))
		}
	}
	return failures
}

func checkRequest(expected RequestExpectation, sent []mock.RecordedRequest) []string {
	if len(sent) == 0 {
		return []string{"expected an API request, none was sent"}
	}
	last := sent[len(sent)-1]

	var failures []string
	if expected.Method != "" && !strings.EqualFold(expected.Method, last.Method) {
		failures = append(failures, fmt.Sprintf("expected %s request, got %s", expected.Method, last.Method))
	}
	if expected.Path != "" && expected.Path != last.Path {
		failures = append(failures, fmt.Sprintf("expected request path %q, got %q", expected.Path, last.Path))
	}
	if expected.Query != "" && expected.Query != last.RawQuery {
		failures = append(failures, fmt.Sprintf("expected query %q, got %q", expected.Query, last.RawQuery))
	}
	if expected.Body != nil {
		want := expected.Body
		if s, ok := want.(string); ok {
			if err := json.Unmarshal([]byte(s), &want); err != nil {
				return append(failures, fmt.Sprintf("expected request body is not JSON: %v", err))
			}
		}
		actual, err := last.JSON()
		if err != nil {
			failures = append(failures, fmt.Sprintf("request body is not JSON: %v", err))
		} else if !sameJSON(actual, want) {
			failures = append(failures, fmt.Sprintf("request body mismatch: got %s", last.Body))
		}
	}
	return failures
}

// lookupPath walks a decoded JSON document along a dotted path. Numeric
// segments index into arrays.
func lookupPath(doc any, path string) (any, bool) {
	current := doc
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = value
		case []any:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(node) {
				return nil, false
			}
			current = node[index]
		default:
			return nil, false
		}
	}
	return current, true
}

// sameJSON compares two values after a JSON round trip, so YAML integers
// match decoded JSON numbers.
func sameJSON(a, b any) bool {
	na, errA := normalizeJSON(a)
	nb, errB := normalizeJSON(b)
	if errA != nil || errB != nil {
		return false
	}
	return reflect.DeepEqual(na, nb)
}

func normalizeJSON(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	err = json.Unmarshal(raw, &out)
	return out, err
}

func containsFold(text, substr string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(substr))
}
