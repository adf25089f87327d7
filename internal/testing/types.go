package testing

import (
	"time"
)

// Result represents the outcome of a scenario or step.
type Result string

const (
	// ResultPassed indicates every expectation held
	ResultPassed Result = "PASSED"
	// ResultFailed indicates an expectation did not hold
	ResultFailed Result = "FAILED"
	// ResultSkipped indicates the scenario was marked skip
	ResultSkipped Result = "SKIPPED"
	// ResultError indicates the scenario could not be executed
	ResultError Result = "ERROR"
)

// DefaultScenarioTimeout bounds a scenario that does not set its own timeout.
const DefaultScenarioTimeout = 30 * time.Second

// Scenario defines a single test scenario
type Scenario struct {
	// Name is the unique identifier for the scenario
	Name string `yaml:"name" json:"name"`
	// Description provides human-readable scenario description
	Description string `yaml:"description" json:"description,omitempty"`
	// Tags for additional categorization
	Tags []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	// Skip indicates whether this scenario should be skipped
	Skip bool `yaml:"skip,omitempty" json:"skip,omitempty"`
	// Timeout for this specific scenario
	Timeout time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`
	// Fabric configures the fake provider before the first step
	Fabric FabricSetup `yaml:"fabric,omitempty" json:"fabric"`
	// Steps define the tool calls to execute in order
	Steps []Step `yaml:"steps" json:"steps"`
}

// FabricSetup describes the canned behaviour of the fake provider.
type FabricSetup struct {
	Routes []Route `yaml:"routes,omitempty" json:"routes,omitempty"`
	// TokenFailure makes every token request fail when set.
	TokenFailure *TokenFailure `yaml:"token_failure,omitempty" json:"token_failure,omitempty"`
}

// Route is one canned API response. Path is relative to the API root.
type Route struct {
	Method string `yaml:"method" json:"method"`
	Path   string `yaml:"path" json:"path"`
	// Status defaults to 200.
	Status int `yaml:"status,omitempty" json:"status,omitempty"`
	// Body is JSON encoded unless it is a string, which is sent verbatim.
	Body any `yaml:"body,omitempty" json:"body,omitempty"`
}

// TokenFailure is the response served by a failing token endpoint.
type TokenFailure struct {
	Status int    `yaml:"status" json:"status"`
	Body   string `yaml:"body,omitempty" json:"body,omitempty"`
}

// Step is one tool invocation.
type Step struct {
	ID          string         `yaml:"id" json:"id"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Tool        string         `yaml:"tool" json:"tool"`
	Args        map[string]any `yaml:"args,omitempty" json:"args,omitempty"`
	Expected    Expectation    `yaml:"expected" json:"expected"`
}

// Expectation defines what a step's result must look like.
type Expectation struct {
	// Success is true when the result must not be an error result
	Success bool `yaml:"success" json:"success"`
	// Contains lists case-insensitive substrings of the result text
	Contains []string `yaml:"contains,omitempty" json:"contains,omitempty"`
	// NotContains lists substrings that must be absent
	NotContains []string `yaml:"not_contains,omitempty" json:"not_contains,omitempty"`
	// ErrorContains lists substrings of an error result
	ErrorContains []string `yaml:"error_contains,omitempty" json:"error_contains,omitempty"`
	// JSONPath maps dotted paths (data.0.uuid) to expected values
	JSONPath map[string]any `yaml:"json_path,omitempty" json:"json_path,omitempty"`
	// APICalls is the exact number of API requests the step must send
	APICalls *int `yaml:"api_calls,omitempty" json:"api_calls,omitempty"`
	// Request describes the last API request the step must send
	Request *RequestExpectation `yaml:"request,omitempty" json:"request,omitempty"`
}

// RequestExpectation matches the last API request issued by a step.
type RequestExpectation struct {
	Method string `yaml:"method,omitempty" json:"method,omitempty"`
	Path   string `yaml:"path,omitempty" json:"path,omitempty"`
	Query  string `yaml:"query,omitempty" json:"query,omitempty"`
	// Body is compared as JSON after normalisation.
	Body any `yaml:"body,omitempty" json:"body,omitempty"`
}

// StepResult captures the outcome of one step.
type StepResult struct {
	Step     Step          `json:"step"`
	Result   Result        `json:"result"`
	Output   string        `json:"output,omitempty"`
	Failures []string      `json:"failures,omitempty"`
	Duration time.Duration `json:"duration"`
}

// ScenarioResult captures the outcome of one scenario.
type ScenarioResult struct {
	Scenario Scenario      `json:"scenario"`
	Result   Result        `json:"result"`
	Steps    []StepResult  `json:"steps,omitempty"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// SuiteResult aggregates the results of a run.
type SuiteResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Skipped   int              `json:"skipped"`
	Errored   int              `json:"errored"`
	Duration  time.Duration    `json:"duration"`
}

// OK reports whether no scenario failed or errored.
func (s *SuiteResult) OK() bool {
	return s.Failed == 0 && s.Errored == 0
}

// Filter selects scenarios by name and tag. Empty fields match everything.
type Filter struct {
	Name string
	Tag  string
}
