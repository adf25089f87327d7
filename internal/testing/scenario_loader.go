package testing

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed scenarios/*.yaml
var builtinScenarios embed.FS

// LoadBuiltinScenarios loads the scenarios embedded in the binary.
func LoadBuiltinScenarios() ([]Scenario, error) {
	return loadScenariosFS(builtinScenarios, "scenarios")
}

// LoadScenarios loads test scenarios from a YAML file or a directory of them.
func LoadScenarios(scenarioPath string) ([]Scenario, error) {
	info, err := os.Stat(scenarioPath)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("scenario path does not exist: %s", scenarioPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat scenario path: %w", err)
	}

	if info.IsDir() {
		scenarios, err := loadScenariosFS(os.DirFS(scenarioPath), ".")
		if err != nil {
			return nil, fmt.Errorf("failed to load scenarios from directory: %w", err)
		}
		return scenarios, nil
	}

	data, err := os.ReadFile(scenarioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	scenario, err := parseScenario(data, filepath.Base(scenarioPath))
	if err != nil {
		return nil, err
	}
	return []Scenario{scenario}, nil
}

func loadScenariosFS(fsys fs.FS, root string) ([]Scenario, error) {
	var scenarios []Scenario
	seen := make(map[string]string)

	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isYAMLFile(p) {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}
		scenario, err := parseScenario(data, p)
		if err != nil {
			return err
		}
		if other, ok := seen[scenario.Name]; ok {
			return fmt.Errorf("scenario %q is defined in both %s and %s", scenario.Name, other, p)
		}
		seen[scenario.Name] = p
		scenarios = append(scenarios, scenario)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	return scenarios, nil
}

func parseScenario(data []byte, source string) (Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return Scenario{}, fmt.Errorf("failed to parse YAML in %s: %w", source, err)
	}
	if err := validateScenario(scenario); err != nil {
		return Scenario{}, fmt.Errorf("invalid scenario in %s: %w", source, err)
	}
	return scenario, nil
}

// validateScenario ensures a scenario has the required fields
func validateScenario(scenario Scenario) error {
	if scenario.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if len(scenario.Steps) == 0 {
		return fmt.Errorf("scenario %q must have at least one step", scenario.Name)
	}
	if scenario.Timeout < 0 {
		return fmt.Errorf("scenario %q has a negative timeout", scenario.Name)
	}

	for i, route := range scenario.Fabric.Routes {
		if route.Method == "" || route.Path == "" {
			return fmt.Errorf("route %d: method and path are required", i)
		}
		if !strings.HasPrefix(route.Path, "/") {
			return fmt.Errorf("route %d: path %q must start with /", i, route.Path)
		}
	}

	ids := make(map[string]bool, len(scenario.Steps))
	for i, step := range scenario.Steps {
		if err := validateStep(step, i); err != nil {
			return err
		}
		if ids[step.ID] {
			return fmt.Errorf("step %d: duplicate step id %q", i, step.ID)
		}
		ids[step.ID] = true
	}
	return nil
}

// validateStep ensures a step has the required fields
func validateStep(step Step, index int) error {
	if step.ID == "" {
		return fmt.Errorf("step %d: id is required", index)
	}
	if step.Tool == "" {
		return fmt.Errorf("step %q: tool is required", step.ID)
	}
	if step.Expected.APICalls != nil && *step.Expected.APICalls < 0 {
		return fmt.Errorf("step %q: api_calls must not be negative", step.ID)
	}
	return nil
}

// FilterScenarios returns the scenarios matching filter.
func FilterScenarios(scenarios []Scenario, filter Filter) []Scenario {
	var filtered []Scenario
	for _, scenario := range scenarios {
		if filter.Name != "" && scenario.Name != filter.Name {
			continue
		}
		if filter.Tag != "" && !hasTag(scenario, filter.Tag) {
			continue
		}
		filtered = append(filtered, scenario)
	}
	return filtered
}

func hasTag(scenario Scenario, tag string) bool {
	for _, t := range scenario.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

func isYAMLFile(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	return ext == ".yaml" || ext == ".yml"
}
