// Package testutil provides shared test helpers for badbasic tests.
package testutil

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/thomasrohde/badbasic/pkg/policy"
)

// ScenariosDir is the scenarios directory relative to the module root.
const ScenariosDir = "testdata/scenarios"

// Scenario is one conformance case loaded from a YAML file.
type Scenario struct {
	Name   string         `yaml:"name"`
	Cmd    string         `yaml:"cmd"` // run, check or fmt
	Pretty bool           `yaml:"pretty"`
	Policy *policy.File   `yaml:"policy"`
	Source string         `yaml:"source"`
	Tags   []string       `yaml:"tags"`
	Expect ExpectedResult `yaml:"expect"`

	// Path is the file the scenario was loaded from.
	Path string `yaml:"-"`
}

// ExpectedResult describes the outcome of running a scenario. Unset fields
// are not checked.
type ExpectedResult struct {
	ExitCode       int              `yaml:"exitCode"`
	Stdout         *string          `yaml:"stdout"`
	Value          *int64           `yaml:"value"`
	Variables      map[string]int64 `yaml:"variables"`
	Diagnostics    []map[string]any `yaml:"diagnostics"`
	StderrContains string           `yaml:"stderrContains"`
}

// LoadScenario reads a scenario file. Unknown keys are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = trimExt(filepath.Base(path))
	}
	switch s.Cmd {
	case "run", "check", "fmt":
	case "":
		s.Cmd = "run"
	default:
		return nil, fmt.Errorf("%s: unsupported cmd %q", path, s.Cmd)
	}
	s.Path = path
	return &s, nil
}

// ListScenarios returns the scenario files under root in name order.
func ListScenarios(root string) ([]string, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(root, pattern))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)
	return paths, nil
}

// IsSubset reports whether expected is contained in actual. Maps match on
// the keys of expected, slices element-wise on a prefix, numbers by value.
func IsSubset(expected, actual any) bool {
	switch e := expected.(type) {
	case map[string]any:
		a, ok := actual.(map[string]any)
		if !ok {
			return false
		}
		for k, ev := range e {
			av, exists := a[k]
			if !exists || !IsSubset(ev, av) {
				return false
			}
		}
		return true

	case []any:
		a, ok := actual.([]any)
		if !ok || len(e) > len(a) {
			return false
		}
		for i, ev := range e {
			if !IsSubset(ev, a[i]) {
				return false
			}
		}
		return true

	case int:
		return IsSubset(float64(e), actual)

	case float64:
		af, ok := actual.(float64)
		return ok && e == af

	case nil:
		return actual == nil

	default:
		return fmt.Sprintf("%v", expected) == fmt.Sprintf("%v", actual)
	}
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}
