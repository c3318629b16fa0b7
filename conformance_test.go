package badbasic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thomasrohde/badbasic/internal/testutil"
	"github.com/thomasrohde/badbasic/pkg/diagnostics"
	"github.com/thomasrohde/badbasic/pkg/policy"
	"github.com/thomasrohde/badbasic/pkg/runtime"
)

// outcome is what the CLI would report for a scenario.
type outcome struct {
	exitCode int
	stdout   string
	stderr   string
	diags    []diagnostics.Diagnostic
	result   *runtime.Result
}

func TestConformance(t *testing.T) {
	paths, err := testutil.ListScenarios(testutil.ScenariosDir)
	require.NoError(t, err)
	require.NotEmpty(t, paths, "no scenarios under %s", testutil.ScenariosDir)

	for _, path := range paths {
		scenario, err := testutil.LoadScenario(path)
		require.NoError(t, err)

		t.Run(scenario.Name, func(t *testing.T) {
			got := runScenario(t, scenario)
			checkScenario(t, scenario, got)
		})
	}
}

func runScenario(t *testing.T, s *testutil.Scenario) outcome {
	t.Helper()

	pol := policy.Default()
	if s.Policy != nil {
		var err error
		pol, err = policy.Build(*s.Policy)
		require.NoError(t, err)
	}

	var stdout bytes.Buffer
	rt := runtime.New(
		runtime.WithOutput(&stdout),
		runtime.WithPolicy(pol),
		runtime.WithRunID("conformance"),
	)
	filename := filepath.Base(s.Path)

	var o outcome
	switch s.Cmd {
	case "check":
		o.diags = rt.Check(s.Source, filename)
		if len(o.diags) > 0 {
			o.exitCode = 2
		} else {
			stdout.WriteString("[]")
		}

	case "fmt":
		formatted, err := rt.Format(s.Source, filename)
		if err != nil {
			o.diags = runtime.Diagnose(err)
			o.exitCode = 2
		}
		stdout.WriteString(formatted)

	default:
		res, err := rt.Run(context.Background(), s.Source, filename)
		o.result = res
		if res != nil {
			o.diags = res.Diagnostics
		}
		if err != nil {
			o.diags = append(o.diags, runtime.Diagnose(err)...)
			o.exitCode = 4
			var de *runtime.DiagnosticError
			if errors.As(err, &de) {
				o.exitCode = 2
			}
		}
	}

	o.stdout = stdout.String()
	if len(o.diags) > 0 {
		o.stderr = diagnostics.FormatDiagnostics(o.diags, s.Pretty)
	}
	return o
}

func checkScenario(t *testing.T, s *testutil.Scenario, got outcome) {
	t.Helper()
	want := s.Expect

	assert.Equal(t, want.ExitCode, got.exitCode, "exit code (stderr: %s)", got.stderr)
	if want.Stdout != nil {
		assert.Equal(t, *want.Stdout, got.stdout, "stdout")
	}
	if want.StderrContains != "" {
		assert.Contains(t, got.stderr, want.StderrContains)
	}

	if want.Value != nil || want.Variables != nil {
		require.NotNil(t, got.result, "expected a run result")
		if want.Value != nil {
			assert.Equal(t, *want.Value, got.result.Value, "value")
		}
		if want.Variables != nil {
			assert.Equal(t, want.Variables, got.result.Variables, "variables")
		}
	}

	if want.Diagnostics != nil {
		actual := diagsAsJSON(t, got.diags)
		require.Len(t, actual, len(want.Diagnostics), "diagnostics: %s", got.stderr)
		for i, expected := range want.Diagnostics {
			assert.True(t, testutil.IsSubset(expected, actual[i]),
				"diagnostic %d:\n  expected subset: %v\n  got: %v", i, expected, actual[i])
		}
	}
}

func diagsAsJSON(t *testing.T, diags []diagnostics.Diagnostic) []any {
	t.Helper()
	b, err := json.Marshal(diags)
	require.NoError(t, err)
	var out []any
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}
