package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario(t *testing.T) {
	path := writeFile(t, t.TempDir(), "sum.yaml", `source: |
  10 LET X = 1
policy:
  recover: [E_UNBOUND]
expect:
  exitCode: 0
  value: 1
  stdout: ""
`)
	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "sum", s.Name)
	assert.Equal(t, "run", s.Cmd)
	assert.Equal(t, "10 LET X = 1\n", s.Source)
	require.NotNil(t, s.Policy)
	assert.Equal(t, []string{"E_UNBOUND"}, s.Policy.Recover)
	require.NotNil(t, s.Expect.Value)
	assert.Equal(t, int64(1), *s.Expect.Value)
	require.NotNil(t, s.Expect.Stdout)
	assert.Equal(t, "", *s.Expect.Stdout)
	assert.Nil(t, s.Expect.Variables)
}

func TestLoadScenarioRejectsBadInput(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadScenario(writeFile(t, dir, "a.yaml", "cmd: explode\n"))
	assert.ErrorContains(t, err, "unsupported cmd")

	_, err = LoadScenario(writeFile(t, dir, "b.yaml", "sauce: 1\n"))
	assert.Error(t, err)

	_, err = LoadScenario(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestListScenarios(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.yaml", "")
	writeFile(t, dir, "a.yml", "")
	writeFile(t, dir, "notes.txt", "")

	paths, err := ListScenarios(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.yml"), filepath.Join(dir, "b.yaml")}, paths)
}

func TestIsSubset(t *testing.T) {
	actual := map[string]any{
		"code":    "E_UNBOUND",
		"message": "line 10: variable X is not defined",
		"span":    map[string]any{"startLine": float64(1), "startCol": float64(10)},
	}

	assert.True(t, IsSubset(map[string]any{"code": "E_UNBOUND"}, actual))
	assert.True(t, IsSubset(map[string]any{"span": map[string]any{"startCol": 10}}, actual))
	assert.False(t, IsSubset(map[string]any{"code": "E_LEX"}, actual))
	assert.False(t, IsSubset(map[string]any{"hint": "x"}, actual))
	assert.True(t, IsSubset([]any{"a"}, []any{"a", "b"}))
	assert.False(t, IsSubset([]any{"a", "b", "c"}, []any{"a", "b"}))
	assert.True(t, IsSubset(nil, nil))
}
