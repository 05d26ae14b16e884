package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.coccyx/pkg/report"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	base := []string{"--env-file", filepath.Join(t.TempDir(), "none.env"), "--log-level", "error"}
	cmd.SetArgs(append(args, base...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func fastRun(extra ...string) []string {
	return append([]string{
		"run", "--poll-interval", "1ms", "--pre-run-delay", "0s",
	}, extra...)
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "coccyx", cmd.Use)
	assert.Contains(t, cmd.Long, "queue")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"run", "config", "history", "validate"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)
}

func TestRun_AllPass(t *testing.T) {
	out, err := execute(t, fastRun("--output", "text")...)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "Building queue. Please wait...\n"))
	assert.Contains(t, out, "Queue built.")
	assert.Contains(t, out, "Testing has completed.")
	assert.Contains(t, out, "passed, 0 tests failed.")
}

func TestRun_WithFailures(t *testing.T) {
	out, err := execute(t, fastRun("--output", "text", "--with-failures")...)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	assert.Contains(t, out, `Assertion "different numbers" (assertEqual) in test "mismatches", group "Failures" failed! Expected "1" === "2".`)
	assert.Contains(t, out, "3 assertions/1 test/1 group failed.")
}

func TestRun_ShortCircuit(t *testing.T) {
	out, err := execute(t, fastRun("--output", "text", "--with-failures", "--short-circuit")...)
	require.Error(t, err)
	assert.Contains(t, out, "Stopped at the first failure.")
	assert.Contains(t, out, "2 assertions not run.")
}

func TestRun_JSONOutputAndResults(t *testing.T) {
	dir := t.TempDir()
	metricsFile := filepath.Join(dir, "coccyx.prom")
	out, err := execute(t, fastRun(
		"--output", "json",
		"--results-dir", dir,
		"--html",
		"--metrics-file", metricsFile,
	)...)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	var last report.Event
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &last))
	assert.Equal(t, report.EventCompleted, last.Type)
	require.NotNil(t, last.Summary)

	_, err = os.Stat(filepath.Join(dir, "html", "report_"+last.Summary.RunID+".html"))
	assert.NoError(t, err)

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "coccyx_assertions_evaluated_total")

	histOut, err := execute(t, "history", "--results-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, histOut, last.Summary.RunID)
	assert.Contains(t, histOut, "PASSED")
}

const suiteYAML = `version: "1.0"
name: cli suite
groups:
  - label: Strings
    tests:
      - label: greetings
        assertions:
          - label: hello
            kind: assertEqual
            actual: hello
            expected: hello
          - label: farewell
            kind: assertNotEqual
            actual: bye
            expected: bye
`

func writeSuite(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "suite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRun_SuiteFile(t *testing.T) {
	path := writeSuite(t, suiteYAML)
	out, err := execute(t, fastRun("--output", "text", "--suite", path)...)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	assert.Contains(t, out, "Running 2 assertions/1 test/1 group...")
	assert.Contains(t, out, `Assertion "farewell" (assertNotEqual) in test "greetings", group "Strings" failed! Expected "bye" !== "bye".`)
}

func TestRun_SuiteFileInvalid(t *testing.T) {
	path := writeSuite(t, "name: no version\n")
	_, err := execute(t, fastRun("--suite", path)...)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestValidateCommand(t *testing.T) {
	good := writeSuite(t, suiteYAML)
	out, err := execute(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, good+": ok")

	bad := writeSuite(t, "name: no version\n")
	out, err = execute(t, "validate", bad)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "version is required")

	_, err = execute(t, "validate", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRun_HTMLWithoutResultsDir(t *testing.T) {
	out, err := execute(t, fastRun("--output", "text", "--html")...)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "results directory")
	assert.NotContains(t, out, "Building queue")
}

func TestRun_InvalidOutput(t *testing.T) {
	_, err := execute(t, fastRun("--output", "xml")...)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRun_InvalidLogFormat(t *testing.T) {
	_, err := execute(t, fastRun("--log-format", "yaml")...)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid log format")
}

func TestConfigCommand(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "coccyx.yaml")
	require.NoError(t, os.WriteFile(cfgPath,
		[]byte("short_circuit: true\nredact: [supersecretvalue]\n"), 0644))

	out, err := execute(t, "config", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "short_circuit: true")
	assert.NotContains(t, out, "supersecretvalue")
}

func TestConfigCommand_MissingFile(t *testing.T) {
	_, err := execute(t, "config", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestHistoryCommand_Empty(t *testing.T) {
	out, err := execute(t, "history", "--results-dir", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded.")

	out, err = execute(t, "history", "--results-dir", t.TempDir(), "--json")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestHistoryCommand_NoDir(t *testing.T) {
	_, err := execute(t, "history")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad")))

	wrapped := WrapExitError(ExitFailure, "outer", errors.New("inner"))
	assert.Equal(t, "outer: inner", wrapped.Error())
}
