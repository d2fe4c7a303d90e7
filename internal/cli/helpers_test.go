package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const testCSV = "last1,first1,last2,first2,address1,address2,city,state,zip,country\n" +
	"Walker,John,,,1 Main St,,Springfield,IL,62701,\n" +
	"Fry,Cindi,Fry,Bob,2 Oak Ave,PO Box 9,Shelbyville,IL,62565,USA\n" +
	",,,,,,,,,\n" +
	"Walker,Mary,,,3 Elm St,,Springfield,IL,62702,\n"

// testEnv isolates one CLI invocation in temporary config and data
// directories.
type testEnv struct {
	t         *testing.T
	ConfigDir string
	DataDir   string
	WorkDir   string
}

// runResult holds the outcome of one command.
type runResult struct {
	Stdout   string
	Stderr   string
	Err      error
	ExitCode int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	env := &testEnv{
		t:         t,
		ConfigDir: filepath.Join(root, "config"),
		DataDir:   filepath.Join(root, "data"),
		WorkDir:   filepath.Join(root, "work"),
	}
	require.NoError(t, os.MkdirAll(env.WorkDir, 0o755))
	return env
}

// writeInput writes the address CSV into the work directory.
func (e *testEnv) writeInput(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.WorkDir, name)
	require.NoError(e.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (e *testEnv) path(name string) string {
	return filepath.Join(e.WorkDir, name)
}

// run executes labels with args and the environment's directories.
func (e *testEnv) run(args ...string) runResult {
	e.t.Helper()
	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	full := append([]string{"--config-dir", e.ConfigDir, "--data-dir", e.DataDir}, args...)
	root.SetArgs(full)

	err := root.Execute()
	return runResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Err:      err,
		ExitCode: exitCode(err),
	}
}

// mustRun executes labels and fails the test on a non-zero exit code.
func (e *testEnv) mustRun(args ...string) runResult {
	e.t.Helper()
	res := e.run(args...)
	require.NoError(e.t, res.Err, "labels %s\nstderr: %s", strings.Join(args, " "), res.Stderr)
	return res
}
