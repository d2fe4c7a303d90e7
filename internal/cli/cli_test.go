package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/labels/internal/filter"
	"github.com/mesh-intelligence/labels/pkg/types"
)

func TestNewAppLogsNothingBeforeSetup(t *testing.T) {
	a := newApp()
	assert.Equal(t, zerolog.Disabled, a.log.GetLevel())
	assert.NotNil(t, a.generator(a.log))
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)
	res := env.mustRun("version")
	assert.Contains(t, res.Stdout, "labels v"+Version)
	assert.Contains(t, res.Stdout, modulePath)
}

func TestGenerate(t *testing.T) {
	env := newTestEnv(t)
	input := env.writeInput("addresses.csv", testCSV)
	output := env.path("labels.pdf")

	res := env.mustRun("generate", "-i", input, "-o", output, "-f", "walker")

	assert.Contains(t, res.Stdout, "2 label(s) written to "+output+" on 1 page(s)")
	assert.Contains(t, res.Stderr, "matched name")
	assert.FileExists(t, output)
}

func TestGenerateIsDefaultCommand(t *testing.T) {
	env := newTestEnv(t)
	input := env.writeInput("addresses.csv", testCSV)
	output := env.path("labels.pdf")

	res := env.mustRun("-i", input, "-o", output, "-f", "*", "--log-level", "error")

	assert.Contains(t, res.Stdout, "3 label(s)")
	assert.Empty(t, res.Stderr, "warnings are below the error level")
}

func TestGenerateWarnsAboutBlankRows(t *testing.T) {
	env := newTestEnv(t)
	input := env.writeInput("addresses.csv", testCSV)

	res := env.mustRun("generate", "-i", input, "-o", env.path("out.pdf"), "--log-format", "json")
	assert.Contains(t, res.Stderr, `"row":3`)
	assert.Contains(t, res.Stderr, "skipping blank row")
}

func TestGenerateReturnLabels(t *testing.T) {
	env := newTestEnv(t)
	input := env.writeInput("addresses.csv", testCSV)

	res := env.mustRun("generate", "-i", input, "-o", env.path("out.pdf"),
		"-f", "walker, 2", "-n", "john walker", "-r", "-b", "1")

	// Blank, Fry, Mary Walker, then two return labels.
	assert.Contains(t, res.Stdout, "5 label(s)")
}

func TestGenerateNoHeader(t *testing.T) {
	env := newTestEnv(t)
	input := env.writeInput("addresses.csv", "Walker,John,,,1 Main St,,Springfield,IL,62701,\n")

	res := env.mustRun("generate", "-i", input, "-o", env.path("out.pdf"), "--no-header", "-f", "1")
	assert.Contains(t, res.Stdout, "1 label(s)")
}

func TestExitCodes(t *testing.T) {
	env := newTestEnv(t)
	input := env.writeInput("addresses.csv", testCSV)
	out := env.path("out.pdf")

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  error
	}{
		{"syntax error", []string{"-i", input, "-o", out, "-f", "2-"}, exitUserError, filter.ErrSyntax},
		{"range error", []string{"-i", input, "-o", out, "-f", "0"}, exitUserError, filter.ErrRange},
		{"ambiguous name", []string{"-i", input, "-o", out, "-n", "walker"}, exitUserError, filter.ErrNameResolution},
		{"ret without name", []string{"-i", input, "-o", out, "-r"}, exitUserError, types.ErrRetNeedsName},
		{"missing input", []string{"-i", env.path("nope.csv"), "-o", out}, exitUserError, os.ErrNotExist},
		{"unsupported input", []string{"-i", env.path("book.ods"), "-o", out}, exitUserError, types.ErrUnsupportedFormat},
		{"unknown flag", []string{"--bogus"}, exitUserError, errUsage},
		{"unexpected argument", []string{"extra"}, exitUserError, errUsage},
		{"output is a directory", []string{"-i", input, "-o", env.WorkDir}, exitSysError, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := env.run(append([]string{"generate"}, tt.args...)...)
			require.Error(t, res.Err)
			assert.Equal(t, tt.wantCode, res.ExitCode, res.Err.Error())
			if tt.wantErr != nil {
				assert.ErrorIs(t, res.Err, tt.wantErr)
			}
		})
	}
}

func TestExitCodeMapping(t *testing.T) {
	assert.Equal(t, exitSuccess, exitCode(nil))
	assert.Equal(t, exitUserError, exitCode(fmt.Errorf("wrapped: %w", filter.ErrRange)))
	assert.Equal(t, exitSysError, exitCode(errors.New("disk on fire")))
	assert.Equal(t, exitSysError, exitCode(fmt.Errorf("%w: backend down", filter.ErrLookup)))
}

func TestSelect(t *testing.T) {
	env := newTestEnv(t)
	input := env.writeInput("addresses.csv", testCSV)

	t.Run("text", func(t *testing.T) {
		res := env.mustRun("select", "-i", input, "-f", "*, !2", "-n", "mary")
		assert.Contains(t, res.Stdout, "rows (2 of 1-4): 1, 3")
		assert.Contains(t, res.Stdout, "self: 4")
	})

	t.Run("json", func(t *testing.T) {
		res := env.mustRun("select", "-i", input, "-f", "cindi bob", "--json")
		var got selectOutput
		require.NoError(t, json.Unmarshal([]byte(res.Stdout), &got))
		assert.Equal(t, []int{2}, got.Rows)
		assert.Equal(t, types.Bounds{Min: 1, Max: 4}, got.Bounds)
		assert.Nil(t, got.Self)
	})

	t.Run("empty selection", func(t *testing.T) {
		res := env.mustRun("select", "-i", input, "-f", "nobody")
		assert.Contains(t, res.Stdout, "rows (0 of 1-4): none")
	})
}

func TestSaveAndConfig(t *testing.T) {
	env := newTestEnv(t)
	input := env.writeInput("addresses.csv", testCSV)
	output := env.path("saved.pdf")

	env.mustRun("generate", "-i", input, "-o", output, "-f", "fry", "-t", "--save")

	data, err := os.ReadFile(filepath.Join(env.ConfigDir, "config.yaml"))
	require.NoError(t, err)
	var saved types.Options
	require.NoError(t, yaml.Unmarshal(data, &saved))
	assert.Equal(t, input, saved.Input)
	assert.Equal(t, "fry", saved.Filter)
	assert.True(t, saved.Test)
	assert.True(t, saved.Header)

	// Saved options apply when no flag is given.
	require.NoError(t, os.Remove(output))
	res := env.mustRun("generate")
	assert.Contains(t, res.Stdout, "1 label(s) written to "+output)

	// Flags still win over config.yaml.
	res = env.mustRun("select", "-f", "walker")
	assert.Contains(t, res.Stdout, "rows (2 of 1-4)")

	res = env.mustRun("config")
	assert.Contains(t, res.Stdout, "filter: fry")
	assert.Contains(t, res.Stdout, "test: true")
}

func TestConfigDefaults(t *testing.T) {
	env := newTestEnv(t)
	res := env.mustRun("config")

	var got types.Options
	require.NoError(t, yaml.Unmarshal([]byte(res.Stdout), &got))
	assert.Equal(t, types.DefaultOptions(), got)
}

func TestConfigFromEnvironment(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("LABELS_FILTER", "1-2")

	res := env.mustRun("config")
	assert.Contains(t, res.Stdout, "filter: 1-2")
}

func TestInit(t *testing.T) {
	env := newTestEnv(t)

	res := env.mustRun("init")
	assert.Contains(t, res.Stdout, filepath.Join(env.ConfigDir, "config.yaml"))
	assert.FileExists(t, filepath.Join(env.ConfigDir, "config.yaml"))
	assert.FileExists(t, filepath.Join(env.DataDir, "addresses.db"))

	// A second init keeps the existing config.
	path := filepath.Join(env.ConfigDir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("filter: walker\n"), 0o644))
	env.mustRun("init")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "filter: walker\n", string(data))
}

func TestImportThenGenerateFromAddressBook(t *testing.T) {
	env := newTestEnv(t)
	input := env.writeInput("addresses.csv", testCSV)

	res := env.mustRun("import", input)
	dbPath := filepath.Join(env.DataDir, "addresses.db")
	assert.Contains(t, res.Stdout, "imported 4 record(s) into "+dbPath)

	res = env.mustRun("select", "-i", dbPath, "-f", "walker, !mary")
	assert.Contains(t, res.Stdout, "rows (1 of 1-4): 1")

	res = env.mustRun("generate", "-i", dbPath, "-o", env.path("book.pdf"), "-f", "walker")
	assert.Contains(t, res.Stdout, "2 label(s)")
}

func TestImportCustomDB(t *testing.T) {
	env := newTestEnv(t)
	input := env.writeInput("addresses.csv", testCSV)
	dbPath := env.path("custom.db")

	env.mustRun("import", input, "--db", dbPath)
	assert.FileExists(t, dbPath)

	res := env.run("import")
	assert.Equal(t, exitUserError, res.ExitCode)
}
