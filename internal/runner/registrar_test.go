package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"karmaconf/internal/config"
	"karmaconf/internal/karma"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *karma.Config {
	return &karma.Config{
		Frameworks: []string{"mocha"},
		Reporters:  []string{"verbose"},
		Files:      []karma.File{karma.Pattern("dist/omnipath.min.js")},
		Browsers:   []string{"ChromeHeadless"},
	}
}

func TestFileRegistrar_WritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "karma.generated.json")
	r := &FileRegistrar{Path: path, Format: config.OutputFormatTable}

	require.NoError(t, r.Register(context.Background(), testConfig()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []interface{}{"ChromeHeadless"}, decoded["browsers"])

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestFileRegistrar_WritesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "karma.generated.yaml")
	r := &FileRegistrar{Path: path, Format: config.OutputFormatYAML}

	require.NoError(t, r.Register(context.Background(), testConfig()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "- ChromeHeadless")
}

func TestFileRegistrar_MissingDirectory(t *testing.T) {
	r := &FileRegistrar{Path: filepath.Join(t.TempDir(), "missing", "out.json")}
	assert.Error(t, r.Register(context.Background(), testConfig()))
}

func TestCommandRegistrar_NoCommand(t *testing.T) {
	r := &CommandRegistrar{File: FileRegistrar{Path: filepath.Join(t.TempDir(), "out.json")}}
	assert.ErrorContains(t, r.Register(context.Background(), testConfig()), "no runner command")
}

// fakeCommand re-executes the test binary as a stand-in runner.
func fakeCommand(t *testing.T, mode string) func(ctx context.Context, name string, args ...string) *exec.Cmd {
	t.Helper()
	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cs := append([]string{"-test.run=TestHelperRunner", "--", name}, args...)
		cmd := exec.CommandContext(ctx, os.Args[0], cs...)
		cmd.Env = []string{"GO_WANT_HELPER_RUNNER=" + mode}
		return cmd
	}
}

func TestHelperRunner(t *testing.T) {
	mode := os.Getenv("GO_WANT_HELPER_RUNNER")
	if mode == "" {
		return
	}
	switch mode {
	case "echo":
		data, err := os.ReadFile(os.Getenv(ConfigEnvVar))
		if err != nil {
			os.Exit(2)
		}
		os.Stdout.Write(data)
		os.Exit(0)
	case "env":
		fmt.Fprintf(os.Stdout, "user=[%s] key=[%s] mode=[%s]\n",
			os.Getenv("SAUCE_USERNAME"), os.Getenv("SAUCE_ACCESS_KEY"), os.Getenv("GO_WANT_HELPER_RUNNER"))
		os.Exit(0)
	case "fail":
		os.Exit(3)
	}
}

func TestCommandRegistrar_PassesConfigPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("helper process relies on inherited env handling")
	}
	original := execCommandContext
	defer func() { execCommandContext = original }()
	execCommandContext = fakeCommand(t, "echo")

	var stdout bytes.Buffer
	r := &CommandRegistrar{
		File:    FileRegistrar{Path: filepath.Join(t.TempDir(), "karma.generated.json")},
		Command: []string{"karma", "start", "--coverage"},
		Stdout:  &stdout,
		Stderr:  &bytes.Buffer{},
	}

	require.NoError(t, r.Register(context.Background(), testConfig()))
	assert.True(t, strings.Contains(stdout.String(), `"ChromeHeadless"`), stdout.String())
}

func TestCommandRegistrar_PropagatesExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("helper process relies on inherited env handling")
	}
	original := execCommandContext
	defer func() { execCommandContext = original }()
	execCommandContext = fakeCommand(t, "fail")

	r := &CommandRegistrar{
		File:    FileRegistrar{Path: filepath.Join(t.TempDir(), "karma.generated.json")},
		Command: []string{"karma", "start"},
		Stdout:  &bytes.Buffer{},
		Stderr:  &bytes.Buffer{},
	}

	err := r.Register(context.Background(), testConfig())
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "got %v", err)
	assert.Equal(t, 3, exitErr.Code)
}

func TestCommandRegistrar_AddsEnvWithoutOverriding(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("helper process relies on inherited env handling")
	}
	original := execCommandContext
	defer func() { execCommandContext = original }()
	execCommandContext = fakeCommand(t, "env")

	var stdout bytes.Buffer
	r := &CommandRegistrar{
		File:    FileRegistrar{Path: filepath.Join(t.TempDir(), "karma.generated.json")},
		Command: []string{"karma", "start"},
		Env: []string{
			"SAUCE_USERNAME=jsdevtools",
			"SAUCE_ACCESS_KEY=secret",
			"GO_WANT_HELPER_RUNNER=fail",
		},
		Stdout: &stdout,
		Stderr: &bytes.Buffer{},
	}

	require.NoError(t, r.Register(context.Background(), testConfig()))
	assert.Equal(t, "user=[jsdevtools] key=[secret] mode=[env]\n", stdout.String())
}

func TestMergeEnv(t *testing.T) {
	base := []string{"PATH=/bin", "SAUCE="}
	merged := mergeEnv(base, []string{"SAUCE=true", "SAUCE_USERNAME=omni", "BROKEN", "SAUCE_USERNAME=again"})

	assert.Equal(t, []string{"PATH=/bin", "SAUCE=", "SAUCE_USERNAME=omni"}, merged)
	assert.Equal(t, []string{"PATH=/bin", "SAUCE="}, base, "base must not be modified")
	assert.Equal(t, base, mergeEnv(base, nil))
}
