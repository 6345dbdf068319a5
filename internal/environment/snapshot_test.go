package environment

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMap_Flags(t *testing.T) {
	tests := []struct {
		name  string
		vars  map[string]string
		ci    bool
		karma bool
		sauce bool
	}{
		{"empty", map[string]string{}, false, false, false},
		{"exact true", map[string]string{"CI": "true", "KARMA": "true", "SAUCE": "true"}, true, true, true},
		{"not exact", map[string]string{"CI": "1", "KARMA": "TRUE", "SAUCE": "yes"}, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := FromMap(tt.vars, nil, "linux")
			assert.Equal(t, tt.ci, snap.CI)
			assert.Equal(t, tt.karma, snap.KarmaEnabled)
			assert.Equal(t, tt.sauce, snap.SauceEnabled)
		})
	}
}

func TestFromMap_JobNumberFallback(t *testing.T) {
	snap := FromMap(map[string]string{"GITHUB_RUN_NUMBER": "77", "BUILD_NUMBER": "3"}, nil, "")
	assert.Equal(t, "77", snap.JobNumber)

	snap = FromMap(map[string]string{"TRAVIS_JOB_NUMBER": "12.3", "GITHUB_RUN_NUMBER": "77"}, nil, "")
	assert.Equal(t, "12.3", snap.JobNumber)

	snap = FromMap(map[string]string{}, nil, "")
	assert.Empty(t, snap.JobNumber)
}

func TestFromMap_CopiesArgs(t *testing.T) {
	args := []string{"start", "--coverage"}
	snap := FromMap(nil, args, "darwin")
	args[1] = "--changed"

	assert.Equal(t, []string{"start", "--coverage"}, snap.Args)
}

func TestSauceCredentialsPresent(t *testing.T) {
	full := map[string]string{"SAUCE": "true", "SAUCE_USERNAME": "omni", "SAUCE_ACCESS_KEY": "secret"}
	assert.True(t, FromMap(full, nil, "").SauceCredentialsPresent())

	for _, missing := range []string{"SAUCE", "SAUCE_USERNAME", "SAUCE_ACCESS_KEY"} {
		t.Run("missing "+missing, func(t *testing.T) {
			vars := map[string]string{}
			for k, v := range full {
				vars[k] = v
			}
			delete(vars, missing)
			assert.False(t, FromMap(vars, nil, "").SauceCredentialsPresent())
		})
	}
}

func TestLoad_ProcessEnvWinsOverDotenv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SAUCE=true\nSAUCE_USERNAME=from-file\nSAUCE_ACCESS_KEY=key\n"), 0644))

	original := osEnviron
	defer func() { osEnviron = original }()
	osEnviron = func() []string {
		return []string{"SAUCE_USERNAME=from-process", "CI=true"}
	}

	snap, err := Load([]string{"--coverage"}, "windows", []string{envFile}, true)
	require.NoError(t, err)

	assert.True(t, snap.CI)
	assert.True(t, snap.SauceEnabled)
	assert.Equal(t, "from-process", snap.SauceUsername)
	assert.Equal(t, "key", snap.SauceAccessKey)
	assert.Equal(t, "windows", snap.Platform)
	assert.Equal(t, []string{"--coverage"}, snap.Args)
}

func TestLoad_KeepsFileOnlyVariables(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SAUCE=true\nSAUCE_USERNAME=from-file\nSAUCE_ACCESS_KEY=key\n"), 0644))

	original := osEnviron
	defer func() { osEnviron = original }()
	osEnviron = func() []string {
		return []string{"SAUCE_USERNAME=from-process", "SAUCE="}
	}

	snap, err := Load(nil, "linux", []string{envFile}, true)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"SAUCE_ACCESS_KEY": "key"}, snap.Dotenv)
	assert.Equal(t, []string{"SAUCE_ACCESS_KEY=key"}, snap.DotenvEnviron())
	assert.False(t, snap.SauceEnabled, "an empty process value still wins over the file")
}

func TestLoad_NoDotenvVariables(t *testing.T) {
	original := osEnviron
	defer func() { osEnviron = original }()
	osEnviron = func() []string { return []string{"CI=true"} }

	snap, err := Load(nil, "linux", nil, false)
	require.NoError(t, err)
	assert.Nil(t, snap.Dotenv)
	assert.Nil(t, snap.DotenvEnviron())
}

func TestDotenvEnviron_Sorted(t *testing.T) {
	snap := Snapshot{Dotenv: map[string]string{"SAUCE_USERNAME": "omni", "SAUCE": "true", "BUILD_NUMBER": "7"}}
	assert.Equal(t, []string{"BUILD_NUMBER=7", "SAUCE=true", "SAUCE_USERNAME=omni"}, snap.DotenvEnviron())
}

func TestLoad_MissingDotenv(t *testing.T) {
	original := osEnviron
	defer func() { osEnviron = original }()
	osEnviron = func() []string { return nil }

	missing := filepath.Join(t.TempDir(), "nope.env")

	snap, err := Load(nil, "", []string{missing}, false)
	require.NoError(t, err)
	assert.Equal(t, runtime.GOOS, snap.Platform)

	_, err = Load(nil, "", []string{missing}, true)
	assert.Error(t, err)
}
