package environment

import (
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names read by karmaconf.
const (
	VarCI              = "CI"
	VarKarma           = "KARMA"
	VarSauce           = "SAUCE"
	VarSauceUsername   = "SAUCE_USERNAME"
	VarSauceAccessKey  = "SAUCE_ACCESS_KEY"
	VarTravisJobNumber = "TRAVIS_JOB_NUMBER"
	VarGitHubRunNumber = "GITHUB_RUN_NUMBER"
	VarBuildNumber     = "BUILD_NUMBER"
)

// jobNumberVars lists the CI job-number sources in priority order.
var jobNumberVars = []string{VarTravisJobNumber, VarGitHubRunNumber, VarBuildNumber}

// Snapshot is an immutable view of everything the configuration pipeline
// reads from the process: environment flags, invocation arguments and the
// host platform. Stages receive a Snapshot instead of touching os.Getenv.
type Snapshot struct {
	CI           bool
	KarmaEnabled bool

	SauceEnabled   bool
	SauceUsername  string
	SauceAccessKey string

	// JobNumber is empty when no CI job-number variable is set.
	JobNumber string

	Args     []string
	Platform string

	// Dotenv holds the dotenv values the process environment does not set.
	// Child processes need them to see the same environment the pipeline saw.
	Dotenv map[string]string
}

// DotenvEnviron returns Dotenv as sorted KEY=value pairs.
func (s Snapshot) DotenvEnviron() []string {
	if len(s.Dotenv) == 0 {
		return nil
	}
	env := make([]string, 0, len(s.Dotenv))
	for k, v := range s.Dotenv {
		env = append(env, k+"="+v)
	}
	sort.Strings(env)
	return env
}

// SauceCredentialsPresent reports whether every value the remote lab needs is set.
func (s Snapshot) SauceCredentialsPresent() bool {
	return s.SauceEnabled && s.SauceUsername != "" && s.SauceAccessKey != ""
}

// FromMap builds a Snapshot from an explicit variable map.
// Boolean flags are true only for the exact string "true".
func FromMap(vars map[string]string, args []string, platform string) Snapshot {
	snap := Snapshot{
		CI:             vars[VarCI] == "true",
		KarmaEnabled:   vars[VarKarma] == "true",
		SauceEnabled:   vars[VarSauce] == "true",
		SauceUsername:  vars[VarSauceUsername],
		SauceAccessKey: vars[VarSauceAccessKey],
		Platform:       platform,
	}
	for _, name := range jobNumberVars {
		if v := vars[name]; v != "" {
			snap.JobNumber = v
			break
		}
	}
	if len(args) > 0 {
		snap.Args = append([]string(nil), args...)
	}
	return snap
}

// For mocking in tests
var osEnviron = os.Environ

// Load reads the process environment, optionally layered over the values of
// dotenv files. Variables already present in the process win over the files,
// which matches godotenv.Load semantics without mutating the process.
// Missing dotenv files are an error only when required is true.
func Load(args []string, platform string, dotenvFiles []string, required bool) (Snapshot, error) {
	vars := make(map[string]string)
	fromFiles := make(map[string]string)

	for _, file := range dotenvFiles {
		if file == "" {
			continue
		}
		if _, err := os.Stat(file); os.IsNotExist(err) && !required {
			continue
		}
		fileVars, err := godotenv.Read(file)
		if err != nil {
			return Snapshot{}, fmt.Errorf("failed to read env file %s: %w", file, err)
		}
		for k, v := range fileVars {
			vars[k] = v
			fromFiles[k] = v
		}
	}

	for _, kv := range osEnviron() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		vars[k] = v
		delete(fromFiles, k)
	}

	if platform == "" {
		platform = runtime.GOOS
	}

	snap := FromMap(vars, args, platform)
	if len(fromFiles) > 0 {
		snap.Dotenv = fromFiles
	}
	return snap, nil
}
