// Package environment captures the process facts the configuration pipeline
// depends on: CI and runner flags, Sauce Labs credentials, the CI job number,
// the invocation arguments and the host platform.
//
// A Snapshot is taken once at startup and passed by value to each stage, so
// the stages never read global process state and can be tested with FromMap.
//
// Values can additionally come from dotenv files (via github.com/joho/godotenv);
// the real process environment always takes precedence over file values.
package environment
