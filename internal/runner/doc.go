// Package runner hands generated configurations to the Karma test runner.
//
// Karma itself is an external Node.js process. karmaconf never embeds it; the
// configuration crosses the boundary as a file:
//
//   - FileRegistrar writes the document (JSON by default) atomically
//   - CommandRegistrar writes the file, then runs the runner command with
//     KARMACONF_CONFIG set to the file's absolute path and propagates its
//     exit status as an *ExitError
package runner
