package karma

import (
	"errors"

	"karmaconf/internal/environment"
	"karmaconf/pkg/logging"
)

// ErrRunnerDisabled is returned when running under CI without KARMA=true.
// It ends the run successfully: CI jobs that only test Node.js skip browsers.
var ErrRunnerDisabled = errors.New("karma is not enabled")

// Gate decides whether browser testing should proceed at all.
func Gate(snap environment.Snapshot) error {
	if snap.CI && !snap.KarmaEnabled {
		logging.Warn("Gate", "Karma is not enabled")
		return ErrRunnerDisabled
	}
	return nil
}
