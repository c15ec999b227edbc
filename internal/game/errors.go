package game

import (
	"fmt"

	"github.com/pkg/errors"
)

// ValidationError rejects a player action without mutating any state. It is
// recoverable: the caller may retry with different input.
type ValidationError struct {
	PlayerID string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid action by %s: %s", e.PlayerID, e.Reason)
}

func invalidAction(playerID, format string, args ...interface{}) error {
	return &ValidationError{PlayerID: playerID, Reason: fmt.Sprintf(format, args...)}
}

// PlayerNotFoundError is returned when an action names an unknown player.
type PlayerNotFoundError struct {
	PlayerID string
}

func (e *PlayerNotFoundError) Error() string {
	return fmt.Sprintf("player %s not found", e.PlayerID)
}

// FatalError marks an invariant violation: the engine's own state is
// corrupt (exhausted deck mid-hand, duplicate card, pot that does not
// reconcile). The hand must be abandoned; the engine refuses further
// operations once one has occurred.
type FatalError struct {
	err error
}

func fatal(err error, msg string) *FatalError {
	return &FatalError{err: errors.Wrap(err, msg)}
}

func (e *FatalError) Error() string {
	return "fatal engine error: " + e.err.Error()
}

func (e *FatalError) Unwrap() error {
	return e.err
}

// IsFatal reports whether err is (or wraps) a FatalError.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}
