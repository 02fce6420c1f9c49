package entities

import (
	"fmt"
	"time"
)

// ElementNotFoundError is returned when every lookup strategy for a
// control category has been attempted and none produced an element.
// The message carries the requested label text so a failed run can be
// diagnosed without re-running with verbose logging.
type ElementNotFoundError struct {
	Kind  ControlKind
	Label string
}

func (e *ElementNotFoundError) Error() string {
	return fmt.Sprintf("no %s element found for label %q", e.Kind, e.Label)
}

// TimeoutError is returned by boundary waits (page readiness, option
// population). It is distinct from ElementNotFoundError and is never
// produced or swallowed by the resolver's fallback chains.
type TimeoutError struct {
	Op      string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out after %s waiting for %s", e.Timeout, e.Op)
}
