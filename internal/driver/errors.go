package driver

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrTimeout is returned when the child produced no matching output within
// the wait budget of a step.
var ErrTimeout = errors.New("timed out waiting for prompt")

// MatchError reports the step at which a scripted session was aborted.
type MatchError struct {
	Step    int    // 1-based step number
	Pattern string // the pattern that never matched
	Output  string // tail of the output received since the previous match
	Err     error  // ErrTimeout, io.EOF, or a context error
}

func (e *MatchError) Error() string {
	reason := e.Err.Error()
	if errors.Is(e.Err, io.EOF) {
		reason = "engine exited before the prompt appeared"
	}
	msg := fmt.Sprintf("step %d: waiting for %q: %s", e.Step, e.Pattern, reason)
	if tail := strings.TrimSpace(e.Output); tail != "" {
		msg += "\nlast output: " + tail
	}
	return msg
}

func (e *MatchError) Unwrap() error { return e.Err }
