package driver

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pyskel/pyskel/internal/logging"
)

// Options configures Run.
type Options struct {
	StartOptions
	// Timeout is the wait budget for each expected prompt.
	Timeout time.Duration
	// Interact hands the terminal to the child once the script is done.
	// Otherwise Run waits for the child to exit on its own.
	Interact bool
	Stdin    io.Reader
	Stdout   io.Writer
}

// Run spawns argv and plays script against it. The first step whose pattern
// does not appear aborts the whole run with a *MatchError before its response
// is sent; nothing is retried.
func Run(ctx context.Context, argv []string, script Script, opts Options) error {
	patterns, err := script.compile()
	if err != nil {
		return err
	}
	if opts.Timeout <= 0 {
		return fmt.Errorf("invalid prompt timeout %v", opts.Timeout)
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
		opts.Logger = log
	}

	s, err := Start(ctx, argv, opts.StartOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	for i, step := range script.Steps {
		log.Debug("expecting prompt", "step", i+1, "pattern", step.Expect)
		if err := s.Expect(ctx, patterns[i], opts.Timeout); err != nil {
			return &MatchError{Step: i + 1, Pattern: step.Expect, Output: tail(s.Pending(), 200), Err: err}
		}
		log.Debug("sending response", "step", i+1, "response", step.Send)
		if err := s.SendLine(step.Send); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}

	if opts.Interact {
		stdin, stdout := opts.Stdin, opts.Stdout
		if stdin == nil {
			stdin = os.Stdin
		}
		if stdout == nil {
			stdout = os.Stdout
		}
		log.Debug("script complete, handing over terminal")
		return s.Interact(stdin, stdout)
	}

	if err := s.Wait(); err != nil {
		return fmt.Errorf("engine %s: %w", argv[0], err)
	}
	return nil
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
