package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"sync"
	"syscall"
	"time"

	"github.com/creack/pty"
	"github.com/pyskel/pyskel/internal/logging"
	"golang.org/x/term"
)

const readChunkSize = 4096

// waitDelay bounds how long Wait keeps reading output after the child is gone
// while a descendant still holds the pipe open.
const waitDelay = 2 * time.Second

// StartOptions configures how the child process is spawned.
type StartOptions struct {
	// UsePTY attaches the child to a pseudo-terminal. Without it the child
	// gets plain pipes with stderr merged into stdout.
	UsePTY bool
	Dir    string
	// Env is appended to the current process environment.
	Env []string
	// Transcript, if set, receives a copy of the output the script consumed.
	// Output still pending at handoff goes to Interact's stdout only, so the
	// two may share a writer.
	Transcript io.Writer
	Logger     *logging.Logger
}

// Session is a running child process plus the output it has produced that no
// pattern has consumed yet.
type Session struct {
	cmd *exec.Cmd
	pty *os.File
	in  io.Writer

	chunks  chan []byte
	readErr error
	buf     []byte
	// buf[:recorded] has already been copied to the transcript.
	recorded int

	transcript io.Writer
	log        *logging.Logger

	done      chan struct{}
	waitErr   error
	closeOnce sync.Once
	closeErr  error
}

// Start spawns argv and begins collecting its output.
func Start(ctx context.Context, argv []string, opts StartOptions) (*Session, error) {
	if len(argv) == 0 {
		return nil, errors.New("no command to run")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = opts.Dir
	cmd.Env = append(os.Environ(), opts.Env...)
	cmd.Cancel = func() error { return killProcessGroup(cmd) }
	cmd.WaitDelay = waitDelay

	s := &Session{
		cmd:        cmd,
		chunks:     make(chan []byte, 16),
		transcript: opts.Transcript,
		log:        opts.Logger,
		done:       make(chan struct{}),
	}
	if s.log == nil {
		s.log = logging.Nop()
	}

	var out io.Reader
	if opts.UsePTY {
		f, err := pty.Start(cmd)
		if err != nil {
			return nil, fmt.Errorf("starting %s on a pty: %w", argv[0], err)
		}
		s.pty = f
		s.in = f
		out = f
		go s.wait(nil)
	} else {
		stdin, err := cmd.StdinPipe()
		if err != nil {
			return nil, fmt.Errorf("creating stdin pipe: %w", err)
		}
		setProcessGroup(cmd)
		pr, pw := io.Pipe()
		cmd.Stdout = pw
		cmd.Stderr = pw
		if err := cmd.Start(); err != nil {
			return nil, fmt.Errorf("starting %s: %w", argv[0], err)
		}
		s.in = stdin
		out = pr
		go s.wait(pw)
	}

	s.log.Debug("engine started", "argv", argv, "pid", cmd.Process.Pid, "pty", opts.UsePTY)
	go s.readLoop(out)
	return s, nil
}

// newSession wraps an already-connected reader and writer. It has no process
// attached; done is closed once r is exhausted.
func newSession(r io.Reader, w io.Writer) *Session {
	s := &Session{
		in:     w,
		chunks: make(chan []byte, 16),
		log:    logging.Nop(),
		done:   make(chan struct{}),
	}
	go func() {
		s.readLoop(r)
		close(s.done)
	}()
	return s
}

func (s *Session) wait(pw *io.PipeWriter) {
	s.waitErr = s.cmd.Wait()
	// The child exited cleanly but left a descendant holding its output open.
	if errors.Is(s.waitErr, exec.ErrWaitDelay) {
		s.log.Debug("engine output still held open after exit", "delay", waitDelay)
		s.waitErr = nil
	}
	if pw != nil {
		pw.Close()
	}
	close(s.done)
}

func (s *Session) readLoop(r io.Reader) {
	defer close(s.chunks)
	buf := make([]byte, readChunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			s.chunks <- chunk
		}
		if err != nil {
			if !isClosed(err) {
				s.readErr = err
			}
			return
		}
	}
}

// isClosed reports whether err just means the child's side went away. A pty
// master returns EIO once the last slave descriptor is closed.
func isClosed(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, os.ErrClosed) ||
		errors.Is(err, syscall.EIO)
}

// Expect blocks until the pending output matches re, then discards the output
// up to the end of the match. It fails with ErrTimeout after timeout, with
// io.EOF once the child's output is closed, or with the context's error.
func (s *Session) Expect(ctx context.Context, re *regexp.Regexp, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		if loc := re.FindIndex(s.buf); loc != nil {
			s.recordThrough(loc[1])
			s.buf = append([]byte(nil), s.buf[loc[1]:]...)
			s.recorded -= loc[1]
			return nil
		}

		select {
		case chunk, ok := <-s.chunks:
			if !ok {
				s.recordThrough(len(s.buf))
				if err := ctx.Err(); err != nil {
					return err
				}
				if s.readErr != nil {
					return fmt.Errorf("reading engine output: %w", s.readErr)
				}
				return io.EOF
			}
			s.buf = append(s.buf, chunk...)
		case <-timer.C:
			s.recordThrough(len(s.buf))
			return ErrTimeout
		case <-ctx.Done():
			s.recordThrough(len(s.buf))
			return ctx.Err()
		}
	}
}

// SendLine writes line followed by a newline to the child's input.
func (s *Session) SendLine(line string) error {
	if _, err := io.WriteString(s.in, line+"\n"); err != nil {
		return fmt.Errorf("writing to engine: %w", err)
	}
	return nil
}

// Pending returns the output received since the last match.
func (s *Session) Pending() string {
	return string(s.buf)
}

// Interact bridges stdin to the child and the child's output to stdout until
// the child exits. Output already buffered is written first. A terminal stdin
// is put into raw mode for the duration so keystrokes reach the child as-is.
func (s *Session) Interact(stdin io.Reader, stdout io.Writer) error {
	if len(s.buf) > 0 {
		if _, err := stdout.Write(s.buf); err != nil {
			return fmt.Errorf("writing engine output: %w", err)
		}
		s.buf = nil
		s.recorded = 0
	}

	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		state, err := term.MakeRaw(int(f.Fd()))
		if err != nil {
			return fmt.Errorf("switching terminal to raw mode: %w", err)
		}
		defer term.Restore(int(f.Fd()), state)

		if s.pty != nil {
			stop := watchResize(f, s.pty)
			defer stop()
		}
	}

	go func() {
		_, _ = io.Copy(s.in, stdin)
		// Pass end of input on to a piped child; a pty child sees the
		// terminal's own EOF character instead.
		if c, ok := s.in.(io.Closer); ok && s.pty == nil {
			_ = c.Close()
		}
	}()

	for chunk := range s.chunks {
		if _, err := stdout.Write(chunk); err != nil {
			return fmt.Errorf("writing engine output: %w", err)
		}
	}
	<-s.done

	if code := s.ExitCode(); code > 0 {
		s.log.Warn("engine exited with non-zero status", "code", code)
	}
	return nil
}

// Wait consumes the remaining output and blocks until the child exits.
func (s *Session) Wait() error {
	s.recordThrough(len(s.buf))
	for chunk := range s.chunks {
		s.record(chunk)
	}
	<-s.done
	if s.cmd == nil {
		return nil
	}
	return s.waitErr
}

// ExitCode returns the child's exit status, or -1 while it is still running.
func (s *Session) ExitCode() int {
	select {
	case <-s.done:
	default:
		return -1
	}
	if s.cmd == nil || s.cmd.ProcessState == nil {
		return -1
	}
	return s.cmd.ProcessState.ExitCode()
}

// Close kills the child and its process group if it is still running and
// releases its terminal.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		select {
		case <-s.done:
		default:
			if s.cmd != nil {
				_ = killProcessGroup(s.cmd)
			}
		}
		for range s.chunks {
		}
		<-s.done
		if s.pty != nil {
			s.closeErr = s.pty.Close()
		}
	})
	return s.closeErr
}

func (s *Session) record(chunk []byte) {
	if s.transcript != nil {
		_, _ = s.transcript.Write(chunk)
	}
}

// recordThrough copies buf[recorded:end] to the transcript.
func (s *Session) recordThrough(end int) {
	if end > s.recorded {
		s.record(s.buf[s.recorded:end])
		s.recorded = end
	}
}
