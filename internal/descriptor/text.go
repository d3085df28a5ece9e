package descriptor

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// MissingFileError reports a file the descriptor needs that does not exist.
type MissingFileError struct {
	Path string
	Err  error
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("required file %s is missing", e.Path)
}

func (e *MissingFileError) Unwrap() error { return e.Err }

// ReadText reads a whole UTF-8 file. A leading byte order mark is dropped and
// line endings are normalized to "\n".
func ReadText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &MissingFileError{Path: path, Err: err}
		}
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(f, dec))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	s := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n"), nil
}

// ReadRequirements reads a requirements file and parses it with
// ParseRequirements.
func ReadRequirements(path string) ([]string, error) {
	text, err := ReadText(path)
	if err != nil {
		return nil, err
	}
	return ParseRequirements(text), nil
}

// ParseRequirements splits text into lines and drops those starting with
// "#". Blank lines are kept as empty entries. A final terminator does not
// produce a trailing empty entry. The result is never nil.
func ParseRequirements(text string) []string {
	reqs := []string{}
	for _, line := range splitLines(text) {
		if strings.HasPrefix(line, "#") {
			continue
		}
		reqs = append(reqs, line)
	}
	return reqs
}

// splitLines breaks s on every line boundary Python's str.splitlines
// recognizes, with "\r\n" counted once.
func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isLineBreak(r) {
			i += size
			continue
		}
		lines = append(lines, s[start:i])
		i += size
		if r == '\r' && i < len(s) && s[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
