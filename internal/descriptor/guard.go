package descriptor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// MinimumRuntime is the oldest interpreter series a generated project
// supports.
var MinimumRuntime = semver.MustParse("3.6")

// DefaultPython is the interpreter DetectRuntime asks when none is given.
const DefaultPython = "python3"

// UnsupportedRuntimeError reports an interpreter older than Need.
type UnsupportedRuntimeError struct {
	Have    *semver.Version
	Need    *semver.Version
	Package string
}

func (e *UnsupportedRuntimeError) Error() string {
	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s does not support\n", e.Package)
	fmt.Fprintf(&b, "Python %s.\n", unsupportedSeries(e.Need))
	fmt.Fprintf(&b, "Python %d.%d and above is required. Check your Python version like so:\n\n", e.Need.Major(), e.Need.Minor())
	b.WriteString("python --version\n\n")
	b.WriteString("This may be due to an out-of-date pip. Make sure you have pip >= 9.0.1.\n")
	b.WriteString("Upgrade pip like so:\n\n")
	b.WriteString("pip install --upgrade pip\n")
	return b.String()
}

// unsupportedSeries lists every release series below need, e.g.
// "2.x, 3.0, 3.1, 3.2, 3.3, 3.4, or 3.5".
func unsupportedSeries(need *semver.Version) string {
	var series []string
	for major := uint64(2); major < need.Major(); major++ {
		series = append(series, fmt.Sprintf("%d.x", major))
	}
	for minor := uint64(0); minor < need.Minor(); minor++ {
		series = append(series, fmt.Sprintf("%d.%d", need.Major(), minor))
	}
	switch len(series) {
	case 0:
		return "below " + need.String()
	case 1:
		return series[0]
	}
	return strings.Join(series[:len(series)-1], ", ") + ", or " + series[len(series)-1]
}

// CheckRuntime returns an *UnsupportedRuntimeError when have's major.minor
// is below MinimumRuntime. Patch level and pre-release tags are ignored.
func CheckRuntime(have *semver.Version, pkg string) error {
	if have == nil {
		return fmt.Errorf("interpreter version is required")
	}
	series := semver.New(have.Major(), have.Minor(), 0, "", "")
	if series.LessThan(MinimumRuntime) {
		return &UnsupportedRuntimeError{Have: have, Need: MinimumRuntime, Package: pkg}
	}
	return nil
}

// DetectRuntime asks the python interpreter for its version.
func DetectRuntime(ctx context.Context, python string) (*semver.Version, error) {
	if python == "" {
		python = DefaultPython
	}
	bin, err := exec.LookPath(python)
	if err != nil {
		return nil, fmt.Errorf("finding interpreter %s: %w", python, err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "-c", "import sys; print('%d.%d.%d' % sys.version_info[:3])")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("running %s: %w: %s", python, err, strings.TrimSpace(stderr.String()))
	}

	return ParseRuntime(stdout.String())
}

// ParseRuntime parses an interpreter version such as "3.8.10" or
// "Python 3.6".
func ParseRuntime(s string) (*semver.Version, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "Python ")
	v, err := semver.NewVersion(s)
	if err != nil {
		return nil, fmt.Errorf("parsing interpreter version %q: %w", s, err)
	}
	return v, nil
}
