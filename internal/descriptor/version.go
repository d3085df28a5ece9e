package descriptor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// VersionSource determines the version of the project in dir.
type VersionSource interface {
	Version(ctx context.Context, dir string) (string, error)
}

// StaticVersion always reports itself.
type StaticVersion string

// Version implements VersionSource.
func (s StaticVersion) Version(context.Context, string) (string, error) {
	return string(s), nil
}

// UnknownVersion is reported outside a git repository.
const UnknownVersion = "0+unknown"

// GitVersion derives a PEP 440 version from `git describe`.
type GitVersion struct {
	// Git is the git binary; "git" when empty.
	Git string
	// TagPrefix is stripped from tag names; "v" when empty.
	TagPrefix string
}

// Version implements VersionSource. It never fails on a missing repository or
// git binary; both yield UnknownVersion.
func (g GitVersion) Version(ctx context.Context, dir string) (string, error) {
	bin := g.Git
	if bin == "" {
		bin = "git"
	}
	if _, err := exec.LookPath(bin); err != nil {
		return UnknownVersion, nil
	}

	out, err := runGit(ctx, bin, dir, "describe", "--tags", "--dirty", "--always", "--long")
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("git describe: %w", ctx.Err())
		}
		return UnknownVersion, nil
	}

	distance := 0
	if !describeRe.MatchString(strings.TrimSuffix(out, "-dirty")) {
		count, err := runGit(ctx, bin, dir, "rev-list", "--count", "HEAD")
		if err != nil {
			if ctx.Err() != nil {
				return "", fmt.Errorf("git rev-list: %w", ctx.Err())
			}
			return UnknownVersion, nil
		}
		if distance, err = strconv.Atoi(count); err != nil {
			return "", fmt.Errorf("git rev-list: unexpected count %q", count)
		}
	}

	prefix := g.TagPrefix
	if prefix == "" {
		prefix = "v"
	}
	return RenderDescribe(out, prefix, distance), nil
}

func runGit(ctx context.Context, bin, dir string, args ...string) (string, error) {
	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(stdout.String()), nil
}

var describeRe = regexp.MustCompile(`^(.+)-(\d+)-g([0-9a-f]+)$`)

// RenderDescribe turns `git describe --tags --dirty --always --long` output
// into a PEP 440 version. untagged is the commit count of HEAD and is used
// only when out carries no tag:
//
//	v1.2-0-gabc1234        → 1.2
//	v1.2-3-gabc1234-dirty  → 1.2+3.gabc1234.dirty
//	abc1234 (untagged=5)   → 0+untagged.5.gabc1234
func RenderDescribe(out, tagPrefix string, untagged int) string {
	if out == "" {
		return UnknownVersion
	}
	dirty := strings.HasSuffix(out, "-dirty")
	out = strings.TrimSuffix(out, "-dirty")

	m := describeRe.FindStringSubmatch(out)
	if m == nil {
		v := fmt.Sprintf("0+untagged.%d.g%s", untagged, out)
		if dirty {
			v += ".dirty"
		}
		return v
	}

	tag, distance, hex := strings.TrimPrefix(m[1], tagPrefix), m[2], m[3]
	if distance == "0" && !dirty {
		return tag
	}
	v := tag + "+" + distance + ".g" + hex
	if dirty {
		v += ".dirty"
	}
	return v
}
