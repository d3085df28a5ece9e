package descriptor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Masterminds/semver/v3"

	"github.com/pyskel/pyskel/internal/metadata"
)

func TestCheckRuntime(t *testing.T) {
	tests := []struct {
		have    string
		wantErr bool
	}{
		{"3.6.0", false},
		{"3.6.15", false},
		{"3.6.0-rc1", false},
		{"3.8.10", false},
		{"4.0.0", false},
		{"3.5.9", true},
		{"3.0.0", true},
		{"2.7.18", true},
	}
	for _, tt := range tests {
		t.Run(tt.have, func(t *testing.T) {
			err := CheckRuntime(semver.MustParse(tt.have), "example")
			if tt.wantErr {
				var ure *UnsupportedRuntimeError
				if !errors.As(err, &ure) {
					t.Fatalf("CheckRuntime(%s) = %v, want *UnsupportedRuntimeError", tt.have, err)
				}
				return
			}
			if err != nil {
				t.Errorf("CheckRuntime(%s) = %v, want nil", tt.have, err)
			}
		})
	}
}

func TestUnsupportedRuntimeError_Message(t *testing.T) {
	err := CheckRuntime(semver.MustParse("2.7.18"), "example-dist")
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.HasPrefix(msg, "\nexample-dist does not support\n") {
		t.Errorf("message should open with a blank line then the package:\n%q", msg)
	}
	for _, want := range []string{
		"Python 2.x, 3.0, 3.1, 3.2, 3.3, 3.4, or 3.5.\n",
		"Python 3.6 and above is required.",
		"python --version",
		"pip >= 9.0.1",
		"pip install --upgrade pip",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestBuild_GuardRunsBeforeReads(t *testing.T) {
	// The directory has no README or requirements; a read would fail with a
	// MissingFileError instead of the guard error.
	root := t.TempDir()
	_, err := Build(context.Background(), root, metadata.Project{PackageDistName: "example"}, Options{
		Runtime:   semver.MustParse("3.5.0"),
		Versioner: StaticVersion("1.0"),
	})

	var ure *UnsupportedRuntimeError
	if !errors.As(err, &ure) {
		t.Fatalf("Build error = %v, want *UnsupportedRuntimeError", err)
	}
	var mfe *MissingFileError
	if errors.As(err, &mfe) {
		t.Fatal("guard failure must not read files")
	}
}

func TestParseRuntime(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"3.8.10\n", "3.8.10"},
		{"Python 3.6", "3.6.0"},
		{"3.7", "3.7.0"},
	}
	for _, tt := range tests {
		v, err := ParseRuntime(tt.in)
		if err != nil {
			t.Fatalf("ParseRuntime(%q) error: %v", tt.in, err)
		}
		if v.String() != tt.want {
			t.Errorf("ParseRuntime(%q) = %s, want %s", tt.in, v, tt.want)
		}
	}

	if _, err := ParseRuntime("not a version"); err == nil {
		t.Error("expected error for garbage input")
	}
}
