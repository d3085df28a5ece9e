//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/pyskel/pyskel/internal/driver"
)

// buildBinary compiles the pyskel command into a temp dir.
func buildBinary(t *testing.T) string {
	t.Helper()
	goBin := requireTool(t, "go")
	_, file, _, _ := runtime.Caller(0)
	root := filepath.Join(filepath.Dir(file), "..", "..")

	bin := filepath.Join(t.TempDir(), "pyskel")
	if runtime.GOOS == "windows" {
		bin += ".exe"
	}
	run(t, root, goBin, "build", "-o", bin, ".")
	return bin
}

// TestDriveGenerateOverPTY plays the built-in script against "pyskel
// generate" attached to a real pseudo-terminal.
func TestDriveGenerateOverPTY(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("pseudo-terminals are not available on windows")
	}
	env := setupTestEnv(t)
	bin := buildBinary(t)

	var transcript bytes.Buffer
	err := driver.Run(context.Background(),
		[]string{bin, "generate", "--output-dir", env.OutputDir},
		driver.ExampleScript(),
		driver.Options{
			StartOptions: driver.StartOptions{UsePTY: true, Transcript: &transcript},
			Timeout:      20 * time.Second,
		})
	if err != nil {
		t.Fatalf("Run: %v\n%s", err, transcript.String())
	}

	dir := filepath.Join(env.OutputDir, "example")
	assertFileExists(t, filepath.Join(dir, "example", "__init__.py"))
	assertFileContains(t, filepath.Join(dir, "setup.py"), "url='https://github.com/danielballan/example'")
	assertFileExists(t, filepath.Join(env.HomeDir, ".pyskel", "replay", "skeleton.yaml"))
}

func TestDriveGuardMessage(t *testing.T) {
	env := setupTestEnv(t)
	bin := buildBinary(t)
	dir := generateProject(t, env, exampleProject(t))

	cmd := exec.Command(bin, "descriptor", dir, "--python-version", "3.5.2",
		"--metadata", writeReplay(t, env))
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
		t.Fatalf("descriptor exit = %v, want status 1", err)
	}
	if !bytes.HasPrefix(stderr.Bytes(), []byte("\nexample does not support\nPython 2.x, 3.0, 3.1, 3.2, 3.3, 3.4, or 3.5.\n")) {
		t.Errorf("stderr:\n%s", stderr.String())
	}
}
