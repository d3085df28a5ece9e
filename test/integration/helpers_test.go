//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pyskel/pyskel/internal/metadata"
	"github.com/pyskel/pyskel/internal/scaffold"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir   string // HOME, so ~/.pyskel stays inside the test
	OutputDir string // where projects are generated
}

// setupTestEnv creates isolated temp directories and points HOME at one of
// them. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:   t.TempDir(),
		OutputDir: t.TempDir(),
	}
	t.Setenv("HOME", env.HomeDir)
	t.Setenv("GIT_CONFIG_GLOBAL", filepath.Join(env.HomeDir, ".gitconfig"))
	return env
}

// exampleProject returns the metadata the built-in drive script produces.
func exampleProject(t *testing.T) metadata.Project {
	t.Helper()
	p, err := metadata.Resolve(map[string]string{
		metadata.FullName:       "Brookhaven National Lab",
		metadata.Email:          "dallan@bnl.gov",
		metadata.GitHubUsername: "danielballan",
		metadata.ProjectName:    "Example",
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return p
}

// generateProject renders the skeleton and returns the project directory.
func generateProject(t *testing.T, env *testEnv, p metadata.Project) string {
	t.Helper()
	result, err := scaffold.Generate(context.Background(), p, env.OutputDir, scaffold.Options{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return result.OutputDir
}

// requireTool skips the test when name is not on PATH.
func requireTool(t *testing.T, name string) string {
	t.Helper()
	path, err := exec.LookPath(name)
	if err != nil {
		t.Skipf("%s not found on PATH", name)
	}
	return path
}

// run executes name in dir and returns trimmed stdout.
func run(t *testing.T, dir, name string, args ...string) string {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("%s %s: %v\n%s", name, strings.Join(args, " "), err, stderr.String())
	}
	return strings.TrimSpace(stdout.String())
}

// gitInit makes dir a repository with one commit.
func gitInit(t *testing.T, dir string) {
	t.Helper()
	run(t, dir, "git", "init", "-q")
	run(t, dir, "git", "config", "user.email", "test@example.org")
	run(t, dir, "git", "config", "user.name", "Test")
	run(t, dir, "git", "add", ".")
	run(t, dir, "git", "commit", "-q", "-m", "Initial commit")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s", path)
	}
}

func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("%s does not contain %q", path, substr)
	}
}

// runErr is run without failing the test.
func runErr(dir, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(out)), err
}

// writeReplay stores the example project as a metadata file and returns its
// path.
func writeReplay(t *testing.T, env *testEnv) string {
	t.Helper()
	dir := filepath.Join(env.HomeDir, "answers")
	if err := metadata.SaveReplay(dir, "example", exampleProject(t)); err != nil {
		t.Fatalf("SaveReplay: %v", err)
	}
	return metadata.ReplayPath(dir, "example")
}
