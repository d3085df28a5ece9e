package scaffold

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Masterminds/semver/v3"

	"github.com/pyskel/pyskel/internal/descriptor"
	"github.com/pyskel/pyskel/internal/metadata"
)

func exampleProject(t *testing.T) metadata.Project {
	t.Helper()
	p, err := metadata.Resolve(map[string]string{
		metadata.FullName:       "Brookhaven National Lab",
		metadata.Email:          "dallan@bnl.gov",
		metadata.GitHubUsername: "danielballan",
		metadata.ProjectName:    "Example",
	})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	return p
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	p := exampleProject(t)

	result, err := Generate(context.Background(), p, dir, Options{})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	outDir := filepath.Join(dir, "example")
	if result.OutputDir != outDir {
		t.Errorf("OutputDir = %q, want %q", result.OutputDir, outDir)
	}

	assertFiles(t, result, []string{
		"MANIFEST.in",
		"README.rst",
		"docs/index.rst",
		"requirements.txt",
		"setup.py",
		"example/__init__.py",
		"example/tests/__init__.py",
	})
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}

	setup := readGenerated(t, outDir, "setup.py")
	assertContains(t, setup, "name='example',")
	assertContains(t, setup, `author="Brookhaven National Lab",`)
	assertContains(t, setup, "author_email='dallan@bnl.gov',")
	assertContains(t, setup, "url='https://github.com/danielballan/example',")
	assertContains(t, setup, "'example': [")
	assertContains(t, setup, "example does not support\nPython 2.x, 3.0, 3.1, 3.2, 3.3, 3.4, or 3.5.")
	assertContains(t, setup, `license="BSD (3-clause)",`)
	assertNotContains(t, setup, "{{")

	readme := readGenerated(t, outDir, "README.rst")
	assertContains(t, readme, "=======\nExample\n=======\n")

	docs := readGenerated(t, outDir, "docs/index.rst")
	assertContains(t, docs, "Example Documentation\n=====================\n")

	reqs := readGenerated(t, outDir, "requirements.txt")
	if len(descriptor.ParseRequirements(reqs)) != 0 {
		t.Errorf("skeleton requirements should be comments only, got %q", reqs)
	}
}

func TestGenerate_Descriptor(t *testing.T) {
	dir := t.TempDir()
	p := exampleProject(t)

	result, err := Generate(context.Background(), p, dir, Options{
		Runtime:   semver.MustParse("3.8.0"),
		Versioner: descriptor.StaticVersion("0.1.0"),
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	d := result.Descriptor
	if d == nil {
		t.Fatalf("no descriptor; warnings: %v", result.Warnings)
	}
	if d.Name != "example" || d.Version != "0.1.0" {
		t.Errorf("descriptor name/version = %q/%q", d.Name, d.Version)
	}
	want := []string{"example", "example.tests"}
	if strings.Join(d.Packages, ",") != strings.Join(want, ",") {
		t.Errorf("Packages = %v, want %v", d.Packages, want)
	}
	if len(d.InstallRequires) != 0 {
		t.Errorf("InstallRequires = %q, want empty", d.InstallRequires)
	}
	assertContains(t, d.LongDescription, "Python package for doing science.")
}

func TestGenerate_UnsupportedRuntimeWarns(t *testing.T) {
	result, err := Generate(context.Background(), exampleProject(t), t.TempDir(), Options{
		Runtime: semver.MustParse("3.5.0"),
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if result.Descriptor != nil {
		t.Error("descriptor should not be evaluated under an unsupported runtime")
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "does not support") {
		t.Errorf("Warnings = %v", result.Warnings)
	}
}

func TestGenerate_CustomNames(t *testing.T) {
	dir := t.TempDir()
	p := exampleProject(t)
	p.PackageDirName = "sci_tool"
	p.RepoName = "sci-tool-repo"

	result, err := Generate(context.Background(), p, dir, Options{})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	outDir := filepath.Join(dir, "sci-tool-repo")
	if result.OutputDir != outDir {
		t.Errorf("OutputDir = %q, want %q", result.OutputDir, outDir)
	}
	if _, err := os.Stat(filepath.Join(outDir, "sci_tool", "tests", "__init__.py")); err != nil {
		t.Errorf("package tests not rendered under custom dir name: %v", err)
	}
}

func TestGenerate_InvalidMetadataWarns(t *testing.T) {
	p := exampleProject(t)
	p.FullName = ""

	result, err := Generate(context.Background(), p, t.TempDir(), Options{})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.HasPrefix(w, "/author") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected /author warning, got %v", result.Warnings)
	}
}

func TestGenerate_InvalidRepoName(t *testing.T) {
	for _, name := range []string{"", "..", "a/b"} {
		p := exampleProject(t)
		p.RepoName = name
		if _, err := Generate(context.Background(), p, t.TempDir(), Options{}); err == nil {
			t.Errorf("repo_name %q: expected error", name)
		}
	}
}

func TestGenerateNonEmptyDir(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "example")
	if err := os.MkdirAll(outDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "existing.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Generate(context.Background(), exampleProject(t), dir, Options{})
	if err == nil {
		t.Fatal("expected error for non-empty directory")
	}
	assertContains(t, err.Error(), "not empty")
}

func TestRenderPath(t *testing.T) {
	data := map[string]string{"package_dir_name": "example"}

	got, err := renderPath("{{.package_dir_name}}/tests/__init__.py", data)
	if err != nil {
		t.Fatalf("renderPath error: %v", err)
	}
	if got != "example/tests/__init__.py" {
		t.Errorf("renderPath = %q", got)
	}

	if _, err := renderPath("{{.missing}}/x", data); err == nil {
		t.Error("expected error for unknown variable")
	}
}

func readGenerated(t *testing.T, dir, filename string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(filename)))
	if err != nil {
		t.Fatalf("reading generated file %s: %v", filename, err)
	}
	return string(data)
}

func assertFiles(t *testing.T, result *Result, expected []string) {
	t.Helper()
	if len(result.Files) != len(expected) {
		t.Errorf("got %d files %v, want %d files %v", len(result.Files), result.Files, len(expected), expected)
		return
	}
	for i, f := range expected {
		if result.Files[i] != f {
			t.Errorf("file[%d] = %q, want %q", i, result.Files[i], f)
		}
	}
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("content does not contain %q\n--- content ---\n%s", substr, content)
	}
}

func assertNotContains(t *testing.T, content, substr string) {
	t.Helper()
	if strings.Contains(content, substr) {
		t.Errorf("content should not contain %q", substr)
	}
}
