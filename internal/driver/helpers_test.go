package driver

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// cookiecutterPrompts mirrors what the scientific Python cookiecutter prints.
var cookiecutterPrompts = []string{
	"full_name [Name or Organization]: ",
	"email []: ",
	"github_username []: ",
	"project_name [Your Project Name]: ",
	"package_dist_name [example]: ",
	"package_dir_name [example]: ",
	"repo_name [example]: ",
	"project_short_description [Python package for doing science.]: ",
	"Select minimum_supported_python_version:\n1 - 3.6\n2 - 3.7\n3 - 3.8\nChoose from 1, 2, 3 [1]: ",
}

type fakeEngine struct {
	argv   []string
	env    []string
	record string
}

func newFakeEngine(t *testing.T, prompts []string, extraEnv ...string) *fakeEngine {
	t.Helper()
	record := filepath.Join(t.TempDir(), "answers")
	env := []string{
		"PYSKEL_FAKE_ENGINE=1",
		"PYSKEL_FAKE_PROMPTS=" + strings.Join(prompts, "|"),
		"PYSKEL_FAKE_RECORD=" + record,
	}
	return &fakeEngine{
		argv:   []string{os.Args[0]},
		env:    append(env, extraEnv...),
		record: record,
	}
}

// answers returns the responses the fake engine received, in order.
func (f *fakeEngine) answers(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(f.record)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("reading answers: %v", err)
	}
	var out []string
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		s, err := strconv.Unquote(line)
		if err != nil {
			t.Fatalf("unquoting %q: %v", line, err)
		}
		out = append(out, s)
	}
	return out
}

func exampleResponses() []string {
	var out []string
	for _, s := range ExampleScript().Steps {
		out = append(out, s.Send)
	}
	return out
}
