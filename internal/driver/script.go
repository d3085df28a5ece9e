package driver

import (
	"fmt"
	"os"
	"regexp"

	"go.yaml.in/yaml/v3"
)

// Step is one prompt/response pair. Expect is a case-sensitive regular
// expression matched against the child's output; Send is written back
// followed by a newline. An empty Send accepts the engine's default.
type Step struct {
	Expect string `yaml:"expect"`
	Send   string `yaml:"send"`
}

// Script is an ordered sequence of steps.
type Script struct {
	Steps []Step `yaml:"steps"`
}

// ExampleScript returns the session that answers the scientific Python
// cookiecutter's questions for the example project.
func ExampleScript() Script {
	return Script{Steps: []Step{
		{Expect: "full_name .*", Send: "Brookhaven National Lab"},
		{Expect: "email .*", Send: "dallan@bnl.gov"},
		{Expect: "github_username .*", Send: "danielballan"},
		{Expect: "project_name .*", Send: "Example"},
		{Expect: "package_dist_name .*", Send: ""},
		{Expect: "package_dir_name .*", Send: ""},
		{Expect: "repo_name .*", Send: ""},
		{Expect: "project_short_description .*", Send: ""},
		{Expect: "Select minimum_supported_python_version.*", Send: ""},
	}}
}

// LoadScript reads a YAML script file of the form
//
//	steps:
//	  - expect: "full_name .*"
//	    send: "Jane Doe"
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("reading script %s: %w", path, err)
	}

	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("parsing script %s: %w", path, err)
	}
	if _, err := s.compile(); err != nil {
		return Script{}, fmt.Errorf("script %s: %w", path, err)
	}
	return s, nil
}

// compile turns every step pattern into a regexp, in order.
func (s Script) compile() ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, len(s.Steps))
	for i, step := range s.Steps {
		if step.Expect == "" {
			return nil, fmt.Errorf("step %d: expect pattern is empty", i+1)
		}
		re, err := regexp.Compile(step.Expect)
		if err != nil {
			return nil, fmt.Errorf("step %d: invalid pattern %q: %w", i+1, step.Expect, err)
		}
		patterns[i] = re
	}
	return patterns, nil
}
