// Package branding provides compile-time identity values for the CLI.
//
// Values come from the embedded branding.yaml; hard defaults cover a missing
// or partial file.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName       string `yaml:"cli_name"`
	DisplayName   string `yaml:"display_name"`
	Description   string `yaml:"description"`
	HomeDir       string `yaml:"home_dir"`
	EnvPrefix     string `yaml:"env_prefix"`
	GoModule      string `yaml:"go_module"`
	GitHubRepo    string `yaml:"github_repo"`
	DefaultEngine string `yaml:"default_engine"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:       "pyskel",
			DisplayName:   "PySkel",
			Description:   "Scaffold Python project skeletons",
			HomeDir:       ".pyskel",
			EnvPrefix:     "PYSKEL",
			GoModule:      "github.com/pyskel/pyskel",
			GitHubRepo:    "pyskel/pyskel",
			DefaultEngine: "cookiecutter .",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "pyskel").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".pyskel").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "PYSKEL").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GitHubRepo returns the "owner/repo" string of this tool.
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// DefaultEngine returns the template engine command line the driver spawns
// when nothing else is configured.
func DefaultEngine() string { load(); return defaults.DefaultEngine }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("engine") → "PYSKEL_ENGINE".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
