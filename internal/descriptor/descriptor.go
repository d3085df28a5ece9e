package descriptor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/pyskel/pyskel/internal/metadata"
)

// Descriptor is the evaluated packaging metadata of a project, keyed the way
// setuptools names its arguments.
type Descriptor struct {
	Name               string              `yaml:"name" json:"name"`
	Version            string              `yaml:"version" json:"version"`
	Description        string              `yaml:"description" json:"description"`
	LongDescription    string              `yaml:"long_description" json:"long_description"`
	Author             string              `yaml:"author" json:"author"`
	AuthorEmail        string              `yaml:"author_email" json:"author_email"`
	URL                string              `yaml:"url" json:"url"`
	PythonRequires     string              `yaml:"python_requires" json:"python_requires"`
	Packages           []string            `yaml:"packages" json:"packages"`
	EntryPoints        map[string][]string `yaml:"entry_points" json:"entry_points"`
	IncludePackageData bool                `yaml:"include_package_data" json:"include_package_data"`
	PackageData        map[string][]string `yaml:"package_data" json:"package_data"`
	InstallRequires    []string            `yaml:"install_requires" json:"install_requires"`
	License            string              `yaml:"license" json:"license"`
	Classifiers        []string            `yaml:"classifiers" json:"classifiers"`
}

// Fixed descriptor values.
const (
	License          = "BSD (3-clause)"
	ReadmeFile       = "README.rst"
	RequirementsFile = "requirements.txt"
)

// Classifiers returns the trove classifiers every project starts with.
func Classifiers() []string {
	return []string{
		"Development Status :: 2 - Pre-Alpha",
		"Natural Language :: English",
		"Programming Language :: Python :: 3",
	}
}

// Options tunes Build.
type Options struct {
	// Runtime is the interpreter version the descriptor is evaluated under.
	Runtime *semver.Version
	// Versioner defaults to GitVersion.
	Versioner VersionSource
	// EntryPoints defaults to {"console_scripts": []}.
	EntryPoints map[string][]string
	// PackageData defaults to {<package_dir_name>: []}.
	PackageData map[string][]string
	// Exclude defaults to DefaultExclude.
	Exclude []string
}

// Build evaluates the descriptor of the project rendered at root. The runtime
// guard runs first; when it fails no file is read.
func Build(ctx context.Context, root string, p metadata.Project, opts Options) (*Descriptor, error) {
	if err := CheckRuntime(opts.Runtime, p.PackageDistName); err != nil {
		return nil, err
	}

	readme, err := ReadText(filepath.Join(root, ReadmeFile))
	if err != nil {
		return nil, err
	}
	reqs, err := ReadRequirements(filepath.Join(root, RequirementsFile))
	if err != nil {
		return nil, err
	}

	exclude := opts.Exclude
	if exclude == nil {
		exclude = DefaultExclude
	}
	pkgs, err := FindPackages(root, exclude)
	if err != nil {
		return nil, fmt.Errorf("finding packages: %w", err)
	}

	versioner := opts.Versioner
	if versioner == nil {
		versioner = GitVersion{}
	}
	version, err := versioner.Version(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("detecting version: %w", err)
	}

	entryPoints := copyLists(opts.EntryPoints)
	if len(entryPoints) == 0 {
		entryPoints = map[string][]string{"console_scripts": {}}
	}
	packageData := copyLists(opts.PackageData)
	if len(packageData) == 0 {
		packageData = map[string][]string{p.PackageDirName: {}}
	}

	pythonRequires := fmt.Sprintf(">=%d.%d", MinimumRuntime.Major(), MinimumRuntime.Minor())
	if v := strings.TrimSpace(p.MinimumSupportedPythonVersion); v != "" {
		pythonRequires = ">=" + v
	}

	return &Descriptor{
		Name:               p.PackageDistName,
		Version:            version,
		Description:        p.ProjectShortDescription,
		LongDescription:    readme,
		Author:             p.FullName,
		AuthorEmail:        p.Email,
		URL:                fmt.Sprintf("https://github.com/%s/%s", p.GitHubOrgName, p.RepoName),
		PythonRequires:     pythonRequires,
		Packages:           pkgs,
		EntryPoints:        entryPoints,
		IncludePackageData: true,
		PackageData:        packageData,
		InstallRequires:    reqs,
		License:            License,
		Classifiers:        Classifiers(),
	}, nil
}

// copyLists deep-copies m, replacing nil lists with empty ones.
func copyLists(m map[string][]string) map[string][]string {
	out := make(map[string][]string, len(m))
	for k, v := range m {
		out[k] = append([]string{}, v...)
	}
	return out
}
