package scaffold

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/semver/v3"

	"github.com/pyskel/pyskel/internal/descriptor"
	"github.com/pyskel/pyskel/internal/metadata"
)

// TemplateName identifies the embedded skeleton, e.g. in replay file names.
const TemplateName = "skeleton"

//go:embed all:skeleton
var skeletonFS embed.FS

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir  string
	Files      []string
	Warnings   []string
	Descriptor *descriptor.Descriptor
}

// Options tunes Generate.
type Options struct {
	// Runtime the descriptor is evaluated under; MinimumRuntime when nil.
	Runtime *semver.Version
	// Versioner for the descriptor; the unknown version when nil, since a
	// fresh tree has no history.
	Versioner descriptor.VersionSource
}

var funcs = template.FuncMap{
	"underline": func(s string) string {
		return strings.Repeat("=", len([]rune(s)))
	},
}

// Generate renders the skeleton for p under outputDir. The project lands in
// outputDir/<repo_name>, which must not exist or be empty.
func Generate(ctx context.Context, p metadata.Project, outputDir string, opts Options) (*Result, error) {
	data := p.Values()

	root := path.Join(TemplateName, "{{.repo_name}}")
	projectDir, err := renderString("repo_name", path.Base(root), data)
	if err != nil {
		return nil, err
	}
	if projectDir == "" || strings.ContainsAny(projectDir, `/\`) || projectDir == "." || projectDir == ".." {
		return nil, fmt.Errorf("invalid repo_name %q", projectDir)
	}
	projectDir = filepath.Join(outputDir, projectDir)

	// Check for existing files to prevent accidental overwrites.
	existing, err := os.ReadDir(projectDir)
	if err == nil && len(existing) > 0 {
		return nil, fmt.Errorf("output directory %s is not empty; remove existing files first", projectDir)
	}
	if err := os.MkdirAll(projectDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	result := &Result{OutputDir: projectDir}

	err = fs.WalkDir(skeletonFS, root, func(src string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if src == root {
			return nil
		}

		rel, err := renderPath(strings.TrimPrefix(src, root+"/"), data)
		if err != nil {
			return err
		}
		outPath := filepath.Join(projectDir, filepath.FromSlash(rel))

		if d.IsDir() {
			if err := os.MkdirAll(outPath, 0755); err != nil {
				return fmt.Errorf("creating %s: %w", outPath, err)
			}
			return nil
		}

		raw, err := fs.ReadFile(skeletonFS, src)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", src, err)
		}

		content := raw
		if strings.HasSuffix(rel, ".tmpl") {
			rel = strings.TrimSuffix(rel, ".tmpl")
			outPath = strings.TrimSuffix(outPath, ".tmpl")
			rendered, err := renderString(src, string(raw), data)
			if err != nil {
				return err
			}
			content = []byte(rendered)
		}

		if err := os.WriteFile(outPath, content, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
		result.Files = append(result.Files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Evaluate and validate the packaging descriptor of the new tree.
	d, err := Describe(ctx, projectDir, p, opts)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Could not evaluate descriptor: %v", err))
		return result, nil
	}
	result.Descriptor = d

	valResult, valErr := descriptor.Validate(d)
	if valErr != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Could not validate descriptor: %v", valErr))
	} else if !valResult.Valid {
		for _, issue := range valResult.Issues {
			result.Warnings = append(result.Warnings, issue.String())
		}
	}

	return result, nil
}

// Describe builds the descriptor of a rendered project with Generate's
// defaults applied to opts.
func Describe(ctx context.Context, dir string, p metadata.Project, opts Options) (*descriptor.Descriptor, error) {
	runtime := opts.Runtime
	if runtime == nil {
		runtime = descriptor.MinimumRuntime
	}
	versioner := opts.Versioner
	if versioner == nil {
		versioner = descriptor.StaticVersion(descriptor.UnknownVersion)
	}
	return descriptor.Build(ctx, dir, p, descriptor.Options{
		Runtime:   runtime,
		Versioner: versioner,
	})
}

// renderPath renders each slash-separated segment of rel.
func renderPath(rel string, data map[string]string) (string, error) {
	segments := strings.Split(rel, "/")
	for i, seg := range segments {
		out, err := renderString(rel, seg, data)
		if err != nil {
			return "", err
		}
		if out == "" || strings.ContainsAny(out, `/\`) {
			return "", fmt.Errorf("path segment %q of %s renders to invalid name %q", seg, rel, out)
		}
		segments[i] = out
	}
	return strings.Join(segments, "/"), nil
}

func renderString(name, text string, data map[string]string) (string, error) {
	if !strings.Contains(text, "{{") {
		return text, nil
	}
	tmpl, err := template.New(name).Funcs(funcs).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parsing template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.String(), nil
}
