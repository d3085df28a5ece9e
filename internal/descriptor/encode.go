package descriptor

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pyskel/pyskel/internal/schema"
)

// Output formats accepted by Encode.
const (
	FormatYAML    = "yaml"
	FormatJSON    = "json"
	FormatPKGInfo = "pkg-info"
)

// Formats lists the supported output formats.
var Formats = []string{FormatYAML, FormatJSON, FormatPKGInfo}

// Encode writes d to w in the given format.
func Encode(w io.Writer, d *Descriptor, format string) error {
	switch format {
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	case FormatPKGInfo:
		_, err := io.WriteString(w, pkgInfo(d))
		return err
	}
	return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(Formats, ", "))
}

// pkgInfo renders core metadata 2.1. Blank requirements are skipped.
func pkgInfo(d *Descriptor) string {
	var b strings.Builder
	field := func(name, value string) {
		fmt.Fprintf(&b, "%s: %s\n", name, value)
	}

	field("Metadata-Version", "2.1")
	field("Name", d.Name)
	field("Version", d.Version)
	field("Summary", d.Description)
	field("Home-page", d.URL)
	field("Author", d.Author)
	field("Author-email", d.AuthorEmail)
	field("License", d.License)
	for _, c := range d.Classifiers {
		field("Classifier", c)
	}
	if d.PythonRequires != "" {
		field("Requires-Python", d.PythonRequires)
	}
	for _, r := range d.InstallRequires {
		if strings.TrimSpace(r) == "" {
			continue
		}
		field("Requires-Dist", r)
	}
	field("Description-Content-Type", "text/x-rst")
	b.WriteString("\n")
	b.WriteString(d.LongDescription)
	return b.String()
}

// Validate checks d against the descriptor schema.
func Validate(d *Descriptor) (*schema.Result, error) {
	return schema.Validate(schema.Descriptor, d)
}
