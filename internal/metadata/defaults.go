package metadata

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

var funcs = template.FuncMap{
	"lower": strings.ToLower,
	// replace is pipeline-friendly: {{ .x | replace " " "-" }}.
	"replace": func(old, new, s string) string {
		return strings.ReplaceAll(s, old, new)
	},
}

// RenderDefault evaluates v's default against the answers collected so far.
func RenderDefault(v Variable, answers map[string]string) (string, error) {
	if len(v.Choices) > 0 {
		return v.Choices[0], nil
	}
	if !strings.Contains(v.Default, "{{") {
		return v.Default, nil
	}

	tmpl, err := template.New(v.Name).Funcs(funcs).Option("missingkey=error").Parse(v.Default)
	if err != nil {
		return "", fmt.Errorf("parsing default for %s: %w", v.Name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, answers); err != nil {
		return "", fmt.Errorf("rendering default for %s: %w", v.Name, err)
	}
	return buf.String(), nil
}

// Resolve fills every variable missing from answers with its default, in
// order, and returns the resulting project.
func Resolve(answers map[string]string) (Project, error) {
	values := make(map[string]string, len(answers))
	for k, v := range answers {
		values[k] = v
	}
	for _, v := range Variables() {
		if _, ok := values[v.Name]; ok {
			continue
		}
		def, err := RenderDefault(v, values)
		if err != nil {
			return Project{}, err
		}
		values[v.Name] = def
	}
	return FromValues(values), nil
}
