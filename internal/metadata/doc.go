// Package metadata defines the project metadata a skeleton is rendered from:
// the ordered list of template variables with their default expressions, the
// typed Project they resolve into, schema validation, and replay files that
// let a previous generate run be repeated without prompting.
package metadata
