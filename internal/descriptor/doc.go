// Package descriptor evaluates the packaging descriptor of a rendered Python
// project: it enforces the minimum interpreter version, reads README.rst and
// requirements.txt, discovers packages, detects the version from git and
// assembles the setuptools metadata, which can then be validated and encoded
// as YAML, JSON or PKG-INFO.
package descriptor
