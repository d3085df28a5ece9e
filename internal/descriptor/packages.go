package descriptor

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExclude names the top-level packages never shipped in a
// distribution.
var DefaultExclude = []string{"docs", "tests"}

// FindPackages returns the dotted names of all packages below root. A
// directory is a package when it holds __init__.py; the search only descends
// through packages. Names matching an exclude pattern (shell glob against the
// full dotted name) are left out, but their subpackages are still searched.
func FindPackages(root string, exclude []string) ([]string, error) {
	for _, pattern := range exclude {
		if _, err := path.Match(pattern, ""); err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
	}

	pkgs := []string{}
	var walk func(dir, prefix string) error
	walk = func(dir, prefix string) error {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("reading %s: %w", dir, err)
		}
		for _, e := range entries {
			if !e.IsDir() || strings.Contains(e.Name(), ".") {
				continue
			}
			full := filepath.Join(dir, e.Name())
			if !isPackage(full) {
				continue
			}
			name := prefix + e.Name()
			if !excluded(name, exclude) {
				pkgs = append(pkgs, name)
			}
			if err := walk(full, name+"."); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root, ""); err != nil {
		return nil, err
	}

	sort.Strings(pkgs)
	return pkgs, nil
}

func isPackage(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, "__init__.py"))
	return err == nil && info.Mode().IsRegular()
}

func excluded(name string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := path.Match(p, name); ok {
			return true
		}
	}
	return false
}
