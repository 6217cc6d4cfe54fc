package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	logger "github.com/sirupsen/logrus"
)

// packageMarker is the file whose presence makes a directory an importable
// Python package.
const packageMarker = "__init__.py"

// prunedDirs are tooling directories that never contain packages and are
// skipped without descending, so large virtualenvs and build output do not
// slow the walk down.
var prunedDirs = map[string]bool{
	".git":        true,
	".hg":         true,
	".svn":        true,
	".tox":        true,
	".venv":       true,
	"venv":        true,
	"__pycache__": true,
	"dist":        true,
	"build":       true,
}

// FindPackages walks the tree under root and returns the dotted module path
// of every directory carrying the package marker, sorted lexicographically.
//
// A directory whose own name contains a dot, or that lacks the marker, is
// not a package and its entire subtree is skipped. Include and exclude glob
// patterns are applied to the dotted names after the walk, so excluding
// "tests" leaves "tests.fixtures" alone unless "tests.*" is excluded too.
func FindPackages(root string, include, exclude []string) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("failed to access discovery root %q: %w", root, err)
	}

	var packages []string

	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logger.Warnf("[discovery] Skipping unreadable path %q: %v", path, err)
			return fs.SkipDir
		}

		if !entry.IsDir() || path == root {
			return nil
		}

		name := entry.Name()
		if prunedDirs[name] || strings.Contains(name, ".") {
			return fs.SkipDir
		}

		if _, statErr := os.Stat(filepath.Join(path, packageMarker)); statErr != nil {
			return fs.SkipDir
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return fmt.Errorf("failed to resolve package path %q: %w", path, relErr)
		}

		packages = append(packages, strings.ReplaceAll(filepath.ToSlash(rel), "/", "."))
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to walk %q: %w", root, walkErr)
	}

	packages = filterPackages(packages, include, exclude)
	sort.Strings(packages)
	return packages, nil
}

// filterPackages applies include and exclude glob lists to dotted names.
// An empty include list admits everything.
func filterPackages(packages, include, exclude []string) []string {
	filtered := make([]string, 0, len(packages))

	for _, pkg := range packages {
		if len(include) > 0 && !matchesAny(pkg, include) {
			continue
		}
		if matchesAny(pkg, exclude) {
			continue
		}
		filtered = append(filtered, pkg)
	}

	return filtered
}

func matchesAny(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchGlob(name, pattern) {
			return true
		}
	}
	return false
}

// matchGlob matches a dotted package name against an fnmatch-style pattern
// where '*' spans dots, the way setuptools treats "tests.*".
func matchGlob(name, pattern string) bool {
	escaped := regexp.QuoteMeta(pattern)
	escaped = strings.ReplaceAll(escaped, `\*`, ".*")
	escaped = strings.ReplaceAll(escaped, `\?`, ".")

	matched, err := regexp.MatchString("^"+escaped+"$", name)
	return err == nil && matched
}
