package loader

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// skipDir reports whether packages in dir are left out. dir is absolute,
// searchDir is the search directory it was found under.
func (s *Service) skipDir(searchDir, dir string) bool {
	rel, err := filepath.Rel(searchDir, dir)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = ""
	}
	rel = filepath.ToSlash(rel)

	for _, part := range strings.Split(rel, "/") {
		if !s.parseVendor && part == "vendor" {
			return true
		}
		if part == "docs" {
			return true
		}
		if len(part) > 1 && part[0] == '.' && part != ".." {
			return true
		}
	}

	for _, pattern := range s.excludes {
		pattern = filepath.ToSlash(strings.TrimSuffix(pattern, "/"))
		if pattern == "" {
			continue
		}
		if matchGlob(pattern, rel) || matchGlob(pattern, filepath.ToSlash(dir)) {
			s.debug.Printf("loader: excluding %s (%s)", dir, pattern)
			return true
		}
	}

	return false
}

// matchGlob matches a directory or anything beneath it.
func matchGlob(pattern, path string) bool {
	if path == "" {
		return false
	}
	if ok, _ := doublestar.Match(pattern, path); ok {
		return true
	}
	ok, _ := doublestar.Match(pattern+"/**", path)
	return ok
}

// skipPackageByPrefix checks if a package should be skipped based on prefix
func (s *Service) skipPackageByPrefix(pkgpath string) bool {
	if len(s.packagePrefix) == 0 {
		return false
	}
	for _, prefix := range s.packagePrefix {
		if strings.HasPrefix(pkgpath, prefix) {
			return false
		}
	}
	return true
}

// isStandard reports whether an import path belongs to the standard library.
func isStandard(pkgPath string) bool {
	first := pkgPath
	if idx := strings.IndexByte(pkgPath, '/'); idx >= 0 {
		first = pkgPath[:idx]
	}
	return !strings.Contains(first, ".")
}
