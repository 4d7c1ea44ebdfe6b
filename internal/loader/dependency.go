package loader

import (
	"fmt"
	"sort"

	"github.com/KyleBanks/depth"
)

// DependencyPatterns resolves the dependency tree of each search directory's
// package, up to the configured depth, and returns the import paths worth
// describing. Standard library and internal packages are left out unless
// internal parsing is on.
func (s *Service) DependencyPatterns(dirs []string) ([]string, error) {
	seen := make(map[string]struct{})

	for index, dir := range dirs {
		var t depth.Tree
		t.ResolveInternal = true
		t.MaxDepth = s.parseDepth

		pkgName, err := importPath(dir)
		if err != nil {
			if index == 0 {
				return nil, err
			}
			continue
		}

		err = t.Resolve(pkgName)
		if err != nil {
			return nil, fmt.Errorf("pkg %s cannot find all dependencies, %s", pkgName, err)
		}

		for i := 0; i < len(t.Root.Deps); i++ {
			s.collectDeps(&t.Root.Deps[i], seen)
		}
	}

	patterns := make([]string, 0, len(seen))
	for p := range seen {
		patterns = append(patterns, p)
	}
	sort.Strings(patterns)
	return patterns, nil
}

// collectDeps walks a depth tree node
func (s *Service) collectDeps(pkg *depth.Pkg, seen map[string]struct{}) {
	if !pkg.Resolved {
		return
	}
	if (pkg.Internal || isStandard(pkg.Name)) && !s.parseInternal {
		return
	}
	if pkg.Name == "C" {
		return
	}
	if s.skipPackageByPrefix(pkg.Name) {
		return
	}
	if _, ok := seen[pkg.Name]; ok {
		return
	}
	seen[pkg.Name] = struct{}{}

	for i := 0; i < len(pkg.Deps); i++ {
		s.collectDeps(&pkg.Deps[i], seen)
	}
}
