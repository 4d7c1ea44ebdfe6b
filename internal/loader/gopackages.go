package loader

import (
	"fmt"
	"go/token"
	"path/filepath"
	"sort"

	"golang.org/x/tools/go/packages"
)

const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedImports |
	packages.NeedTypes | packages.NeedTypesSizes | packages.NeedSyntax | packages.NeedTypesInfo

// Load loads the packages under searchDirs with go/packages. With dependency
// parsing on, imported packages found by DependencyPatterns are loaded too.
func (s *Service) Load(searchDirs []string) (*LoadResult, error) {
	if len(searchDirs) == 0 {
		return nil, fmt.Errorf("loader: no search directories")
	}

	absDirs := make([]string, 0, len(searchDirs))
	patterns := make([]string, 0, len(searchDirs))
	for _, dir := range searchDirs {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		absDirs = append(absDirs, absDir)
		if s.recursive {
			patterns = append(patterns, absDir+"/...")
		} else {
			patterns = append(patterns, absDir)
		}
	}

	var depPatterns []string
	if s.parseDependency {
		var err error
		depPatterns, err = s.DependencyPatterns(searchDirs)
		if err != nil {
			return nil, err
		}
	}

	fset := token.NewFileSet()
	pkgs, err := packages.Load(&packages.Config{
		Mode: loadMode,
		Fset: fset,
		Dir:  absDirs[0],
	}, append(patterns, depPatterns...)...)
	if err != nil {
		return nil, err
	}

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			return nil, fmt.Errorf("loader: %s: %w", pkg.PkgPath, e)
		}
	}

	deps := make(map[string]struct{}, len(depPatterns))
	for _, p := range depPatterns {
		deps[p] = struct{}{}
	}

	result := &LoadResult{Fset: fset}
	seen := make(map[string]struct{})
	for _, pkg := range pkgs {
		if _, ok := seen[pkg.PkgPath]; ok {
			continue
		}
		seen[pkg.PkgPath] = struct{}{}

		if s.skipPackageByPrefix(pkg.PkgPath) {
			s.debug.Printf("loader: skipping %s (package prefix)", pkg.PkgPath)
			continue
		}

		if _, ok := deps[pkg.PkgPath]; ok {
			result.Dependencies = append(result.Dependencies, pkg)
			continue
		}

		if s.skipPackage(absDirs, pkg) {
			continue
		}
		result.Packages = append(result.Packages, pkg)
	}

	sortPackages(result.Packages)
	sortPackages(result.Dependencies)
	s.debug.Printf("loader: loaded %d packages, %d dependencies", len(result.Packages), len(result.Dependencies))

	return result, nil
}

func (s *Service) skipPackage(searchDirs []string, pkg *packages.Package) bool {
	if len(pkg.GoFiles) == 0 {
		return true
	}
	dir := filepath.Dir(pkg.GoFiles[0])
	for _, searchDir := range searchDirs {
		if s.skipDir(searchDir, dir) {
			return true
		}
	}
	return false
}

func sortPackages(pkgs []*packages.Package) {
	sort.Slice(pkgs, func(i, j int) bool {
		return pkgs[i].PkgPath < pkgs[j].PkgPath
	})
}
