package loader

import (
	"fmt"

	"golang.org/x/tools/go/packages"
)

// importPath resolves the import path of the package in dir.
func importPath(dir string) (string, error) {
	pkgs, err := packages.Load(&packages.Config{Mode: packages.NeedName, Dir: dir}, ".")
	if err != nil {
		return "", fmt.Errorf("resolve package in %s: %w", dir, err)
	}
	if len(pkgs) == 0 || pkgs[0].PkgPath == "" || len(pkgs[0].Errors) > 0 {
		return "", fmt.Errorf("no Go package in %s", dir)
	}
	return pkgs[0].PkgPath, nil
}
