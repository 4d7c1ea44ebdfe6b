package loader

import (
	"go/token"

	"golang.org/x/tools/go/packages"
)

// Service loads the Go packages whose types are described
type Service struct {
	parseVendor     bool
	parseInternal   bool
	recursive       bool
	excludes        []string
	packagePrefix   []string
	parseDependency bool
	parseDepth      int
	debug           Debugger
}

// Debugger interface for logging
type Debugger interface {
	Printf(format string, v ...interface{})
}

// LoadResult contains the results of loading packages
type LoadResult struct {
	// Packages are the packages found under the search directories.
	Packages []*packages.Package
	// Dependencies are imported packages selected for description.
	Dependencies []*packages.Package
	Fset         *token.FileSet
}

// All returns the root packages followed by the dependencies.
func (r *LoadResult) All() []*packages.Package {
	all := make([]*packages.Package, 0, len(r.Packages)+len(r.Dependencies))
	all = append(all, r.Packages...)
	return append(all, r.Dependencies...)
}

// Option is a functional option for configuring Service
type Option func(*Service)

// noOpDebugger is a no-op debugger
type noOpDebugger struct{}

func (n *noOpDebugger) Printf(format string, v ...interface{}) {}
