package loader

// NewService creates a new loader service with optional configuration
func NewService(options ...Option) *Service {
	s := &Service{
		parseVendor:   false,
		parseInternal: false,
		recursive:     true,
		excludes:      []string{},
		packagePrefix: []string{},
		parseDepth:    100,
		debug:         &noOpDebugger{},
	}

	for _, opt := range options {
		opt(s)
	}

	return s
}

// WithParseVendor sets whether to parse vendor directories
func WithParseVendor(parse bool) Option {
	return func(s *Service) {
		s.parseVendor = parse
	}
}

// WithParseInternal sets whether to describe internal and standard library dependencies
func WithParseInternal(parse bool) Option {
	return func(s *Service) {
		s.parseInternal = parse
	}
}

// WithRecursive sets whether search directories include their subdirectories
func WithRecursive(recursive bool) Option {
	return func(s *Service) {
		s.recursive = recursive
	}
}

// WithExcludes sets directory exclusion patterns. Patterns are doublestar
// globs matched against the directory path relative to its search directory,
// or against the absolute path.
func WithExcludes(excludes []string) Option {
	return func(s *Service) {
		s.excludes = excludes
	}
}

// WithPackagePrefix sets package path prefixes to filter
func WithPackagePrefix(prefixes []string) Option {
	return func(s *Service) {
		s.packagePrefix = prefixes
	}
}

// WithParseDependency sets whether imported packages are described too
func WithParseDependency(parse bool) Option {
	return func(s *Service) {
		s.parseDependency = parse
	}
}

// WithParseDepth limits how deep the dependency tree is followed
func WithParseDepth(depth int) Option {
	return func(s *Service) {
		if depth > 0 {
			s.parseDepth = depth
		}
	}
}

// WithDebugger sets the debugger for logging
func WithDebugger(debugger Debugger) Option {
	return func(s *Service) {
		if debugger != nil {
			s.debug = debugger
		}
	}
}
