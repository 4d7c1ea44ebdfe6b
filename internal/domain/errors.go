package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnresolvableType is matched by every UnresolvableTypeError.
	ErrUnresolvableType = errors.New("unresolvable type")
	// ErrMalformedAccessor is reported for an accessor named exactly like the getter prefix.
	ErrMalformedAccessor = errors.New("malformed accessor")
	// ErrCyclicSuperType is matched by every CyclicSuperTypeError.
	ErrCyclicSuperType = errors.New("cyclic supertype")
)

// UnresolvableTypeError reports a type that maps to no primitive or registry type.
type UnresolvableTypeError struct {
	Type   string
	Reason string
}

func (e *UnresolvableTypeError) Error() string {
	return fmt.Sprintf("cannot resolve type %s: %s", e.Type, e.Reason)
}

func (e *UnresolvableTypeError) Unwrap() error {
	return ErrUnresolvableType
}

// CyclicSuperTypeError reports a supertype chain that leads back to itself.
type CyclicSuperTypeError struct {
	Path []string
}

func (e *CyclicSuperTypeError) Error() string {
	return "cyclic supertype: " + strings.Join(e.Path, " -> ")
}

func (e *CyclicSuperTypeError) Unwrap() error {
	return ErrCyclicSuperType
}
