// Package registry interns the types discovered during one build pass.
// Every Go type identity maps to exactly one raml.Type for the lifetime of
// the Service.
package registry

import (
	"fmt"
	"strconv"

	"github.com/griffnb/core-raml/internal/domain"
	"github.com/griffnb/core-raml/internal/raml"
)

// TypeScanner is notified once for every newly registered type. It runs after
// the type has its registry slot, so it may register further types,
// including the one it was called for.
type TypeScanner interface {
	ScanType(reg *Service, entity domain.Entity, rt *raml.Type) error
}

// ScannerFunc adapts a function to TypeScanner.
type ScannerFunc func(reg *Service, entity domain.Entity, rt *raml.Type) error

// ScanType implements TypeScanner.
func (f ScannerFunc) ScanType(reg *Service, entity domain.Entity, rt *raml.Type) error {
	return f(reg, entity, rt)
}

// Checkpoint marks a registry state that Rollback can return to.
type Checkpoint struct {
	types        int
	reservations int
}

type entry struct {
	identity string
	rt       *raml.Type
}

// Service is the type registry of one document-generation pass. It is not
// safe for concurrent use.
type Service struct {
	types    map[string]*raml.Type
	names    map[string]string // RAML name -> identity
	reserved map[string]string // identity -> RAML name
	order    []entry
	// journal lists reserved identities in reservation order.
	journal []string
	debug   Debugger
}

// NewService creates an empty registry.
func NewService() *Service {
	return &Service{
		types:    make(map[string]*raml.Type),
		names:    make(map[string]string),
		reserved: make(map[string]string),
	}
}

// SetDebugger sets the debugger.
func (s *Service) SetDebugger(debug Debugger) {
	s.debug = debug
}

func (s *Service) debugf(format string, v ...interface{}) {
	if s.debug != nil {
		s.debug.Printf(format, v...)
	}
}

// RegisterType returns the type interned for entity's identity, creating it
// when missing. The scanner only runs for a newly created type; its error is
// returned as is.
func (s *Service) RegisterType(name string, entity domain.Entity, scanner TypeScanner) (*raml.Type, error) {
	identity := entity.Identity()
	if rt, ok := s.types[identity]; ok {
		return rt, nil
	}

	name = s.ReserveName(name, entity)

	rt := raml.NewType(name)
	if t := entity.Type(); t != nil {
		rt.Annotations = t.Annotations
		rt.Doc = t.Doc
	}

	s.types[identity] = rt
	s.order = append(s.order, entry{identity: identity, rt: rt})
	s.debugf("registry: registered %s as %s", identity, name)

	if scanner == nil {
		return rt, nil
	}
	if err := scanner.ScanType(s, entity, rt); err != nil {
		return rt, err
	}
	return rt, nil
}

// ReserveName returns the RAML name the entity is, or will be, registered
// under. A name held by another identity is qualified with the sanitized
// package path.
func (s *Service) ReserveName(name string, entity domain.Entity) string {
	identity := entity.Identity()
	if reserved, ok := s.reserved[identity]; ok {
		return reserved
	}

	unique := name
	if owner, taken := s.names[unique]; taken && owner != identity {
		if t := entity.Type(); t != nil && t.PkgPath != "" {
			unique = domain.SanitizePkgPath(t.PkgPath) + "_" + name
		}
		for i := 2; ; i++ {
			if owner, taken := s.names[unique]; !taken || owner == identity {
				break
			}
			unique = name + "_" + strconv.Itoa(i)
		}
		s.debugf("registry: name %s already taken, using %s for %s", name, unique, identity)
	}

	s.names[unique] = identity
	s.reserved[identity] = unique
	s.journal = append(s.journal, identity)
	return unique
}

// Lookup returns the type interned for entity's identity.
func (s *Service) Lookup(entity domain.Entity) (*raml.Type, bool) {
	rt, ok := s.types[entity.Identity()]
	return rt, ok
}

// Types returns the interned types in registration order.
func (s *Service) Types() []*raml.Type {
	types := make([]*raml.Type, 0, len(s.order))
	for _, e := range s.order {
		types = append(types, e.rt)
	}
	return types
}

// Len returns the number of interned types.
func (s *Service) Len() int {
	return len(s.order)
}

// Checkpoint records the current registry state.
func (s *Service) Checkpoint() Checkpoint {
	return Checkpoint{types: len(s.order), reservations: len(s.journal)}
}

// Rollback forgets every type registered and every name reserved after cp.
func (s *Service) Rollback(cp Checkpoint) error {
	if cp.types < 0 || cp.types > len(s.order) || cp.reservations < 0 || cp.reservations > len(s.journal) {
		return fmt.Errorf("registry: invalid checkpoint %d/%d (have %d types, %d names)",
			cp.types, cp.reservations, len(s.order), len(s.journal))
	}

	for _, e := range s.order[cp.types:] {
		delete(s.types, e.identity)
		s.debugf("registry: rolled back %s", e.identity)
	}
	s.order = s.order[:cp.types]

	for _, identity := range s.journal[cp.reservations:] {
		if name, ok := s.reserved[identity]; ok {
			delete(s.names, name)
			delete(s.reserved, identity)
		}
	}
	s.journal = s.journal[:cp.reservations]
	return nil
}
