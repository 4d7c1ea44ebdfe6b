package handler

import (
	"github.com/griffnb/core-raml/internal/domain"
	"github.com/griffnb/core-raml/internal/raml"
	"github.com/griffnb/core-raml/internal/registry"
)

// StructTypes builds named structs from their exported fields. Structs with
// getters are still described by their accessors.
type StructTypes struct {
	cfg config
}

// NewStructTypes creates the struct strategy.
func NewStructTypes(options ...Option) *StructTypes {
	return &StructTypes{cfg: newConfig(options)}
}

// HandlesType accepts any named struct.
func (h *StructTypes) HandlesType(_ Operation, _ string, t *domain.Type) bool {
	return t != nil && t.Kind == domain.KindStruct && t.Name != ""
}

// WriteType declares the type on w, then builds it.
func (h *StructTypes) WriteType(reg *registry.Service, w LineWriter, _ string, _ Operation, entity domain.Entity) (*raml.Type, error) {
	return writeType(reg, w, entity, h.cfg)
}

// Build interns root and its closure.
func (h *StructTypes) Build(reg *registry.Service, root domain.Entity, listener registry.TypeScanner) (*raml.Type, error) {
	return buildRoot(reg, root, h.cfg, listener)
}
