package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/griffnb/core-raml/internal/domain"
)

// ErrNoHandler is returned when no strategy accepts a type.
var ErrNoHandler = errors.New("no type handler")

type selectorKey struct {
	mediaType string
	shape     Shape
}

// Selector picks the TypeHandler for a media type and operation shape.
// Handlers registered for a key are tried in order, then those of "*/*".
type Selector struct {
	table map[selectorKey][]TypeHandler
}

// NewSelector creates an empty selector.
func NewSelector() *Selector {
	return &Selector{table: make(map[selectorKey][]TypeHandler)}
}

// DefaultSelector routes JSON bodies to the bean-like and struct strategies
// and every other media type to the bean-like strategy.
func DefaultSelector(options ...Option) *Selector {
	beans := NewBeanLikeTypes(options...)
	structs := NewStructTypes(options...)

	s := NewSelector()
	for _, shape := range []Shape{ShapeResponse, ShapeRequest} {
		s.Register(MediaJSON, shape, beans, structs)
		s.Register(MediaAny, shape, beans)
	}
	return s
}

// Register appends handlers for a media type and shape.
func (s *Selector) Register(mediaType string, shape Shape, handlers ...TypeHandler) {
	key := selectorKey{mediaType: NormalizeMediaType(mediaType), shape: shape}
	s.table[key] = append(s.table[key], handlers...)
}

// PickTypeWriter returns the first handler that accepts t for op and mediaType.
func (s *Selector) PickTypeWriter(op Operation, mediaType string, t *domain.Type) (TypeHandler, error) {
	media := NormalizeMediaType(mediaType)
	keys := []selectorKey{{mediaType: media, shape: op.Shape}}
	if media != MediaAny {
		keys = append(keys, selectorKey{mediaType: MediaAny, shape: op.Shape})
	}

	for _, key := range keys {
		for _, h := range s.table[key] {
			if h.HandlesType(op, media, t) {
				return h, nil
			}
		}
	}
	return nil, fmt.Errorf("%w for %s %s (%s %s)", ErrNoHandler, t.Identity(), media, op.Method, op.Shape)
}

// NormalizeMediaType lower-cases a media type, drops its parameters and maps
// structured "+json" suffixes to application/json.
func NormalizeMediaType(mediaType string) string {
	media := strings.ToLower(strings.TrimSpace(mediaType))
	if idx := strings.IndexByte(media, ';'); idx >= 0 {
		media = strings.TrimSpace(media[:idx])
	}
	switch {
	case media == "":
		return MediaAny
	case media == "json", strings.HasSuffix(media, "+json"):
		return MediaJSON
	case media == "xml", strings.HasSuffix(media, "+xml"):
		return MediaXML
	}
	return media
}
