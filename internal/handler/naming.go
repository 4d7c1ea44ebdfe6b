package handler

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Field naming strategies.
const (
	CamelCase  = "camelcase"
	PascalCase = "pascalcase"
	SnakeCase  = "snakecase"
)

// GetterPrefix is the accessor prefix stripped from property names.
const GetterPrefix = "Get"

// PropertyName derives a property name from an accessor: the prefix is
// stripped and only the first remaining rune is lower-cased
// (GetUserId -> userId, GetURL -> uRL). It returns "" for a bare prefix.
func PropertyName(accessor string) string {
	rest := strings.TrimPrefix(accessor, GetterPrefix)
	if rest == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(rest)
	return string(unicode.ToLower(r)) + rest[size:]
}

// ToSnakeCase converts a name to snake_case
func ToSnakeCase(in string) string {
	var (
		runes  = []rune(in)
		length = len(runes)
		out    []rune
	)

	for idx := 0; idx < length; idx++ {
		if idx > 0 && unicode.IsUpper(runes[idx]) &&
			((idx+1 < length && unicode.IsLower(runes[idx+1])) || unicode.IsLower(runes[idx-1])) {
			out = append(out, '_')
		}

		out = append(out, unicode.ToLower(runes[idx]))
	}

	return string(out)
}

// ToLowerCamelCase converts a name to lowerCamelCase, lowering a leading acronym as a whole.
func ToLowerCamelCase(in string) string {
	var flag bool

	runes := []rune(in)
	out := make([]rune, len(runes))

	for i, curr := range runes {
		if (i == 0 && unicode.IsUpper(curr)) || (flag && unicode.IsUpper(curr)) {
			out[i] = unicode.ToLower(curr)
			flag = true

			continue
		}

		out[i] = curr
		flag = false
	}

	return string(out)
}

// ApplyNamingStrategy applies the specified naming strategy to a field name
func ApplyNamingStrategy(name string, strategy string) string {
	switch strategy {
	case SnakeCase:
		return ToSnakeCase(name)
	case PascalCase:
		return name
	default:
		return ToLowerCamelCase(name)
	}
}

// jsonField is the parsed json tag of a struct field.
type jsonField struct {
	name      string
	skip      bool
	omitEmpty bool
}

func lookupTag(tag, key string) (string, bool) {
	return reflect.StructTag(tag).Lookup(key)
}

func parseJSONTag(tag string) jsonField {
	value, ok := lookupTag(tag, "json")
	if !ok {
		return jsonField{}
	}
	if value == "-" {
		return jsonField{skip: true}
	}

	parts := strings.Split(value, ",")
	field := jsonField{name: parts[0]}
	for _, opt := range parts[1:] {
		if opt == "omitempty" || opt == "omitzero" {
			field.omitEmpty = true
		}
	}
	return field
}
