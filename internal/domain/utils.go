package domain

import (
	"strings"
)

// ANY represent a any value.
const ANY = "any"

// IsGolangPrimitiveType checks if a type is a Go primitive type.
// This only checks for basic Go types. For extended primitives (time.Time, UUID, decimal),
// use IsExtendedPrimitiveType instead.
func IsGolangPrimitiveType(typeName string) bool {
	switch typeName {
	case "uint",
		"int",
		"uint8",
		"int8",
		"uint16",
		"int16",
		"byte",
		"uint32",
		"int32",
		"rune",
		"uint64",
		"int64",
		"uintptr",
		"float32",
		"float64",
		"bool",
		"string":
		return true
	}

	return false
}

// IsExtendedPrimitiveType checks if a type should be treated as a primitive in the
// generated document, including time.Time, UUID, and decimal types that are commonly
// treated as primitives.
func IsExtendedPrimitiveType(typeName string) bool {
	cleanType := strings.TrimPrefix(typeName, "*")

	if IsGolangPrimitiveType(cleanType) {
		return true
	}

	switch cleanType {
	case "time.Time",
		"time.Duration",
		"decimal.Decimal",
		"github.com/shopspring/decimal.Decimal",
		"uuid.UUID",
		"github.com/google/uuid.UUID",
		"encoding/json.RawMessage",
		"encoding/json.Number":
		return true
	}

	return false
}

// QualifiedName joins a package path and a type name the way IsExtendedPrimitiveType expects.
func QualifiedName(pkgPath, name string) string {
	if pkgPath == "" {
		return name
	}
	return pkgPath + "." + name
}

// SanitizePkgPath makes a package path usable inside a type name.
// "github.com/acme/model" -> "github_com_acme_model"
func SanitizePkgPath(pkgPath string) string {
	return strings.Map(func(r rune) rune {
		if r == '\\' || r == '/' || r == '.' || r == '-' {
			return '_'
		}
		return r
	}, pkgPath)
}
