package domain

import (
	"testing"
)

func TestIsExtendedPrimitiveType(t *testing.T) {
	tests := []struct {
		name     string
		typeName string
		want     bool
	}{
		// Basic Go primitives
		{"string", "string", true},
		{"int", "int", true},
		{"bool", "bool", true},
		{"float64", "float64", true},

		// Extended primitives
		{"time.Time", "time.Time", true},
		{"*time.Time", "*time.Time", true},
		{"uuid.UUID", "uuid.UUID", true},
		{"github.com/google/uuid.UUID", "github.com/google/uuid.UUID", true},
		{"decimal.Decimal", "decimal.Decimal", true},
		{"github.com/shopspring/decimal.Decimal", "github.com/shopspring/decimal.Decimal", true},

		// Not primitives
		{"model.User", "model.User", false},
		{"User", "User", false},
		{"error", "error", false},
		{"github.com/myapp/model.Account", "github.com/myapp/model.Account", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsExtendedPrimitiveType(tt.typeName); got != tt.want {
				t.Errorf("IsExtendedPrimitiveType(%q) = %v, want %v", tt.typeName, got, tt.want)
			}
		})
	}
}

func TestSanitizePkgPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"github.com/acme/model", "github_com_acme_model"},
		{"github.com/chargebee/chargebee-go/v3/enum", "github_com_chargebee_chargebee_go_v3_enum"},
		{"model", "model"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := SanitizePkgPath(tt.in); got != tt.want {
				t.Errorf("SanitizePkgPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
