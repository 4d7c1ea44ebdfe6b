// Package people is a generator fixture.
package people

import "time"

// Named is anything with a name.
type Named interface {
	// @Description Display name
	GetName() string
}

// Person is somebody.
// @BuildType ramlforjaxrs-simple
// @Resource /people
type Person interface {
	Named

	GetAge() int
	// GetNickname is what friends call them.
	// @Required false
	// @Example Bob
	GetNickname() *string
	GetAddress() Address
	GetStatus() Status
	GetBorn() time.Time
	GetFriends() []Person
	SetAge(age int)
}

// Status of an account.
type Status string

const (
	StatusActive Status = "active"
	StatusBanned Status = "banned"
)

// Address is a postal address.
// @Resource /addresses
// @Method POST
type Address struct {
	Street string `json:"street" example:"1 Main St"`
	Zip    string `json:"zip,omitempty"`
	Secret string `json:"-"`
	// Postal code, if different from Zip.
	PostalCode *string
	note       string
}

// Note returns the internal note.
func (a Address) Note() string {
	return a.note
}
