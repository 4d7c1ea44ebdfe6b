package people

// Base is the shared ancestor.
type Base interface {
	GetID() string
}

// Left extends Base.
type Left interface {
	Base
	GetLeft() int
}

// Right extends Base.
type Right interface {
	Base
	GetRight() int
}

// Bottom joins both sides.
// @BuildType ramlforjaxrs-simple
// @Resource /bottoms
// @Method PUT
type Bottom interface {
	Left
	Right
	GetBottom() bool
}

// Page is one page of results.
type Page[T any] interface {
	GetItems() []T
	GetTotal() int
}

// User is an account holder.
type User struct {
	Email string   `json:"email"`
	Tags  []string `json:"tags,omitempty"`
}

// UserPage is a page of users.
// @BuildType ramlforjaxrs-simple
// @Resource /users
// @name Users
type UserPage interface {
	Page[User]
}

// Broken has an accessor that cannot be described.
// @BuildType ramlforjaxrs-simple
type Broken interface {
	GetCallback() func()
}
