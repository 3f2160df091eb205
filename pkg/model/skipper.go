package model

// Skipper identifies one club member. It is a value object: two Skipper
// values with the same identifier are the same skipper, so it can be used
// directly as a map key.
type Skipper struct {
	Identifier string
}

func NewSkipper(identifier string) Skipper {
	return Skipper{Identifier: identifier}
}

func (s Skipper) String() string { return s.Identifier }
