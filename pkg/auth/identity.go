// Package auth issues and validates JWT credentials and resolves the
// caller identity that domain operations receive explicitly.
package auth

// Identity is the resolved current user. It is passed as an explicit
// parameter into every operation that needs it; there is no ambient
// security context.
type Identity struct {
	UserID   string
	Username string
	Role     string
}

// Present reports whether the identity carries a resolved user.
func (id Identity) Present() bool {
	return id.UserID != ""
}
