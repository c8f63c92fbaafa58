package shared

// Role capability granted to an authenticated caller
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsValid reports whether r is one of the known roles
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Principal is the authenticated caller. Application services receive it
// explicitly instead of reading request state.
type Principal struct {
	UserID string
	Role   Role
}

// IsAdmin reports whether the principal holds the admin capability
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Authenticated reports whether the principal identifies a user
func (p Principal) Authenticated() bool {
	return p.UserID != ""
}

// RequireUser fails with ErrUnauthorized for an anonymous principal
func (p Principal) RequireUser() error {
	if !p.Authenticated() {
		return NewUnauthorizedError("authentication required")
	}
	return nil
}

// RequireAdmin fails unless the principal is an authenticated admin
func (p Principal) RequireAdmin() error {
	if err := p.RequireUser(); err != nil {
		return err
	}
	if !p.IsAdmin() {
		return NewForbiddenError("principal", "Role ("+string(p.Role)+") is not allowed to access this resource")
	}
	return nil
}
