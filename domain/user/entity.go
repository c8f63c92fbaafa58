// Package user is the customer profile consulted at checkout and managed by
// administrators. Registration and credentials are handled elsewhere.
package user

import (
	"time"

	"storefront/domain/shared"
)

// User customer or administrator profile
type User struct {
	id        string
	name      string
	email     Email
	contact   Contact
	role      shared.Role
	isActive  bool
	version   int
	createdAt time.Time
	updatedAt time.Time
}

// NewUser creates an active profile with the user role
func NewUser(id, name, email string, contact Contact) (*User, error) {
	if id == "" {
		return nil, NewInvalidFieldError("id", "user id is required")
	}
	if name == "" {
		return nil, NewInvalidFieldError("name", "name cannot be empty")
	}
	emailVO, err := NewEmail(email)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &User{
		id:        id,
		name:      name,
		email:     *emailVO,
		contact:   contact,
		role:      shared.RoleUser,
		isActive:  true,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Activate re-enables a deactivated account
func (u *User) Activate() {
	if u.isActive {
		return
	}
	u.isActive = true
	u.touch()
}

// Deactivate blocks the account
func (u *User) Deactivate() {
	if !u.isActive {
		return
	}
	u.isActive = false
	u.touch()
}

// ChangeRole assigns user or admin
func (u *User) ChangeRole(role shared.Role) error {
	if !role.IsValid() {
		return NewInvalidFieldError("role", "Invalid role")
	}
	if u.role == role {
		return nil
	}
	u.role = role
	u.touch()
	return nil
}

// UpdateContact replaces phone/address/zip
func (u *User) UpdateContact(contact Contact) {
	u.contact = contact
	u.touch()
}

func (u *User) touch() {
	u.updatedAt = time.Now()
	u.version++
}

func (u *User) ID() string           { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() Email         { return u.email }
func (u *User) Contact() Contact     { return u.contact }
func (u *User) Role() shared.Role    { return u.role }
func (u *User) IsActive() bool       { return u.isActive }
func (u *User) Version() int         { return u.version }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// ReconstructionDTO user state as stored. Repositories only.
type ReconstructionDTO struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	ZipCode   string
	Role      string
	IsActive  bool
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RebuildFromDTO restores a stored user
func RebuildFromDTO(dto ReconstructionDTO) *User {
	role := shared.Role(dto.Role)
	if !role.IsValid() {
		role = shared.RoleUser
	}
	return &User{
		id:    dto.ID,
		name:  dto.Name,
		email: Email{value: dto.Email},
		contact: Contact{
			Phone:   dto.Phone,
			Address: dto.Address,
			ZipCode: dto.ZipCode,
		},
		role:      role,
		isActive:  dto.IsActive,
		version:   dto.Version,
		createdAt: dto.CreatedAt,
		updatedAt: dto.UpdatedAt,
	}
}

// ToDTO flattens the user for storage
func (u *User) ToDTO() ReconstructionDTO {
	return ReconstructionDTO{
		ID:        u.id,
		Name:      u.name,
		Email:     u.email.Value(),
		Phone:     u.contact.Phone,
		Address:   u.contact.Address,
		ZipCode:   u.contact.ZipCode,
		Role:      string(u.role),
		IsActive:  u.isActive,
		Version:   u.version,
		CreatedAt: u.createdAt,
		UpdatedAt: u.updatedAt,
	}
}
