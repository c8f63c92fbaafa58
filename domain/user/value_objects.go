package user

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email normalized (trimmed, lower-case) address
type Email struct {
	value string
}

func NewEmail(email string) (*Email, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegex.MatchString(email) {
		return nil, NewInvalidFieldError("email", "invalid email format: "+email)
	}
	return &Email{value: email}, nil
}

func (e Email) Value() string  { return e.value }
func (e Email) String() string { return e.value }

// Contact optional delivery details copied onto orders at checkout
type Contact struct {
	Phone   string
	Address string
	ZipCode string
}
