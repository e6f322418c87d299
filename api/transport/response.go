package transport

import "github.com/taskhive/backend/domain"

// MessageResponse is the confirmation and error payload shape.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserPayload is the caller-facing user object. It is built field by field so
// the password hash cannot leak through marshalling changes.
type UserPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    UserPayload `json:"user"`
}

// VerifyResponse is returned by token verification.
type VerifyResponse struct {
	User UserPayload `json:"user"`
}

// NewUserPayload strips a domain user down to its public fields.
func NewUserPayload(u *domain.User) UserPayload {
	if u == nil {
		return UserPayload{}
	}
	return UserPayload{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}
}
