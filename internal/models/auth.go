package models

import "github.com/desertthunder/algox/internal/shared"

// DefaultRole is sent with every registration. The service ignores any other value.
const DefaultRole = "user"

// RegisterInput is the body of a registration request.
type RegisterInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Validate requires a username, password and email, and fills in the default role.
func (r *RegisterInput) Validate() error {
	switch {
	case shared.IsBlank(r.Username):
		return shared.Validation("username is required")
	case shared.IsBlank(r.Password):
		return shared.Validation("password is required")
	case shared.IsBlank(r.Email):
		return shared.Validation("email is required")
	}
	if shared.IsBlank(r.Role) {
		r.Role = DefaultRole
	}
	return nil
}

// LoginInput is the body of a login request.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate requires both fields.
func (l LoginInput) Validate() error {
	if shared.IsBlank(l.Username) || shared.IsBlank(l.Password) {
		return shared.Validation("username and password are required")
	}
	return nil
}

// ResetInput carries the fields of the password reset form.
//
// ConfirmPassword never leaves the client.
type ResetInput struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Token           string `json:"token"`
	NewPassword     string `json:"new-password"`
	ConfirmPassword string `json:"-"`
}

// Validate compares the two passwords byte for byte.
func (r ResetInput) Validate() error {
	if r.NewPassword != r.ConfirmPassword {
		return shared.Validation("passwords do not match")
	}
	if r.NewPassword == "" {
		return shared.Validation("new password is required")
	}
	return nil
}
