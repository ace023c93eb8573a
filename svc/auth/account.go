package auth

import "time"

// Role is the account's authorization role.
type Role string

// RoleUser is assigned to every registered account.
const RoleUser Role = "USER"

// Account is the persisted identity record.
type Account struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Summary is the client-visible part of an account. It never includes the
// password digest.
type Summary struct {
	ID        string `json:"id"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
}

// Summary returns the client-visible fields of a.
func (a *Account) Summary() Summary {
	return Summary{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		Role:      a.Role,
	}
}

// RegisterInput is a registration attempt. ConfirmPassword is optional.
type RegisterInput struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// LoginInput is a login attempt.
type LoginInput struct {
	Email    string
	Password string
}

// Session is the result of a successful register or login.
type Session struct {
	Account Summary
	Token   string
}
