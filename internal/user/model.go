package user

import "time"

type User struct {
	ID           int       `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	IsAdmin      bool      `db:"is_admin" json:"is_admin"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Profile is the shape the client keeps in its auth context.
type Profile struct {
	ID      int    `json:"id" example:"1"`
	Email   string `json:"email" example:"user@example.com"`
	IsAdmin bool   `json:"is_admin" example:"false"`
}

func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Email: u.Email, IsAdmin: u.IsAdmin}
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=120"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Success bool    `json:"success" example:"true"`
	User    Profile `json:"user"`
}

type MeResponse struct {
	User *Profile `json:"user"`
}
