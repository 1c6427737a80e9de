package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Role string

const (
	RoleAdmin Role = "Admin"
	RoleStaff Role = "Staff"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name,omitempty"`
	PhotoURL     string    `json:"photo_url,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// RegisterRequest payload of sign-up.
// swagger:model RegisterRequest
type RegisterRequest struct {
	Email       string `json:"email"        example:"staff@example.com"`
	Password    string `json:"password"     example:"s3cret!"`
	DisplayName string `json:"display_name" example:"Ana"`
}

// LoginRequest payload of sign-in.
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email"    example:"staff@example.com"`
	Password string `json:"password" example:"s3cret!"`
}

// UpdateProfileRequest payload of partial update; empty fields are kept.
// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url"`
	Password    string `json:"password"`
}
