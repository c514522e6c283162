package dto

import "time"

// RegisterRequest body for POST /api/auth/register.
type RegisterRequest struct {
	CompanyID    string `json:"company_id" validate:"required"`
	DepartmentID string `json:"department_id,omitempty"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	Name         string `json:"name,omitempty"`
	Role         string `json:"role,omitempty" validate:"omitempty,oneof=admin accountant staff"`
}

// LoginRequest body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token plus the denormalized user the console keeps client-side.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse user in responses (never carries the password hash).
type UserResponse struct {
	ID           string    `json:"id"`
	CompanyID    string    `json:"company_id"`
	DepartmentID string    `json:"department_id,omitempty"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
