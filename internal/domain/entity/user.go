package entity

import "time"

// Application roles.
const (
	RoleAdmin      = "admin"
	RoleAccountant = "accountant"
	RoleStaff      = "staff"
)

// User is a console login. Role drives the RBAC middleware.
type User struct {
	ID           string
	CompanyID    string
	DepartmentID string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
