package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is a payroll subject; BasePay seeds the salary document form.
type Employee struct {
	ID           string
	CompanyID    string
	DepartmentID string
	Name         string
	Email        string
	Phone        string
	Designation  string
	BasePay      decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
