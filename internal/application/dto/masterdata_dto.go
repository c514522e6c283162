package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Company ───────────────────────────────────────────────────────────────────

type CreateCompanyRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	TaxID   string `json:"tax_id,omitempty"`
}

type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	TaxID     string    `json:"tax_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ── Department ────────────────────────────────────────────────────────────────

type CreateDepartmentRequest struct {
	Name string `json:"name" validate:"required"`
}

type DepartmentResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ── Product ───────────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	SKU         string          `json:"sku" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	Cost        decimal.Decimal `json:"cost" validate:"gte=0"`
	TaxRate     decimal.Decimal `json:"tax_rate" validate:"gte=0,lte=100"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Cost        *decimal.Decimal `json:"cost,omitempty"`
	TaxRate     *decimal.Decimal `json:"tax_rate,omitempty"`
}

type ProductResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Stock       decimal.Decimal `json:"stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ── Customer / Supplier (same request shape, different endpoints) ─────────────

type CreatePartyRequest struct {
	Name    string `json:"name" validate:"required"`
	TaxID   string `json:"tax_id,omitempty"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

type PartyResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ── Account ───────────────────────────────────────────────────────────────────

type CreateAccountRequest struct {
	Name    string          `json:"name" validate:"required"`
	Type    string          `json:"type" validate:"required,oneof=cash bank"`
	Number  string          `json:"number,omitempty"`
	Balance decimal.Decimal `json:"balance" validate:"gte=0"`
}

type AccountResponse struct {
	ID        string          `json:"id"`
	CompanyID string          `json:"company_id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Number    string          `json:"number,omitempty"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ── Employee ──────────────────────────────────────────────────────────────────

type CreateEmployeeRequest struct {
	DepartmentID string          `json:"department_id,omitempty"`
	Name         string          `json:"name" validate:"required"`
	Email        string          `json:"email,omitempty" validate:"omitempty,email"`
	Phone        string          `json:"phone,omitempty"`
	Designation  string          `json:"designation,omitempty"`
	BasePay      decimal.Decimal `json:"base_pay" validate:"gte=0"`
}

type EmployeeResponse struct {
	ID           string          `json:"id"`
	CompanyID    string          `json:"company_id"`
	DepartmentID string          `json:"department_id,omitempty"`
	Name         string          `json:"name"`
	Email        string          `json:"email,omitempty"`
	Phone        string          `json:"phone,omitempty"`
	Designation  string          `json:"designation,omitempty"`
	BasePay      decimal.Decimal `json:"base_pay"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ── User administration ───────────────────────────────────────────────────────

type UpdateUserRequest struct {
	Name         *string `json:"name,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	Role         *string `json:"role,omitempty" validate:"omitempty,oneof=admin accountant staff"`
	Status       *string `json:"status,omitempty" validate:"omitempty,oneof=active disabled"`
}

// ── List envelopes ────────────────────────────────────────────────────────────

type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

type DepartmentListResponse struct {
	Items []DepartmentResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

type PartyListResponse struct {
	Items []PartyResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

type AccountListResponse struct {
	Items []AccountResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

type EmployeeListResponse struct {
	Items []EmployeeResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
