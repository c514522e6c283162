package entity

import "time"

// Company is a tenant: every other record hangs off a company ID.
type Company struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	TaxID     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
