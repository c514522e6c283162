package entity

import "time"

// Department groups users and employees inside a company.
type Department struct {
	ID        string
	CompanyID string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
