package entity

import "time"

// Customer representa un cliente. Único por (Name, TaxID).
type Customer struct {
	ID            string
	Name          string
	Address       string
	Address2      string
	TaxID         string
	ContactPerson string
	Phone         string
	Email         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
