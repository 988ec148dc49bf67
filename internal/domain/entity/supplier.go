package entity

import "time"

// Supplier representa un proveedor de materias primas o empaques.
type Supplier struct {
	ID            string
	Name          string
	Address       string
	ContactPerson string
	Phone         string
	Email         string
	Website       string
	TaxID         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
