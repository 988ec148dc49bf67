package entity

import "time"

// Tipos de artículo del catálogo.
const (
	ItemTypeRawMaterial     = "raw_material"
	ItemTypeFinishedProduct = "finished_product"
	ItemTypeSemiFinished    = "semi_finished"
	ItemTypePackaging       = "packaging"
)

// Estados de un artículo. El borrado es lógico: una vez referenciado por
// fórmulas u órdenes el registro nunca se elimina físicamente.
const (
	ItemStatusActive  = "active"
	ItemStatusDeleted = "deleted"
)

// Item representa un artículo del catálogo (materia prima, producto terminado,
// semielaborado o empaque). Único por (Name, Type).
type Item struct {
	ID        string
	Name      string
	Type      string
	Category  string
	Unit      string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive indica si el artículo está activo (no borrado lógicamente).
func (i *Item) IsActive() bool {
	return i.Status == ItemStatusActive
}

// ValidItemType verifica que el tipo sea uno de los conocidos.
func ValidItemType(t string) bool {
	switch t {
	case ItemTypeRawMaterial, ItemTypeFinishedProduct, ItemTypeSemiFinished, ItemTypePackaging:
		return true
	}
	return false
}
