package repository

import "github.com/jhoicas/Produccion-api/internal/domain/entity"

// ItemRepository define el puerto de persistencia para el catálogo de artículos.
// Los listados filtran borrados lógicos salvo que se pida lo contrario.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	GetByNameAndType(name, itemType string) (*entity.Item, error)
	List(includeDeleted bool, limit, offset int) ([]*entity.Item, error)
	Update(item *entity.Item) error
	// SoftDelete marca el artículo como borrado (Status = deleted); nunca se elimina la fila.
	SoftDelete(id string) error
}
