package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// ProductionOrderRepository define el puerto para órdenes de producción y sus
// líneas de material. Usado dentro de transacciones en el cierre de órdenes.
type ProductionOrderRepository interface {
	Create(order *entity.ProductionOrder) error
	GetByID(id string) (*entity.ProductionOrder, error)
	List(status string, limit, offset int) ([]*entity.ProductionOrder, error)
	Update(order *entity.ProductionOrder) error

	CreateMaterial(material *entity.ProductionMaterial) error
	ListMaterials(orderID string) ([]*entity.ProductionMaterial, error)
	UpdateMaterialActual(materialID string, actualQty decimal.Decimal) error
}
