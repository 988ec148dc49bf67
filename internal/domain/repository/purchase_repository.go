package repository

import "github.com/jhoicas/Produccion-api/internal/domain/entity"

// PurchaseOrderRepository define el puerto para órdenes de compra y sus líneas.
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	List(status string, limit, offset int) ([]*entity.PurchaseOrder, error)
	Update(order *entity.PurchaseOrder) error

	CreateLine(line *entity.PurchaseOrderLine) error
	ListLines(orderID string) ([]*entity.PurchaseOrderLine, error)
}

// SalesOrderRepository define el puerto para órdenes de venta y sus líneas.
type SalesOrderRepository interface {
	Create(order *entity.SalesOrder) error
	GetByID(id string) (*entity.SalesOrder, error)
	List(status string, limit, offset int) ([]*entity.SalesOrder, error)
	Update(order *entity.SalesOrder) error

	CreateLine(line *entity.SalesOrderLine) error
	ListLines(orderID string) ([]*entity.SalesOrderLine, error)
}
