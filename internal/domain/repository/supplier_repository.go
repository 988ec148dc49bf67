package repository

import "github.com/jhoicas/Produccion-api/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para proveedores.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	List(limit, offset int) ([]*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	Delete(id string) error
}

// CustomerRepository define el puerto de persistencia para clientes.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	List(limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	Delete(id string) error
}
