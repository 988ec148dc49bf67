package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// CustomerUseCase casos de uso CRUD de clientes.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un cliente. Único por (nombre, NIT).
func (uc *CustomerUseCase) Create(in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Address:       in.Address,
		Address2:      in.Address2,
		TaxID:         in.TaxID,
		ContactPerson: in.ContactPerson,
		Phone:         in.Phone,
		Email:         in.Email,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente.
func (uc *CustomerUseCase) GetByID(id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(customer), nil
}

// List lista clientes.
func (uc *CustomerUseCase) List(limit, offset int) ([]*dto.CustomerResponse, error) {
	customers, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// Update actualiza un cliente completo.
func (uc *CustomerUseCase) Update(id string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	customer.Name = in.Name
	customer.Address = in.Address
	customer.Address2 = in.Address2
	customer.TaxID = in.TaxID
	customer.ContactPerson = in.ContactPerson
	customer.Phone = in.Phone
	customer.Email = in.Email
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Delete elimina un cliente.
func (uc *CustomerUseCase) Delete(id string) error {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:            c.ID,
		Name:          c.Name,
		Address:       c.Address,
		Address2:      c.Address2,
		TaxID:         c.TaxID,
		ContactPerson: c.ContactPerson,
		Phone:         c.Phone,
		Email:         c.Email,
	}
}
