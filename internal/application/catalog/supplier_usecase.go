package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// SupplierUseCase casos de uso CRUD de proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create crea un proveedor.
func (uc *SupplierUseCase) Create(in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Address:       in.Address,
		ContactPerson: in.ContactPerson,
		Phone:         in.Phone,
		Email:         in.Email,
		Website:       in.Website,
		TaxID:         in.TaxID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// GetByID obtiene un proveedor.
func (uc *SupplierUseCase) GetByID(id string) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	return toSupplierResponse(supplier), nil
}

// List lista proveedores.
func (uc *SupplierUseCase) List(limit, offset int) ([]*dto.SupplierResponse, error) {
	suppliers, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SupplierResponse, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, toSupplierResponse(s))
	}
	return out, nil
}

// Update actualiza un proveedor completo.
func (uc *SupplierUseCase) Update(id string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	supplier.Name = in.Name
	supplier.Address = in.Address
	supplier.ContactPerson = in.ContactPerson
	supplier.Phone = in.Phone
	supplier.Email = in.Email
	supplier.Website = in.Website
	supplier.TaxID = in.TaxID
	supplier.UpdatedAt = time.Now()
	if err := uc.repo.Update(supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// Delete elimina un proveedor.
func (uc *SupplierUseCase) Delete(id string) error {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		Address:       s.Address,
		ContactPerson: s.ContactPerson,
		Phone:         s.Phone,
		Email:         s.Email,
		Website:       s.Website,
		TaxID:         s.TaxID,
	}
}
