package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD del catálogo de artículos. El borrado es
// lógico (Status = deleted): una vez referenciado por fórmulas u órdenes, el
// artículo nunca se elimina físicamente.
type ItemUseCase struct {
	repo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo}
}

// Create crea un artículo. Único por (nombre, tipo).
func (uc *ItemUseCase) Create(in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.Name == "" || !entity.ValidItemType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByNameAndType(in.Name, in.Type)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	item := &entity.Item{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Type:      in.Type,
		Category:  in.Category,
		Unit:      in.Unit,
		Status:    entity.ItemStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un artículo por ID (incluye borrados: el histórico los referencia).
func (uc *ItemUseCase) GetByID(id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

// List lista artículos activos; includeDeleted incluye los borrados lógicos.
func (uc *ItemUseCase) List(includeDeleted bool, limit, offset int) ([]*dto.ItemResponse, error) {
	items, err := uc.repo.List(includeDeleted, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toItemResponse(it))
	}
	return out, nil
}

// Update actualización parcial: solo los campos presentes se aplican.
// El tipo no es modificable después del alta.
func (uc *ItemUseCase) Update(id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		item.Name = *in.Name
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.Unit != nil {
		item.Unit = *in.Unit
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Delete borrado lógico: marca Status = deleted, la fila permanece.
func (uc *ItemUseCase) Delete(id string) error {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.repo.SoftDelete(id)
}

func toItemResponse(i *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:        i.ID,
		Name:      i.Name,
		Type:      i.Type,
		Category:  i.Category,
		Unit:      i.Unit,
		Status:    i.Status,
		CreatedAt: i.CreatedAt,
	}
}
