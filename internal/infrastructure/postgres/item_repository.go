package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de artículos. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un artículo nuevo. (Name, Type) es único.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (id, name, type, category, unit, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Type, item.Category, item.Unit, item.Status,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	query := `
		SELECT id, name, type, category, unit, status, created_at, updated_at
		FROM items WHERE id = $1`
	var i entity.Item
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&i.ID, &i.Name, &i.Type, &i.Category, &i.Unit, &i.Status, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &i, nil
}

// GetByNameAndType obtiene un artículo por nombre y tipo.
func (r *ItemRepo) GetByNameAndType(name, itemType string) (*entity.Item, error) {
	query := `
		SELECT id, name, type, category, unit, status, created_at, updated_at
		FROM items WHERE name = $1 AND type = $2`
	var i entity.Item
	err := r.q.QueryRow(context.Background(), query, name, itemType).Scan(
		&i.ID, &i.Name, &i.Type, &i.Category, &i.Unit, &i.Status, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item by name: %w", err)
	}
	return &i, nil
}

// List lista artículos con paginación. Excluye borrados lógicos salvo includeDeleted.
func (r *ItemRepo) List(includeDeleted bool, limit, offset int) ([]*entity.Item, error) {
	query := `
		SELECT id, name, type, category, unit, status, created_at, updated_at
		FROM items
		WHERE ($1 OR status <> 'deleted')
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, includeDeleted, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var i entity.Item
		if err := rows.Scan(&i.ID, &i.Name, &i.Type, &i.Category, &i.Unit, &i.Status, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

// Update actualiza los datos descriptivos de un artículo.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items SET name = $2, category = $3, unit = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Category, item.Unit, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// SoftDelete marca el artículo como borrado. La fila permanece: fórmulas y
// órdenes históricas siguen referenciándola.
func (r *ItemRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE items SET status = 'deleted', updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete item: %w", err)
	}
	return nil
}
