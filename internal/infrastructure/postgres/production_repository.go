package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var _ repository.ProductionOrderRepository = (*ProductionOrderRepo)(nil)

// ProductionOrderRepo implementación de ProductionOrderRepository sobre
// PostgreSQL (usable con pool o tx).
type ProductionOrderRepo struct {
	q Querier
}

// NewProductionOrderRepository construye el adaptador de órdenes de producción.
// Pasar pool o tx (Querier).
func NewProductionOrderRepository(q Querier) *ProductionOrderRepo {
	return &ProductionOrderRepo{q: q}
}

// Create persiste una orden nueva.
func (r *ProductionOrderRepo) Create(o *entity.ProductionOrder) error {
	query := `
		INSERT INTO production_orders (id, product_id, planned_qty, actual_qty, status, start_date, end_date, remarks, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.ProductID, o.PlannedQty, o.ActualQty, o.Status, o.StartDate, o.EndDate,
		o.Remarks, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert production order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID.
func (r *ProductionOrderRepo) GetByID(id string) (*entity.ProductionOrder, error) {
	query := `
		SELECT id, product_id, planned_qty, actual_qty, status, start_date, end_date, remarks, created_at, updated_at
		FROM production_orders WHERE id = $1`
	var o entity.ProductionOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.ProductID, &o.PlannedQty, &o.ActualQty, &o.Status, &o.StartDate, &o.EndDate,
		&o.Remarks, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production order: %w", err)
	}
	return &o, nil
}

// List lista órdenes con paginación, opcionalmente por estado.
func (r *ProductionOrderRepo) List(status string, limit, offset int) ([]*entity.ProductionOrder, error) {
	query := `
		SELECT id, product_id, planned_qty, actual_qty, status, start_date, end_date, remarks, created_at, updated_at
		FROM production_orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list production orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionOrder
	for rows.Next() {
		var o entity.ProductionOrder
		if err := rows.Scan(&o.ID, &o.ProductID, &o.PlannedQty, &o.ActualQty, &o.Status,
			&o.StartDate, &o.EndDate, &o.Remarks, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan production order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// Update actualiza una orden existente (cantidades, estado, fechas).
func (r *ProductionOrderRepo) Update(o *entity.ProductionOrder) error {
	query := `
		UPDATE production_orders SET planned_qty = $2, actual_qty = $3, status = $4,
			end_date = $5, remarks = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.PlannedQty, o.ActualQty, o.Status, o.EndDate, o.Remarks, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update production order: %w", err)
	}
	return nil
}

// CreateMaterial inserta una línea de material de la orden.
func (r *ProductionOrderRepo) CreateMaterial(m *entity.ProductionMaterial) error {
	query := `
		INSERT INTO production_materials (id, order_id, material_id, planned_qty, actual_qty)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.OrderID, m.MaterialID, m.PlannedQty, m.ActualQty,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert production material: %w", err)
	}
	return nil
}

// ListMaterials lista las líneas de material de una orden.
func (r *ProductionOrderRepo) ListMaterials(orderID string) ([]*entity.ProductionMaterial, error) {
	query := `
		SELECT id, order_id, material_id, planned_qty, actual_qty
		FROM production_materials WHERE order_id = $1 ORDER BY material_id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list production materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionMaterial
	for rows.Next() {
		var m entity.ProductionMaterial
		if err := rows.Scan(&m.ID, &m.OrderID, &m.MaterialID, &m.PlannedQty, &m.ActualQty); err != nil {
			return nil, fmt.Errorf("scan production material: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// UpdateMaterialActual fija el uso real de una línea al cierre de la orden.
func (r *ProductionOrderRepo) UpdateMaterialActual(materialID string, actualQty decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE production_materials SET actual_qty = $2 WHERE id = $1`,
		materialID, actualQty,
	)
	if err != nil {
		return fmt.Errorf("update production material: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
