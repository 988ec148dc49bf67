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

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de PurchaseOrderRepository sobre PostgreSQL
// (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador de órdenes de compra.
// Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste una orden nueva.
func (r *PurchaseOrderRepo) Create(o *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, supplier_id, order_date, status, remarks, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.SupplierID, o.OrderDate, o.Status, o.Remarks, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	query := `
		SELECT id, supplier_id, order_date, status, remarks, created_at, updated_at
		FROM purchase_orders WHERE id = $1`
	var o entity.PurchaseOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.SupplierID, &o.OrderDate, &o.Status, &o.Remarks, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return &o, nil
}

// List lista órdenes con paginación, opcionalmente por estado.
func (r *PurchaseOrderRepo) List(status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `
		SELECT id, supplier_id, order_date, status, remarks, created_at, updated_at
		FROM purchase_orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY order_date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		var o entity.PurchaseOrder
		if err := rows.Scan(&o.ID, &o.SupplierID, &o.OrderDate, &o.Status, &o.Remarks,
			&o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// Update actualiza una orden existente (estado, observaciones).
func (r *PurchaseOrderRepo) Update(o *entity.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders SET status = $2, remarks = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, o.ID, o.Status, o.Remarks, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	return nil
}

// CreateLine inserta una línea de la orden.
func (r *PurchaseOrderRepo) CreateLine(l *entity.PurchaseOrderLine) error {
	query := `
		INSERT INTO purchase_order_lines (id, order_id, item_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query, l.ID, l.OrderID, l.ItemID, l.Quantity, l.UnitPrice)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert purchase order line: %w", err)
	}
	return nil
}

// ListLines lista las líneas de una orden.
func (r *PurchaseOrderRepo) ListLines(orderID string) ([]*entity.PurchaseOrderLine, error) {
	query := `
		SELECT id, order_id, item_id, quantity, unit_price
		FROM purchase_order_lines WHERE order_id = $1 ORDER BY item_id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list purchase order lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrderLine
	for rows.Next() {
		var l entity.PurchaseOrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ItemID, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan purchase order line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
