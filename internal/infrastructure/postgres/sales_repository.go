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

var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

// SalesOrderRepo implementación de SalesOrderRepository sobre PostgreSQL
// (usable con pool o tx).
type SalesOrderRepo struct {
	q Querier
}

// NewSalesOrderRepository construye el adaptador de órdenes de venta.
// Pasar pool o tx (Querier).
func NewSalesOrderRepository(q Querier) *SalesOrderRepo {
	return &SalesOrderRepo{q: q}
}

// Create persiste una orden nueva.
func (r *SalesOrderRepo) Create(o *entity.SalesOrder) error {
	query := `
		INSERT INTO sales_orders (id, customer_id, order_date, status, remarks, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.CustomerID, o.OrderDate, o.Status, o.Remarks, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert sales order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID.
func (r *SalesOrderRepo) GetByID(id string) (*entity.SalesOrder, error) {
	query := `
		SELECT id, customer_id, order_date, status, remarks, created_at, updated_at
		FROM sales_orders WHERE id = $1`
	var o entity.SalesOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.CustomerID, &o.OrderDate, &o.Status, &o.Remarks, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales order: %w", err)
	}
	return &o, nil
}

// List lista órdenes con paginación, opcionalmente por estado.
func (r *SalesOrderRepo) List(status string, limit, offset int) ([]*entity.SalesOrder, error) {
	query := `
		SELECT id, customer_id, order_date, status, remarks, created_at, updated_at
		FROM sales_orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY order_date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesOrder
	for rows.Next() {
		var o entity.SalesOrder
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.OrderDate, &o.Status, &o.Remarks,
			&o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sales order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// Update actualiza una orden existente (estado, observaciones).
func (r *SalesOrderRepo) Update(o *entity.SalesOrder) error {
	query := `
		UPDATE sales_orders SET status = $2, remarks = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, o.ID, o.Status, o.Remarks, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update sales order: %w", err)
	}
	return nil
}

// CreateLine inserta una línea de la orden.
func (r *SalesOrderRepo) CreateLine(l *entity.SalesOrderLine) error {
	query := `
		INSERT INTO sales_order_lines (id, order_id, item_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query, l.ID, l.OrderID, l.ItemID, l.Quantity, l.UnitPrice)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert sales order line: %w", err)
	}
	return nil
}

// ListLines lista las líneas de una orden.
func (r *SalesOrderRepo) ListLines(orderID string) ([]*entity.SalesOrderLine, error) {
	query := `
		SELECT id, order_id, item_id, quantity, unit_price
		FROM sales_order_lines WHERE order_id = $1 ORDER BY item_id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list sales order lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesOrderLine
	for rows.Next() {
		var l entity.SalesOrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ItemID, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan sales order line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
