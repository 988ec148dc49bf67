package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene la cantidad actual de un artículo. Sin fila, cantidad 0.
func (r *StockRepo) Get(itemID string, isProduct bool) (*entity.Stock, error) {
	query := `
		SELECT item_id, is_product, quantity, updated_at
		FROM stock WHERE item_id = $1 AND is_product = $2`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, itemID, isProduct).Scan(
		&s.ItemID, &s.IsProduct, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ItemID: itemID, IsProduct: isProduct, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad en stock (por artículo y clase).
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (item_id, is_product, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (item_id, is_product)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, stock.ItemID, stock.IsProduct, stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
// Sin fila no hay nada que bloquear: se devuelve cantidad 0 y el Upsert posterior
// la crea dentro de la misma tx.
func (r *StockRepo) GetForUpdate(itemID string, isProduct bool) (*entity.Stock, error) {
	query := `
		SELECT item_id, is_product, quantity, updated_at
		FROM stock WHERE item_id = $1 AND is_product = $2
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, itemID, isProduct).Scan(
		&s.ItemID, &s.IsProduct, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ItemID: itemID, IsProduct: isProduct, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

var _ repository.StockLedgerRepository = (*StockLedgerRepo)(nil)

// StockLedgerRepo implementación del libro de movimientos (append-only) sobre
// PostgreSQL. Solo inserta y lista: no hay UPDATE ni DELETE sobre asientos.
type StockLedgerRepo struct {
	q Querier
}

// NewStockLedgerRepository construye el adaptador del libro. Pasar pool o tx (Querier).
func NewStockLedgerRepository(q Querier) *StockLedgerRepo {
	return &StockLedgerRepo{q: q}
}

// Append inserta un asiento.
func (r *StockLedgerRepo) Append(e *entity.StockLedgerEntry) error {
	query := `
		INSERT INTO stock_ledger (id, transaction_id, item_id, is_product, change_qty, old_qty, new_qty, change_type, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.TransactionID, e.ItemID, e.IsProduct, e.ChangeQty, e.OldQty, e.NewQty,
		e.ChangeType, e.Reason, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append stock ledger: %w", err)
	}
	return nil
}

// ListByItem lista los asientos de un artículo, del más reciente al más antiguo.
func (r *StockLedgerRepo) ListByItem(itemID string, isProduct bool, limit, offset int) ([]*entity.StockLedgerEntry, error) {
	query := `
		SELECT id, transaction_id, item_id, is_product, change_qty, old_qty, new_qty, change_type, reason, created_at
		FROM stock_ledger
		WHERE item_id = $1 AND is_product = $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, itemID, isProduct, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock ledger: %w", err)
	}
	defer rows.Close()
	return scanLedgerEntries(rows)
}

// ListByTransaction lista los asientos emitidos por una misma operación.
func (r *StockLedgerRepo) ListByTransaction(transactionID string) ([]*entity.StockLedgerEntry, error) {
	query := `
		SELECT id, transaction_id, item_id, is_product, change_qty, old_qty, new_qty, change_type, reason, created_at
		FROM stock_ledger
		WHERE transaction_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list stock ledger by transaction: %w", err)
	}
	defer rows.Close()
	return scanLedgerEntries(rows)
}

func scanLedgerEntries(rows pgx.Rows) ([]*entity.StockLedgerEntry, error) {
	var list []*entity.StockLedgerEntry
	for rows.Next() {
		var e entity.StockLedgerEntry
		if err := rows.Scan(&e.ID, &e.TransactionID, &e.ItemID, &e.IsProduct, &e.ChangeQty,
			&e.OldQty, &e.NewQty, &e.ChangeType, &e.Reason, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock ledger entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
