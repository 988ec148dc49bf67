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

var _ repository.SupplierQuoteRepository = (*SupplierQuoteRepo)(nil)

// SupplierQuoteRepo implementación de SupplierQuoteRepository sobre PostgreSQL
// (usable con pool o tx).
type SupplierQuoteRepo struct {
	q Querier
}

// NewSupplierQuoteRepository construye el adaptador de cotizaciones. Pasar pool o tx (Querier).
func NewSupplierQuoteRepository(q Querier) *SupplierQuoteRepo {
	return &SupplierQuoteRepo{q: q}
}

// Create persiste una cotización nueva.
func (r *SupplierQuoteRepo) Create(quote *entity.SupplierQuote) error {
	query := `
		INSERT INTO supplier_quotes (id, supplier_id, item_id, price_per_kg, moq, lead_time_days, safety_stock, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		quote.ID, quote.SupplierID, quote.ItemID, quote.PricePerKg, quote.MOQ,
		quote.LeadTimeDays, quote.SafetyStock, quote.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert supplier quote: %w", err)
	}
	return nil
}

// GetByID obtiene una cotización por ID.
func (r *SupplierQuoteRepo) GetByID(id string) (*entity.SupplierQuote, error) {
	query := `
		SELECT id, supplier_id, item_id, price_per_kg, moq, lead_time_days, safety_stock, created_at
		FROM supplier_quotes WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetLatest devuelve la cotización más reciente para (proveedor, artículo),
// o (nil, nil) si no existe ninguna.
func (r *SupplierQuoteRepo) GetLatest(supplierID, itemID string) (*entity.SupplierQuote, error) {
	query := `
		SELECT id, supplier_id, item_id, price_per_kg, moq, lead_time_days, safety_stock, created_at
		FROM supplier_quotes
		WHERE supplier_id = $1 AND item_id = $2
		ORDER BY created_at DESC LIMIT 1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, supplierID, itemID))
}

// ListByItem lista cotizaciones de un artículo (todas las de sus proveedores).
func (r *SupplierQuoteRepo) ListByItem(itemID string, limit, offset int) ([]*entity.SupplierQuote, error) {
	query := `
		SELECT id, supplier_id, item_id, price_per_kg, moq, lead_time_days, safety_stock, created_at
		FROM supplier_quotes
		WHERE item_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list supplier quotes: %w", err)
	}
	defer rows.Close()
	var list []*entity.SupplierQuote
	for rows.Next() {
		var s entity.SupplierQuote
		if err := rows.Scan(&s.ID, &s.SupplierID, &s.ItemID, &s.PricePerKg, &s.MOQ,
			&s.LeadTimeDays, &s.SafetyStock, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier quote: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Update actualiza una cotización existente.
func (r *SupplierQuoteRepo) Update(quote *entity.SupplierQuote) error {
	query := `
		UPDATE supplier_quotes SET price_per_kg = $2, moq = $3, lead_time_days = $4, safety_stock = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		quote.ID, quote.PricePerKg, quote.MOQ, quote.LeadTimeDays, quote.SafetyStock,
	)
	if err != nil {
		return fmt.Errorf("update supplier quote: %w", err)
	}
	return nil
}

// Delete elimina una cotización.
func (r *SupplierQuoteRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM supplier_quotes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete supplier quote: %w", err)
	}
	return nil
}

func (r *SupplierQuoteRepo) scanOne(row pgx.Row) (*entity.SupplierQuote, error) {
	var s entity.SupplierQuote
	err := row.Scan(&s.ID, &s.SupplierID, &s.ItemID, &s.PricePerKg, &s.MOQ,
		&s.LeadTimeDays, &s.SafetyStock, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier quote: %w", err)
	}
	return &s, nil
}

var _ repository.PriceHistoryRepository = (*PriceHistoryRepo)(nil)

// PriceHistoryRepo implementación del histórico de precios (append-only) sobre
// PostgreSQL. Solo inserta y lista: el histórico nunca se corrige in situ.
type PriceHistoryRepo struct {
	q Querier
}

// NewPriceHistoryRepository construye el adaptador del histórico. Pasar pool o tx (Querier).
func NewPriceHistoryRepository(q Querier) *PriceHistoryRepo {
	return &PriceHistoryRepo{q: q}
}

// Append inserta un registro de precio.
func (r *PriceHistoryRepo) Append(e *entity.PriceHistoryEntry) error {
	query := `
		INSERT INTO price_history (id, item_id, price, effective_date, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.ItemID, e.Price, e.EffectiveDate, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append price history: %w", err)
	}
	return nil
}

// ListByItem lista el histórico de un artículo, del más reciente al más antiguo.
func (r *PriceHistoryRepo) ListByItem(itemID string, limit, offset int) ([]*entity.PriceHistoryEntry, error) {
	query := `
		SELECT id, item_id, price, effective_date, created_at
		FROM price_history
		WHERE item_id = $1 ORDER BY effective_date DESC, created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list price history: %w", err)
	}
	defer rows.Close()
	var list []*entity.PriceHistoryEntry
	for rows.Next() {
		var e entity.PriceHistoryEntry
		if err := rows.Scan(&e.ID, &e.ItemID, &e.Price, &e.EffectiveDate, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan price history: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
