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

var _ repository.FormulaRepository = (*FormulaRepo)(nil)

// FormulaRepo implementación de FormulaRepository sobre PostgreSQL (usable con pool o tx).
type FormulaRepo struct {
	q Querier
}

// NewFormulaRepository construye el adaptador de fórmulas. Pasar pool o tx (Querier).
func NewFormulaRepository(q Querier) *FormulaRepo {
	return &FormulaRepo{q: q}
}

// CreateHeader persiste el encabezado de una fórmula. (ProductID, Version) es único.
func (r *FormulaRepo) CreateHeader(h *entity.FormulaHeader) error {
	query := `
		INSERT INTO formula_headers (id, product_id, version, total_weight, effective_date, expire_date, remarks, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		h.ID, h.ProductID, h.Version, h.TotalWeight, h.EffectiveDate, h.ExpireDate,
		h.Remarks, h.CreatedAt, h.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert formula header: %w", err)
	}
	return nil
}

// GetHeader obtiene un encabezado por ID.
func (r *FormulaRepo) GetHeader(id string) (*entity.FormulaHeader, error) {
	query := `
		SELECT id, product_id, version, total_weight, effective_date, expire_date, remarks, created_at, updated_at
		FROM formula_headers WHERE id = $1`
	var h entity.FormulaHeader
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&h.ID, &h.ProductID, &h.Version, &h.TotalWeight, &h.EffectiveDate, &h.ExpireDate,
		&h.Remarks, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get formula header: %w", err)
	}
	return &h, nil
}

// ListHeadersByProduct lista las versiones de fórmula de un producto,
// de la más reciente a la más antigua por fecha de vigencia.
func (r *FormulaRepo) ListHeadersByProduct(productID string) ([]*entity.FormulaHeader, error) {
	query := `
		SELECT id, product_id, version, total_weight, effective_date, expire_date, remarks, created_at, updated_at
		FROM formula_headers
		WHERE product_id = $1 ORDER BY effective_date DESC`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list formula headers: %w", err)
	}
	defer rows.Close()
	var list []*entity.FormulaHeader
	for rows.Next() {
		var h entity.FormulaHeader
		if err := rows.Scan(&h.ID, &h.ProductID, &h.Version, &h.TotalWeight, &h.EffectiveDate,
			&h.ExpireDate, &h.Remarks, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan formula header: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}

// UpdateHeader actualiza un encabezado existente.
func (r *FormulaRepo) UpdateHeader(h *entity.FormulaHeader) error {
	query := `
		UPDATE formula_headers SET version = $2, total_weight = $3, effective_date = $4,
			expire_date = $5, remarks = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		h.ID, h.Version, h.TotalWeight, h.EffectiveDate, h.ExpireDate, h.Remarks, h.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update formula header: %w", err)
	}
	return nil
}

// DeleteHeader elimina un encabezado y, por cascada, sus detalles.
func (r *FormulaRepo) DeleteHeader(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM formula_headers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete formula header: %w", err)
	}
	return nil
}

// AddDetail inserta un componente. (HeaderID, ComponentID) es único.
func (r *FormulaRepo) AddDetail(d *entity.FormulaDetail) error {
	query := `
		INSERT INTO formula_details (id, header_id, component_id, quantity, unit, scrap_rate, supplier_id, price_per_gram, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.HeaderID, d.ComponentID, d.Quantity, d.Unit, d.ScrapRate,
		nullIfEmpty(d.SupplierID), d.PricePerGram, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateComponent
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert formula detail: %w", err)
	}
	return nil
}

// GetDetail obtiene un componente por ID.
func (r *FormulaRepo) GetDetail(id string) (*entity.FormulaDetail, error) {
	query := `
		SELECT id, header_id, component_id, quantity, unit, scrap_rate, COALESCE(supplier_id, ''), price_per_gram, created_at, updated_at
		FROM formula_details WHERE id = $1`
	return r.scanDetail(r.q.QueryRow(context.Background(), query, id))
}

// GetDetailByComponent devuelve el detalle de un componente dentro de una
// fórmula, o (nil, nil) si el componente no está en ella.
func (r *FormulaRepo) GetDetailByComponent(headerID, componentID string) (*entity.FormulaDetail, error) {
	query := `
		SELECT id, header_id, component_id, quantity, unit, scrap_rate, COALESCE(supplier_id, ''), price_per_gram, created_at, updated_at
		FROM formula_details WHERE header_id = $1 AND component_id = $2`
	return r.scanDetail(r.q.QueryRow(context.Background(), query, headerID, componentID))
}

// ListDetails lista los componentes de una fórmula en orden de inserción.
func (r *FormulaRepo) ListDetails(headerID string) ([]*entity.FormulaDetail, error) {
	query := `
		SELECT id, header_id, component_id, quantity, unit, scrap_rate, COALESCE(supplier_id, ''), price_per_gram, created_at, updated_at
		FROM formula_details WHERE header_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, headerID)
	if err != nil {
		return nil, fmt.Errorf("list formula details: %w", err)
	}
	defer rows.Close()
	var list []*entity.FormulaDetail
	for rows.Next() {
		var d entity.FormulaDetail
		if err := rows.Scan(&d.ID, &d.HeaderID, &d.ComponentID, &d.Quantity, &d.Unit,
			&d.ScrapRate, &d.SupplierID, &d.PricePerGram, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan formula detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// UpdateDetail actualiza un componente existente.
func (r *FormulaRepo) UpdateDetail(d *entity.FormulaDetail) error {
	query := `
		UPDATE formula_details SET quantity = $2, unit = $3, scrap_rate = $4,
			supplier_id = $5, price_per_gram = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.Quantity, d.Unit, d.ScrapRate, nullIfEmpty(d.SupplierID), d.PricePerGram, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update formula detail: %w", err)
	}
	return nil
}

// DeleteDetail elimina un componente de la fórmula.
func (r *FormulaRepo) DeleteDetail(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM formula_details WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete formula detail: %w", err)
	}
	return nil
}

func (r *FormulaRepo) scanDetail(row pgx.Row) (*entity.FormulaDetail, error) {
	var d entity.FormulaDetail
	err := row.Scan(&d.ID, &d.HeaderID, &d.ComponentID, &d.Quantity, &d.Unit,
		&d.ScrapRate, &d.SupplierID, &d.PricePerGram, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get formula detail: %w", err)
	}
	return &d, nil
}

// nullIfEmpty convierte "" en NULL para columnas con FK opcional.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo implementación de RecipeRepository sobre PostgreSQL (usable con pool o tx).
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador de recetas. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// Create inserta una línea de receta.
func (r *RecipeRepo) Create(l *entity.RecipeLine) error {
	query := `
		INSERT INTO recipe_lines (id, product_id, material_id, qty_per_unit, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.ProductID, l.MaterialID, l.QtyPerUnit, l.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert recipe line: %w", err)
	}
	return nil
}

// ListByProduct lista la receta de un producto en orden de inserción.
func (r *RecipeRepo) ListByProduct(productID string) ([]*entity.RecipeLine, error) {
	query := `
		SELECT id, product_id, material_id, qty_per_unit, created_at
		FROM recipe_lines WHERE product_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list recipe lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.RecipeLine
	for rows.Next() {
		var l entity.RecipeLine
		if err := rows.Scan(&l.ID, &l.ProductID, &l.MaterialID, &l.QtyPerUnit, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recipe line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Delete elimina una línea de receta.
func (r *RecipeRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM recipe_lines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete recipe line: %w", err)
	}
	return nil
}
