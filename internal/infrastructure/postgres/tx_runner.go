package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Produccion-api/internal/application/bom"
	"github.com/jhoicas/Produccion-api/internal/application/catalog"
	"github.com/jhoicas/Produccion-api/internal/application/production"
	"github.com/jhoicas/Produccion-api/internal/application/purchasing"
	"github.com/jhoicas/Produccion-api/internal/application/sales"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// Ensure TxRunner implements the transactional ports of every use case area.
var _ production.TxRunner = (*TxRunner)(nil)
var _ bom.TxRunner = (*TxRunner)(nil)
var _ catalog.TxRunner = (*TxRunner)(nil)
var _ purchasing.TxRunner = (*TxRunner)(nil)
var _ sales.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con repos de stock, libro y órdenes de producción
// atados a la tx, y hace Commit o Rollback según el resultado de fn.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	ledgerRepo repository.StockLedgerRepository,
	orderRepo repository.ProductionOrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockRepository(tx), NewStockLedgerRepository(tx), NewProductionOrderRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunFormula inicia una transacción con repos de fórmulas e histórico de precios
// (adopción de precios de proveedor).
func (r *TxRunner) RunFormula(ctx context.Context, fn func(
	formulaRepo repository.FormulaRepository,
	priceRepo repository.PriceHistoryRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewFormulaRepository(tx), NewPriceHistoryRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunQuote inicia una transacción con repos de cotizaciones e histórico de precios.
func (r *TxRunner) RunQuote(ctx context.Context, fn func(
	quoteRepo repository.SupplierQuoteRepository,
	priceRepo repository.PriceHistoryRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewSupplierQuoteRepository(tx), NewPriceHistoryRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunPurchase inicia una transacción con repos de stock, libro y órdenes de
// compra (recepción de mercancía).
func (r *TxRunner) RunPurchase(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	ledgerRepo repository.StockLedgerRepository,
	purchaseRepo repository.PurchaseOrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockRepository(tx), NewStockLedgerRepository(tx), NewPurchaseOrderRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSales inicia una transacción con repos de stock, libro y órdenes de venta
// (despacho de mercancía).
func (r *TxRunner) RunSales(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	ledgerRepo repository.StockLedgerRepository,
	salesRepo repository.SalesOrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockRepository(tx), NewStockLedgerRepository(tx), NewSalesOrderRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
