package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// UseCase casos de uso de ventas: crear órdenes y despacharlas. El despacho
// descuenta stock de producto terminado con asiento de tipo "sale". El stock
// puede quedar negativo (la física del despacho manda); se advierte por log.
type UseCase struct {
	txRunner     TxRunner
	salesRepo    repository.SalesOrderRepository
	customerRepo repository.CustomerRepository
	itemRepo     repository.ItemRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	salesRepo repository.SalesOrderRepository,
	customerRepo repository.CustomerRepository,
	itemRepo repository.ItemRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		salesRepo:    salesRepo,
		customerRepo: customerRepo,
		itemRepo:     itemRepo,
	}
}

// CreateOrder crea una orden de venta con sus líneas en estado Open. Solo se
// venden productos terminados activos.
func (uc *UseCase) CreateOrder(in dto.CreateSalesOrderRequest) (*dto.SalesOrderResponse, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	for _, l := range in.Lines {
		if !l.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		item, err := uc.itemRepo.GetByID(l.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil || !item.IsActive() {
			return nil, domain.ErrNotFound
		}
		if item.Type != entity.ItemTypeFinishedProduct {
			return nil, domain.ErrInvalidInput
		}
	}
	now := time.Now()
	orderDate := in.OrderDate
	if orderDate.IsZero() {
		orderDate = now
	}
	order := &entity.SalesOrder{
		ID:         uuid.New().String(),
		CustomerID: in.CustomerID,
		OrderDate:  orderDate,
		Status:     entity.SalesStatusOpen,
		Remarks:    in.Remarks,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.salesRepo.Create(order); err != nil {
		return nil, err
	}
	lines := make([]entity.SalesOrderLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		line := entity.SalesOrderLine{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ItemID:    l.ItemID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		}
		if err := uc.salesRepo.CreateLine(&line); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return toSalesResponse(order, lines), nil
}

// Ship despacha una orden Open: descuenta el stock de cada línea y asienta el
// movimiento como "sale", y marca la orden como Shipped — en una transacción.
func (uc *UseCase) Ship(ctx context.Context, orderID string) error {
	now := time.Now()
	txID := uuid.New().String()

	return uc.txRunner.RunSales(ctx, func(
		stockRepo repository.StockRepository,
		ledgerRepo repository.StockLedgerRepository,
		salesRepo repository.SalesOrderRepository,
	) error {
		order, err := salesRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.SalesStatusOpen {
			return domain.ErrConflict
		}
		lines, err := salesRepo.ListLines(orderID)
		if err != nil {
			return err
		}
		reason := fmt.Sprintf("orden de venta %s", orderID)
		for _, l := range lines {
			stock, err := stockRepo.GetForUpdate(l.ItemID, true)
			if err != nil {
				return err
			}
			oldQty := stock.Quantity
			stock.Quantity = oldQty.Sub(l.Quantity)
			stock.UpdatedAt = now
			if err := stockRepo.Upsert(stock); err != nil {
				return err
			}
			if stock.Quantity.IsNegative() {
				log.Warn().
					Str("item_id", l.ItemID).
					Str("quantity", stock.Quantity.String()).
					Str("order_id", orderID).
					Msg("stock negativo tras el despacho")
			}
			if err := ledgerRepo.Append(&entity.StockLedgerEntry{
				ID:            uuid.New().String(),
				TransactionID: txID,
				ItemID:        l.ItemID,
				IsProduct:     true,
				ChangeQty:     l.Quantity.Neg(),
				OldQty:        oldQty,
				NewQty:        stock.Quantity,
				ChangeType:    entity.ChangeTypeSale,
				Reason:        reason,
				CreatedAt:     now,
			}); err != nil {
				return err
			}
		}
		order.Status = entity.SalesStatusShipped
		order.UpdatedAt = now
		return salesRepo.Update(order)
	})
}

// Cancel cancela una orden Open.
func (uc *UseCase) Cancel(orderID string) error {
	order, err := uc.salesRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.Status != entity.SalesStatusOpen {
		return domain.ErrConflict
	}
	order.Status = entity.SalesStatusCancelled
	order.UpdatedAt = time.Now()
	return uc.salesRepo.Update(order)
}

// GetOrder obtiene una orden con sus líneas.
func (uc *UseCase) GetOrder(orderID string) (*dto.SalesOrderResponse, error) {
	order, err := uc.salesRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.salesRepo.ListLines(orderID)
	if err != nil {
		return nil, err
	}
	deref := make([]entity.SalesOrderLine, 0, len(lines))
	for _, l := range lines {
		deref = append(deref, *l)
	}
	return toSalesResponse(order, deref), nil
}

// ListOrders lista órdenes, opcionalmente por estado.
func (uc *UseCase) ListOrders(status string, limit, offset int) ([]*dto.SalesOrderResponse, error) {
	orders, err := uc.salesRepo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SalesOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toSalesResponse(o, nil))
	}
	return out, nil
}

func toSalesResponse(o *entity.SalesOrder, lines []entity.SalesOrderLine) *dto.SalesOrderResponse {
	resp := &dto.SalesOrderResponse{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		OrderDate:  o.OrderDate,
		Status:     o.Status,
		Remarks:    o.Remarks,
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.OrderLineResponse{
			ID:        l.ID,
			ItemID:    l.ItemID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	return resp
}
