package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// UseCase casos de uso de compras: crear órdenes y recibirlas. La recepción
// incrementa el stock de cada artículo con asiento de tipo "purchase".
type UseCase struct {
	txRunner     TxRunner
	purchaseRepo repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	itemRepo     repository.ItemRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	purchaseRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	itemRepo repository.ItemRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		purchaseRepo: purchaseRepo,
		supplierRepo: supplierRepo,
		itemRepo:     itemRepo,
	}
}

// CreateOrder crea una orden de compra con sus líneas en estado Open.
func (uc *UseCase) CreateOrder(in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
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
	}
	now := time.Now()
	orderDate := in.OrderDate
	if orderDate.IsZero() {
		orderDate = now
	}
	order := &entity.PurchaseOrder{
		ID:         uuid.New().String(),
		SupplierID: in.SupplierID,
		OrderDate:  orderDate,
		Status:     entity.PurchaseStatusOpen,
		Remarks:    in.Remarks,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.purchaseRepo.Create(order); err != nil {
		return nil, err
	}
	lines := make([]entity.PurchaseOrderLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		line := entity.PurchaseOrderLine{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ItemID:    l.ItemID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		}
		if err := uc.purchaseRepo.CreateLine(&line); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return toPurchaseResponse(order, lines), nil
}

// Receive recibe una orden Open: por cada línea incrementa el stock del
// artículo y asienta el movimiento como "purchase", y marca la orden como
// Received — todo en una sola transacción.
func (uc *UseCase) Receive(ctx context.Context, orderID string) error {
	now := time.Now()
	txID := uuid.New().String()

	return uc.txRunner.RunPurchase(ctx, func(
		stockRepo repository.StockRepository,
		ledgerRepo repository.StockLedgerRepository,
		purchaseRepo repository.PurchaseOrderRepository,
	) error {
		order, err := purchaseRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.PurchaseStatusOpen {
			return domain.ErrConflict
		}
		lines, err := purchaseRepo.ListLines(orderID)
		if err != nil {
			return err
		}
		reason := fmt.Sprintf("orden de compra %s", orderID)
		for _, l := range lines {
			item, err := uc.itemRepo.GetByID(l.ItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return domain.ErrNotFound
			}
			isProduct := item.Type == entity.ItemTypeFinishedProduct
			stock, err := stockRepo.GetForUpdate(l.ItemID, isProduct)
			if err != nil {
				return err
			}
			oldQty := stock.Quantity
			stock.Quantity = oldQty.Add(l.Quantity)
			stock.UpdatedAt = now
			if err := stockRepo.Upsert(stock); err != nil {
				return err
			}
			if err := ledgerRepo.Append(&entity.StockLedgerEntry{
				ID:            uuid.New().String(),
				TransactionID: txID,
				ItemID:        l.ItemID,
				IsProduct:     isProduct,
				ChangeQty:     l.Quantity,
				OldQty:        oldQty,
				NewQty:        stock.Quantity,
				ChangeType:    entity.ChangeTypePurchase,
				Reason:        reason,
				CreatedAt:     now,
			}); err != nil {
				return err
			}
		}
		order.Status = entity.PurchaseStatusReceived
		order.UpdatedAt = now
		return purchaseRepo.Update(order)
	})
}

// Cancel cancela una orden Open.
func (uc *UseCase) Cancel(orderID string) error {
	order, err := uc.purchaseRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.Status != entity.PurchaseStatusOpen {
		return domain.ErrConflict
	}
	order.Status = entity.PurchaseStatusCancelled
	order.UpdatedAt = time.Now()
	return uc.purchaseRepo.Update(order)
}

// GetOrder obtiene una orden con sus líneas.
func (uc *UseCase) GetOrder(orderID string) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.purchaseRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.purchaseRepo.ListLines(orderID)
	if err != nil {
		return nil, err
	}
	deref := make([]entity.PurchaseOrderLine, 0, len(lines))
	for _, l := range lines {
		deref = append(deref, *l)
	}
	return toPurchaseResponse(order, deref), nil
}

// ListOrders lista órdenes, opcionalmente por estado.
func (uc *UseCase) ListOrders(status string, limit, offset int) ([]*dto.PurchaseOrderResponse, error) {
	orders, err := uc.purchaseRepo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PurchaseOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toPurchaseResponse(o, nil))
	}
	return out, nil
}

func toPurchaseResponse(o *entity.PurchaseOrder, lines []entity.PurchaseOrderLine) *dto.PurchaseOrderResponse {
	resp := &dto.PurchaseOrderResponse{
		ID:         o.ID,
		SupplierID: o.SupplierID,
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
