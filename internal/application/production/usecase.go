package production

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
	domainprod "github.com/jhoicas/Produccion-api/internal/domain/production"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// UseCase casos de uso de producción: crear órdenes, aplicar la receta,
// cerrar con escalado por rendimiento y ajustar stock manualmente.
// Toda mutación de stock va acompañada de su asiento en el libro, dentro
// de una misma transacción.
type UseCase struct {
	txRunner   TxRunner
	itemRepo   repository.ItemRepository
	orderRepo  repository.ProductionOrderRepository
	recipeRepo repository.RecipeRepository
	stockRepo  repository.StockRepository
	ledgerRepo repository.StockLedgerRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	orderRepo repository.ProductionOrderRepository,
	recipeRepo repository.RecipeRepository,
	stockRepo repository.StockRepository,
	ledgerRepo repository.StockLedgerRepository,
) *UseCase {
	return &UseCase{
		txRunner:   txRunner,
		itemRepo:   itemRepo,
		orderRepo:  orderRepo,
		recipeRepo: recipeRepo,
		stockRepo:  stockRepo,
		ledgerRepo: ledgerRepo,
	}
}

// CreateOrder crea una orden en estado Planned con ActualQty 0.
// El producto debe existir, estar activo y ser producto terminado.
func (uc *UseCase) CreateOrder(in dto.CreateProductionOrderRequest) (*dto.ProductionOrderResponse, error) {
	if in.PlannedQty.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if item == nil || !item.IsActive() {
		return nil, domain.ErrNotFound
	}
	if item.Type != entity.ItemTypeFinishedProduct {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	order := &entity.ProductionOrder{
		ID:         uuid.New().String(),
		ProductID:  in.ProductID,
		PlannedQty: in.PlannedQty,
		ActualQty:  decimal.Zero,
		Status:     entity.OrderStatusPlanned,
		StartDate:  now,
		Remarks:    in.Remarks,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// ApplyBOM puebla las líneas de material de la orden según la receta del
// producto: planned_qty = cantidad_por_unidad × cantidad_planificada.
// No toca stock: es solo planificación. Re-aplicar sobre una orden que ya
// tiene líneas se rechaza con ErrConflict (guarda de idempotencia).
func (uc *UseCase) ApplyBOM(ctx context.Context, orderID string) error {
	return uc.txRunner.Run(ctx, func(
		_ repository.StockRepository,
		_ repository.StockLedgerRepository,
		orderRepo repository.ProductionOrderRepository,
	) error {
		order, err := orderRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.OrderStatusPlanned {
			return domain.ErrConflict
		}
		existing, err := orderRepo.ListMaterials(orderID)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return domain.ErrConflict
		}
		recipe, err := uc.recipeRepo.ListByProduct(order.ProductID)
		if err != nil {
			return err
		}
		if len(recipe) == 0 {
			return domain.ErrNoRecipe
		}
		for _, line := range recipe {
			material := &entity.ProductionMaterial{
				ID:         uuid.New().String(),
				OrderID:    orderID,
				MaterialID: line.MaterialID,
				PlannedQty: line.QtyPerUnit.Mul(order.PlannedQty),
				ActualQty:  decimal.Zero,
			}
			if err := orderRepo.CreateMaterial(material); err != nil {
				return err
			}
		}
		return nil
	})
}

// Complete cierra la orden con la cantidad realmente producida. Un único
// ratio producido/planificado escala el uso planificado de todos los
// materiales; cada descuento y el ingreso del producto se asientan en el
// libro bajo un mismo transaction_id, y todo se aplica de forma atómica.
// El stock puede quedar negativo: se advierte por log, nunca se bloquea.
func (uc *UseCase) Complete(ctx context.Context, orderID string, actualQty decimal.Decimal) error {
	if actualQty.IsNegative() {
		return domain.ErrInvalidInput
	}
	now := time.Now()
	txID := uuid.New().String()

	return uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		ledgerRepo repository.StockLedgerRepository,
		orderRepo repository.ProductionOrderRepository,
	) error {
		order, err := orderRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.IsOpen() {
			return domain.ErrConflict
		}

		ratio := domainprod.YieldRatio(order.PlannedQty, actualQty)
		reason := fmt.Sprintf("orden de producción %s", orderID)

		materials, err := orderRepo.ListMaterials(orderID)
		if err != nil {
			return err
		}
		for _, m := range materials {
			realUsage := domainprod.RealUsage(m.PlannedQty, ratio)
			if err := orderRepo.UpdateMaterialActual(m.ID, realUsage); err != nil {
				return err
			}
			if err := uc.applyChange(stockRepo, ledgerRepo, stockChange{
				itemID:     m.MaterialID,
				isProduct:  false,
				delta:      realUsage.Neg(),
				changeType: entity.ChangeTypeProduction,
				reason:     reason,
				txID:       txID,
				now:        now,
			}); err != nil {
				return err
			}
		}

		// Ingreso del producto terminado: siempre por la cantidad declarada,
		// aunque el ratio sea 0 y no haya habido consumo.
		if err := uc.applyChange(stockRepo, ledgerRepo, stockChange{
			itemID:     order.ProductID,
			isProduct:  true,
			delta:      actualQty,
			changeType: entity.ChangeTypeProduction,
			reason:     reason,
			txID:       txID,
			now:        now,
		}); err != nil {
			return err
		}

		order.ActualQty = actualQty
		order.Status = entity.OrderStatusCompleted
		order.EndDate = &now
		order.UpdatedAt = now
		return orderRepo.Update(order)
	})
}

// Cancel cancela una orden. Solo Planned es cancelable; Completed es terminal.
func (uc *UseCase) Cancel(orderID string) error {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.Status != entity.OrderStatusPlanned {
		return domain.ErrConflict
	}
	now := time.Now()
	order.Status = entity.OrderStatusCancelled
	order.EndDate = &now
	order.UpdatedAt = now
	return uc.orderRepo.Update(order)
}

// AdjustStock ajuste manual: lee la cantidad actual, suma el delta (puede ser
// negativo, sin tope) y asienta el cambio como manual_adjust, todo en una tx.
func (uc *UseCase) AdjustStock(ctx context.Context, in dto.AdjustStockRequest) error {
	item, err := uc.itemRepo.GetByID(in.ItemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	now := time.Now()
	txID := uuid.New().String()
	reason := in.Reason
	if reason == "" {
		reason = entity.ChangeTypeManualAdjust
	}
	return uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		ledgerRepo repository.StockLedgerRepository,
		_ repository.ProductionOrderRepository,
	) error {
		return uc.applyChange(stockRepo, ledgerRepo, stockChange{
			itemID:     in.ItemID,
			isProduct:  in.IsProduct,
			delta:      in.Delta,
			changeType: entity.ChangeTypeManualAdjust,
			reason:     reason,
			txID:       txID,
			now:        now,
		})
	})
}

// stockChange describe una mutación de stock con su asiento.
type stockChange struct {
	itemID     string
	isProduct  bool
	delta      decimal.Decimal
	changeType string
	reason     string
	txID       string
	now        time.Time
}

// applyChange bloquea la fila de stock, aplica el delta y asienta el cambio.
// El asiento registra old, new y delta de modo que new = old + delta exacto.
func (uc *UseCase) applyChange(
	stockRepo repository.StockRepository,
	ledgerRepo repository.StockLedgerRepository,
	ch stockChange,
) error {
	stock, err := stockRepo.GetForUpdate(ch.itemID, ch.isProduct)
	if err != nil {
		return err
	}
	oldQty := stock.Quantity
	newQty := oldQty.Add(ch.delta)
	stock.Quantity = newQty
	stock.UpdatedAt = ch.now
	if err := stockRepo.Upsert(stock); err != nil {
		return err
	}
	if newQty.IsNegative() {
		log.Warn().
			Str("item_id", ch.itemID).
			Bool("is_product", ch.isProduct).
			Str("quantity", newQty.String()).
			Str("reason", ch.reason).
			Msg("stock negativo tras el movimiento")
	}
	return ledgerRepo.Append(&entity.StockLedgerEntry{
		ID:            uuid.New().String(),
		TransactionID: ch.txID,
		ItemID:        ch.itemID,
		IsProduct:     ch.isProduct,
		ChangeQty:     ch.delta,
		OldQty:        oldQty,
		NewQty:        newQty,
		ChangeType:    ch.changeType,
		Reason:        ch.reason,
		CreatedAt:     ch.now,
	})
}

// GetOrder obtiene una orden por ID.
func (uc *UseCase) GetOrder(orderID string) (*dto.ProductionOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return toOrderResponse(order), nil
}

// ListOrders lista órdenes, opcionalmente por estado.
func (uc *UseCase) ListOrders(status string, limit, offset int) ([]*dto.ProductionOrderResponse, error) {
	orders, err := uc.orderRepo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductionOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out, nil
}

// ListMaterials lista las líneas de material de una orden.
func (uc *UseCase) ListMaterials(orderID string) ([]*dto.ProductionMaterialResponse, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	materials, err := uc.orderRepo.ListMaterials(orderID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductionMaterialResponse, 0, len(materials))
	for _, m := range materials {
		out = append(out, &dto.ProductionMaterialResponse{
			ID:         m.ID,
			MaterialID: m.MaterialID,
			PlannedQty: m.PlannedQty,
			ActualQty:  m.ActualQty,
		})
	}
	return out, nil
}

// GetStock consulta la cantidad actual de un artículo.
func (uc *UseCase) GetStock(itemID string, isProduct bool) (*dto.StockResponse, error) {
	stock, err := uc.stockRepo.Get(itemID, isProduct)
	if err != nil {
		return nil, err
	}
	return &dto.StockResponse{ItemID: stock.ItemID, IsProduct: stock.IsProduct, Quantity: stock.Quantity}, nil
}

// ListLedger lista los asientos del libro para un artículo.
func (uc *UseCase) ListLedger(itemID string, isProduct bool, limit, offset int) ([]*dto.LedgerEntryResponse, error) {
	entries, err := uc.ledgerRepo.ListByItem(itemID, isProduct, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, &dto.LedgerEntryResponse{
			ID:            e.ID,
			TransactionID: e.TransactionID,
			ItemID:        e.ItemID,
			IsProduct:     e.IsProduct,
			ChangeQty:     e.ChangeQty,
			OldQty:        e.OldQty,
			NewQty:        e.NewQty,
			ChangeType:    e.ChangeType,
			Reason:        e.Reason,
			CreatedAt:     e.CreatedAt,
		})
	}
	return out, nil
}

func toOrderResponse(o *entity.ProductionOrder) *dto.ProductionOrderResponse {
	return &dto.ProductionOrderResponse{
		ID:         o.ID,
		ProductID:  o.ProductID,
		PlannedQty: o.PlannedQty,
		ActualQty:  o.ActualQty,
		Status:     o.Status,
		StartDate:  o.StartDate,
		EndDate:    o.EndDate,
		Remarks:    o.Remarks,
	}
}
