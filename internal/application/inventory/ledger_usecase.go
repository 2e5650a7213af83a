package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/retail-inventario/internal/application/dto"
	"github.com/jhoicas/retail-inventario/internal/domain"
	"github.com/jhoicas/retail-inventario/internal/domain/entity"
	"github.com/jhoicas/retail-inventario/internal/domain/inventory"
	"github.com/jhoicas/retail-inventario/internal/domain/repository"
	"github.com/jhoicas/retail-inventario/pkg/logger"
)

// Motivos por defecto cuando el caller no envía uno.
const (
	ReasonManual   = "Actualización manual"
	ReasonTransfer = "Traspaso entre tiendas"
	ReasonBulk     = "Actualización masiva"
)

// LedgerUseCase es el motor del libro de inventario: cada mutación de saldo
// y su registro en movimientos_stock ocurren en una sola unidad de trabajo
// con bloqueo de fila (SELECT FOR UPDATE).
type LedgerUseCase struct {
	txRunner    TxRunner
	articleRepo repository.ArticleRepository
	storeRepo   repository.StoreRepository
	stockRepo   repository.StoreStockRepository
	movRepo     repository.StockMovementRepository
	emitter
	now func() time.Time
}

// NewLedgerUseCase construye el caso de uso. stockRepo y movRepo se usan solo para lecturas.
func NewLedgerUseCase(
	txRunner TxRunner,
	articleRepo repository.ArticleRepository,
	storeRepo repository.StoreRepository,
	stockRepo repository.StoreStockRepository,
	movRepo repository.StockMovementRepository,
	events EventSink,
	log *logger.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:    txRunner,
		articleRepo: articleRepo,
		storeRepo:   storeRepo,
		stockRepo:   stockRepo,
		movRepo:     movRepo,
		emitter:     emitter{sink: events, log: log},
		now:         time.Now,
	}
}

// ApplyMovement suma (ENTRADA) o resta (SALIDA) unidades del saldo de un artículo en una tienda.
func (uc *LedgerUseCase) ApplyMovement(ctx context.Context, actorID string, in dto.ApplyMovementRequest) (*dto.ApplyMovementResponse, error) {
	if in.Reason == "" {
		in.Reason = ReasonManual
	}
	if in.ExternalRef == "" {
		in.ExternalRef = "MOV-" + uuid.New().String()
	}
	out, err := uc.applyOne(ctx, actorID, in)
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("articulo_id", in.ArticleID).
		Str("tienda_id", in.StoreID).
		Int64("stock_anterior", out.PreviousStock).
		Int64("stock_nuevo", out.NewStock).
		Msg("stock actualizado")
	uc.emit(ctx, entity.LedgerEvent{
		Actor:     actorID,
		Operation: entity.OperationStockUpdate,
		Affected:  1,
		Reason:    in.Reason,
		Reference: in.ExternalRef,
		StoreID:   in.StoreID,
		ArticleID: in.ArticleID,
		At:        uc.now(),
	})
	return out, nil
}

// applyOne es el camino común de ApplyMovement y de cada ítem de BulkApply. No emite eventos.
func (uc *LedgerUseCase) applyOne(ctx context.Context, actorID string, in dto.ApplyMovementRequest) (*dto.ApplyMovementResponse, error) {
	if in.ArticleID == "" || in.StoreID == "" {
		return nil, fmt.Errorf("%w: articulo_id y tienda_id son requeridos", domain.ErrInvalidInput)
	}
	movType, err := inventory.TypeForDelta(in.Quantity)
	if err != nil {
		return nil, err
	}
	if in.Price != nil && in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidPrice)
	}
	if err := uc.checkArticle(ctx, in.ArticleID); err != nil {
		return nil, err
	}
	if err := uc.checkStore(ctx, in.StoreID); err != nil {
		return nil, err
	}

	now := uc.now()
	var out dto.ApplyMovementResponse
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StoreStockRepository,
	) error {
		if movType == entity.MovementEntrada {
			if err := stockRepo.Ensure(ctx, in.ArticleID, in.StoreID); err != nil {
				return err
			}
		}
		stock, err := lockActive(ctx, stockRepo, in.ArticleID, in.StoreID)
		if err != nil {
			return err
		}
		next, err := inventory.Apply(stock.Quantity, in.Quantity)
		if err != nil {
			return err
		}
		unitPrice := stock.CostPrice
		if in.Price != nil {
			unitPrice = *in.Price
			if movType == entity.MovementEntrada {
				stock.CostPrice = inventory.WeightedCost(stock.Quantity, stock.CostPrice, in.Quantity, unitPrice)
			}
		}
		mov := &entity.StockMovement{
			ID:            uuid.New().String(),
			ArticleID:     in.ArticleID,
			StoreID:       in.StoreID,
			Type:          movType,
			Quantity:      inventory.Abs(in.Quantity),
			UnitPrice:     unitPrice,
			PreviousStock: stock.Quantity,
			NewStock:      next,
			Reason:        in.Reason,
			ExternalRef:   in.ExternalRef,
			UserID:        actorID,
			Date:          now,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		out.PreviousStock = stock.Quantity
		stock.Quantity = next
		stock.UpdatedAt = now
		if err := stockRepo.Update(ctx, stock); err != nil {
			return err
		}
		out.NewStock = next
		out.NeedsRestock = stock.NeedsRestock()
		out.ExternalRef = in.ExternalRef
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// lockActive bloquea la fila de saldo; ausente o inactiva es NotFound.
func lockActive(ctx context.Context, stockRepo repository.StoreStockRepository, articleID, storeID string) (*entity.StoreStock, error) {
	stock, err := stockRepo.GetForUpdate(ctx, articleID, storeID)
	if err != nil {
		return nil, err
	}
	if stock == nil || !stock.Active {
		return nil, fmt.Errorf("%w: sin inventario activo para artículo %s en tienda %s", domain.ErrNotFound, articleID, storeID)
	}
	return stock, nil
}

func (uc *LedgerUseCase) checkArticle(ctx context.Context, id string) error {
	a, err := uc.articleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return fmt.Errorf("%w: artículo %s", domain.ErrNotFound, id)
	}
	return nil
}

func (uc *LedgerUseCase) checkStore(ctx context.Context, id string) error {
	st, err := uc.storeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if st == nil {
		return fmt.Errorf("%w: tienda %s", domain.ErrNotFound, id)
	}
	return nil
}
