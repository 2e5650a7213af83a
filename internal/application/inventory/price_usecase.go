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

// PriceUseCase cambia el precio de venta y deja un AJUSTE de cantidad 0 en el libro.
type PriceUseCase struct {
	txRunner TxRunner
	emitter
	now func() time.Time
}

// NewPriceUseCase construye el caso de uso.
func NewPriceUseCase(txRunner TxRunner, events EventSink, log *logger.Logger) *PriceUseCase {
	return &PriceUseCase{
		txRunner: txRunner,
		emitter:  emitter{sink: events, log: log},
		now:      time.Now,
	}
}

// UpdatePrice actualiza precio_venta y registra el cambio en la misma transacción.
func (uc *PriceUseCase) UpdatePrice(ctx context.Context, actorID string, in dto.PriceUpdateRequest) (*dto.PriceUpdateResponse, error) {
	if in.ArticleID == "" || in.StoreID == "" {
		return nil, fmt.Errorf("%w: articulo_id y tienda_id son requeridos", domain.ErrInvalidInput)
	}
	if in.NewPrice == nil {
		return nil, fmt.Errorf("%w: nuevo_precio es requerido", domain.ErrInvalidInput)
	}
	if in.NewPrice.IsNegative() {
		return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidPrice)
	}
	// precio_venta se guarda con 2 decimales; la respuesta refleja lo almacenado.
	newPrice := in.NewPrice.Round(2)

	ref := "PRICE-" + uuid.New().String()
	now := uc.now()
	out := &dto.PriceUpdateResponse{NewPrice: newPrice}

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StoreStockRepository,
	) error {
		stock, err := lockActive(ctx, stockRepo, in.ArticleID, in.StoreID)
		if err != nil {
			return err
		}
		out.PreviousPrice = stock.SalePrice

		mov := &entity.StockMovement{
			ID:            uuid.New().String(),
			ArticleID:     in.ArticleID,
			StoreID:       in.StoreID,
			Type:          entity.MovementAjuste,
			Quantity:      0,
			UnitPrice:     newPrice,
			PreviousStock: stock.Quantity,
			NewStock:      stock.Quantity,
			Reason:        inventory.PriceChangeReason(stock.SalePrice, newPrice, in.Reason),
			ExternalRef:   ref,
			UserID:        actorID,
			Date:          now,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		stock.SalePrice = newPrice
		stock.UpdatedAt = now
		return stockRepo.Update(ctx, stock)
	})
	if err != nil {
		return nil, err
	}
	out.PercentChange = inventory.PercentChange(out.PreviousPrice, newPrice)

	uc.log.Info().
		Str("articulo_id", in.ArticleID).
		Str("tienda_id", in.StoreID).
		Str("precio_anterior", out.PreviousPrice.String()).
		Str("precio_nuevo", newPrice.String()).
		Msg("precio actualizado")
	uc.emit(ctx, entity.LedgerEvent{
		Actor:     actorID,
		Operation: entity.OperationPriceUpdate,
		Affected:  1,
		Reason:    in.Reason,
		Reference: ref,
		StoreID:   in.StoreID,
		ArticleID: in.ArticleID,
		At:        now,
	})
	return out, nil
}
