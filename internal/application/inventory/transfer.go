package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/retail-inventario/internal/application/dto"
	"github.com/jhoicas/retail-inventario/internal/domain"
	"github.com/jhoicas/retail-inventario/internal/domain/entity"
	"github.com/jhoicas/retail-inventario/internal/domain/inventory"
	"github.com/jhoicas/retail-inventario/internal/domain/repository"
)

// Transfer resta de la tienda origen y suma en la destino en una sola transacción.
// Ambos registros comparten referencia_externa (TRF-<uuid>); o se guardan los dos o ninguno.
func (uc *LedgerUseCase) Transfer(ctx context.Context, actorID string, in dto.TransferRequest) (*dto.TransferResponse, error) {
	if in.ArticleID == "" || in.SourceStoreID == "" || in.DestStoreID == "" {
		return nil, fmt.Errorf("%w: articulo_id, tienda_origen_id y tienda_destino_id son requeridos", domain.ErrInvalidInput)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if in.SourceStoreID == in.DestStoreID {
		return nil, fmt.Errorf("%w: la tienda origen y destino deben ser distintas", domain.ErrInvalidInput)
	}
	if err := uc.checkArticle(ctx, in.ArticleID); err != nil {
		return nil, err
	}
	for _, id := range []string{in.SourceStoreID, in.DestStoreID} {
		if err := uc.checkStore(ctx, id); err != nil {
			return nil, err
		}
	}
	if in.Reason == "" {
		in.Reason = ReasonTransfer
	}

	ref := "TRF-" + uuid.New().String()
	now := uc.now()
	out := &dto.TransferResponse{ExternalRef: ref}

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StoreStockRepository,
	) error {
		if err := stockRepo.Ensure(ctx, in.ArticleID, in.DestStoreID); err != nil {
			return err
		}
		// Orden fijo por tienda_id: dos traspasos opuestos no se bloquean mutuamente.
		first, second := in.SourceStoreID, in.DestStoreID
		if second < first {
			first, second = second, first
		}
		locked := make(map[string]*entity.StoreStock, 2)
		for _, storeID := range []string{first, second} {
			st, err := stockRepo.GetForUpdate(ctx, in.ArticleID, storeID)
			if err != nil {
				return err
			}
			// Sin fila en origen equivale a saldo cero.
			if st == nil && storeID == in.SourceStoreID {
				return fmt.Errorf("%w: disponible 0, solicitado %d", domain.ErrInsufficientStock, in.Quantity)
			}
			if st == nil || !st.Active {
				return fmt.Errorf("%w: sin inventario activo para artículo %s en tienda %s", domain.ErrNotFound, in.ArticleID, storeID)
			}
			locked[storeID] = st
		}
		src, dst := locked[in.SourceStoreID], locked[in.DestStoreID]
		if src.Quantity < in.Quantity {
			return fmt.Errorf("%w: disponible %d, solicitado %d", domain.ErrInsufficientStock, src.Quantity, in.Quantity)
		}
		destNext, err := inventory.Apply(dst.Quantity, in.Quantity)
		if err != nil {
			return err
		}

		unitCost := src.CostPrice
		outMov := &entity.StockMovement{
			ID:            uuid.New().String(),
			ArticleID:     in.ArticleID,
			StoreID:       in.SourceStoreID,
			Type:          entity.MovementTransferenciaSalida,
			Quantity:      in.Quantity,
			UnitPrice:     unitCost,
			PreviousStock: src.Quantity,
			NewStock:      src.Quantity - in.Quantity,
			Reason:        in.Reason,
			ExternalRef:   ref,
			UserID:        actorID,
			Date:          now,
		}
		if err := movRepo.Create(ctx, outMov); err != nil {
			return err
		}
		src.Quantity = outMov.NewStock
		src.UpdatedAt = now
		if err := stockRepo.Update(ctx, src); err != nil {
			return err
		}

		inMov := &entity.StockMovement{
			ID:            uuid.New().String(),
			ArticleID:     in.ArticleID,
			StoreID:       in.DestStoreID,
			Type:          entity.MovementTransferenciaEntrada,
			Quantity:      in.Quantity,
			UnitPrice:     unitCost,
			PreviousStock: dst.Quantity,
			NewStock:      destNext,
			Reason:        in.Reason,
			ExternalRef:   ref,
			UserID:        actorID,
			Date:          now,
		}
		if err := movRepo.Create(ctx, inMov); err != nil {
			return err
		}
		dst.CostPrice = inventory.WeightedCost(dst.Quantity, dst.CostPrice, in.Quantity, unitCost)
		dst.Quantity = inMov.NewStock
		dst.UpdatedAt = now
		if err := stockRepo.Update(ctx, dst); err != nil {
			return err
		}

		out.Stocks = []dto.StoreQuantity{
			{StoreID: in.SourceStoreID, Quantity: src.Quantity},
			{StoreID: in.DestStoreID, Quantity: dst.Quantity},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out.Completed = true

	uc.log.Info().
		Str("articulo_id", in.ArticleID).
		Str("origen", in.SourceStoreID).
		Str("destino", in.DestStoreID).
		Int64("cantidad", in.Quantity).
		Str("referencia", ref).
		Msg("traspaso completado")
	uc.emit(ctx, entity.LedgerEvent{
		Actor:     actorID,
		Operation: entity.OperationTransfer,
		Affected:  2,
		Reason:    in.Reason,
		Reference: ref,
		StoreID:   in.SourceStoreID,
		ArticleID: in.ArticleID,
		At:        now,
	})
	return out, nil
}
