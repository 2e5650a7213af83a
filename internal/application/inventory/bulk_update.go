package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/retail-inventario/internal/application/dto"
	"github.com/jhoicas/retail-inventario/internal/domain"
	"github.com/jhoicas/retail-inventario/internal/domain/entity"
)

// BulkApply aplica cada ítem en su propia transacción, en el orden recibido.
// Un ítem fallido se reporta en detalles_errores y no detiene a los demás.
func (uc *LedgerUseCase) BulkApply(ctx context.Context, actorID string, in dto.BulkRequest) (*dto.BulkResponse, error) {
	if in.StoreID == "" {
		return nil, fmt.Errorf("%w: tienda_id es requerido", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: articulos no puede estar vacío", domain.ErrInvalidInput)
	}
	if in.Reason == "" {
		in.Reason = ReasonBulk
	}

	batch := "BULK-" + uuid.New().String()
	out := &dto.BulkResponse{
		Results: make([]string, 0, len(in.Items)),
		Errors:  []dto.BulkItemError{},
	}
	for i, item := range in.Items {
		_, err := uc.applyOne(ctx, actorID, dto.ApplyMovementRequest{
			ArticleID:   item.ArticleID,
			StoreID:     in.StoreID,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Reason:      in.Reason,
			ExternalRef: fmt.Sprintf("%s-%d", batch, i+1),
		})
		if err != nil {
			if !domain.IsBusiness(err) {
				uc.log.Error().Err(err).Str("articulo_id", item.ArticleID).Msg("fallo en ítem de actualización masiva")
			}
			out.Errors = append(out.Errors, dto.BulkItemError{
				ArticleID: item.ArticleID,
				Code:      domain.Code(err),
				Message:   err.Error(),
			})
			continue
		}
		out.Results = append(out.Results, item.ArticleID)
	}
	out.Updated = len(out.Results)
	out.Failed = len(out.Errors)
	out.Success = out.Failed == 0

	uc.log.Info().
		Str("tienda_id", in.StoreID).
		Int("actualizados", out.Updated).
		Int("errores", out.Failed).
		Msg("actualización masiva procesada")
	if out.Updated > 0 {
		uc.emit(ctx, entity.LedgerEvent{
			Actor:     actorID,
			Operation: entity.OperationBulkUpdate,
			Affected:  out.Updated,
			Reason:    in.Reason,
			Reference: batch,
			StoreID:   in.StoreID,
			At:        uc.now(),
		})
	}
	return out, nil
}
