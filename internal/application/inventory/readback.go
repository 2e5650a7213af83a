package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/retail-inventario/internal/application/dto"
	"github.com/jhoicas/retail-inventario/internal/domain"
	"github.com/jhoicas/retail-inventario/internal/domain/entity"
)

// GetBalance devuelve el saldo confirmado más reciente (sin caché).
func (uc *LedgerUseCase) GetBalance(ctx context.Context, articleID, storeID string) (*dto.BalanceResponse, error) {
	stock, err := uc.getStock(ctx, articleID, storeID)
	if err != nil {
		return nil, err
	}
	return toBalanceResponse(stock), nil
}

// ListMovements pagina el libro de un artículo en una tienda, más recientes primero.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, articleID, storeID string, page dto.PageRequest) (*dto.MovementListResponse, error) {
	if articleID == "" || storeID == "" {
		return nil, fmt.Errorf("%w: articulo_id y tienda_id son requeridos", domain.ErrInvalidInput)
	}
	page.DefaultPage()
	list, err := uc.movRepo.ListByArticleStore(ctx, articleID, storeID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// VerifyBalance compara stock_actual con el stock_nuevo del último movimiento.
// Un saldo sin movimientos es consistente solo si vale 0.
func (uc *LedgerUseCase) VerifyBalance(ctx context.Context, articleID, storeID string) (*dto.VerifyBalanceResponse, error) {
	stock, err := uc.getStock(ctx, articleID, storeID)
	if err != nil {
		return nil, err
	}
	last, err := uc.movRepo.Last(ctx, articleID, storeID)
	if err != nil {
		return nil, err
	}
	out := &dto.VerifyBalanceResponse{
		ArticleID: articleID,
		StoreID:   storeID,
		Quantity:  stock.Quantity,
	}
	if last == nil {
		out.Consistent = stock.Quantity == 0
		return out, nil
	}
	lastStock := last.NewStock
	out.LastNewStock = &lastStock
	out.Consistent = last.NewStock == stock.Quantity
	if !out.Consistent {
		uc.log.Warn().
			Str("articulo_id", articleID).
			Str("tienda_id", storeID).
			Int64("stock_actual", stock.Quantity).
			Int64("ultimo_stock_nuevo", last.NewStock).
			Msg("saldo inconsistente con el libro de movimientos")
	}
	return out, nil
}

func (uc *LedgerUseCase) getStock(ctx context.Context, articleID, storeID string) (*entity.StoreStock, error) {
	if articleID == "" || storeID == "" {
		return nil, fmt.Errorf("%w: articulo_id y tienda_id son requeridos", domain.ErrInvalidInput)
	}
	stock, err := uc.stockRepo.Get(ctx, articleID, storeID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, fmt.Errorf("%w: sin inventario para artículo %s en tienda %s", domain.ErrNotFound, articleID, storeID)
	}
	return stock, nil
}

func toBalanceResponse(s *entity.StoreStock) *dto.BalanceResponse {
	return &dto.BalanceResponse{
		ArticleID:    s.ArticleID,
		StoreID:      s.StoreID,
		Quantity:     s.Quantity,
		MinStock:     s.MinStock,
		SalePrice:    s.SalePrice,
		CostPrice:    s.CostPrice,
		NeedsRestock: s.NeedsRestock(),
		Active:       s.Active,
		UpdatedAt:    s.UpdatedAt,
	}
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		ArticleID:     m.ArticleID,
		StoreID:       m.StoreID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		UnitPrice:     m.UnitPrice,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		Reason:        m.Reason,
		ExternalRef:   m.ExternalRef,
		UserID:        m.UserID,
		Date:          m.Date,
	}
}
