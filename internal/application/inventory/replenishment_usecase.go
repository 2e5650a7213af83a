package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-inventario/internal/application/dto"
	"github.com/jhoicas/retail-inventario/internal/domain"
	"github.com/jhoicas/retail-inventario/internal/domain/repository"
)

// idealFactor stock ideal = stock_minimo × 1.5 (redondeado hacia arriba).
var idealFactor = decimal.NewFromFloat(1.5)

// ReplenishmentUseCase genera la lista de reposición de una tienda a partir
// de los saldos en o bajo su stock mínimo.
type ReplenishmentUseCase struct {
	repo      repository.ReplenishmentRepository
	storeRepo repository.StoreRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(repo repository.ReplenishmentRepository, storeRepo repository.StoreRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{repo: repo, storeRepo: storeRepo}
}

// GenerateReplenishmentList devuelve los artículos a reponer con la cantidad sugerida,
// ordenados por margen (mayor primero) y luego por déficit.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, storeID string) ([]dto.ReplenishmentSuggestion, error) {
	if storeID == "" {
		return nil, fmt.Errorf("%w: tienda_id es requerido", domain.ErrInvalidInput)
	}
	st, err := uc.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, fmt.Errorf("%w: tienda %s", domain.ErrNotFound, storeID)
	}

	items, err := uc.repo.ListBelowMinimum(ctx, storeID)
	if err != nil {
		return nil, err
	}
	hundred := decimal.NewFromInt(100)
	out := make([]dto.ReplenishmentSuggestion, 0, len(items))
	for _, it := range items {
		ideal := decimal.NewFromInt(it.MinStock).Mul(idealFactor).Ceil().IntPart()
		suggested := ideal - it.Quantity
		if suggested < 0 {
			suggested = 0
		}
		var margin decimal.Decimal
		if it.SalePrice.IsPositive() {
			margin = it.SalePrice.Sub(it.CostPrice).Div(it.SalePrice).Mul(hundred).Round(2)
		}
		out = append(out, dto.ReplenishmentSuggestion{
			ArticleID:     it.ArticleID,
			SKU:           it.SKU,
			Name:          it.Name,
			Quantity:      it.Quantity,
			MinStock:      it.MinStock,
			IdealStock:    ideal,
			SuggestedQty:  suggested,
			CostPrice:     it.CostPrice,
			EstimatedCost: it.CostPrice.Mul(decimal.NewFromInt(suggested)),
			MarginPct:     margin,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.MarginPct.Equal(b.MarginPct) {
			return a.MarginPct.GreaterThan(b.MarginPct)
		}
		defA, defB := a.MinStock-a.Quantity, b.MinStock-b.Quantity
		if defA != defB {
			return defA > defB
		}
		return a.SKU < b.SKU
	})
	for i := range out {
		out[i].Priority = i + 1
	}
	return out, nil
}
