package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-scanner/internal/application/dto"
	"github.com/jhoicas/Inventario-scanner/internal/domain/inventory"
	"github.com/jhoicas/Inventario-scanner/internal/domain/repository"
)

// ReplenishmentUseCase arma la lista de reposición a partir de los productos en o bajo su mínimo.
type ReplenishmentUseCase struct {
	productRepo repository.ProductRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(productRepo repository.ProductRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{productRepo: productRepo}
}

// GenerateReplenishmentList devuelve los productos con stock bajo, la cantidad sugerida
// de pedido y una prioridad basada en margen y déficit.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	// 1. Productos con stock bajo (el filtro del servicio no es confiable: se revalida)
	products, err := uc.productRepo.List(ctx, repository.ProductFilter{LowStockOnly: true})
	if err != nil {
		return nil, fmt.Errorf("reposición: listar productos: %w", err)
	}

	// 2. Construir los DTOs enriquecidos
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(products))
	for _, p := range products {
		if p == nil || !p.IsLowStock() {
			continue
		}
		suggested := inventory.SuggestedOrder(p.CurrentStock, p.MinimumStock)

		unitCost := decimal.Zero
		if p.CostPrice != nil {
			unitCost = *p.CostPrice
		}
		margin := decimal.Zero
		if p.SalePrice != nil {
			margin = inventory.GrossMarginPct(unitCost, *p.SalePrice)
		}

		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:          p.ID,
			Barcode:            p.Barcode,
			ProductName:        p.Name,
			CurrentStock:       p.CurrentStock,
			MinimumStock:       p.MinimumStock,
			IdealStock:         inventory.IdealStock(p.MinimumStock),
			SuggestedOrderQty:  suggested,
			UnitCost:           unitCost,
			EstimatedOrderCost: unitCost.Mul(decimal.NewFromInt(int64(suggested))),
			GrossMarginPct:     margin,
		})
	}

	// 3. Ordenar: primero mayor margen, luego mayor déficit bajo el mínimo
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if !a.GrossMarginPct.Equal(b.GrossMarginPct) {
			return a.GrossMarginPct.GreaterThan(b.GrossMarginPct)
		}
		return a.MinimumStock-a.CurrentStock > b.MinimumStock-b.CurrentStock
	})

	// 4. Asignar prioridad (1 = más urgente)
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
