package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-scanner/internal/domain/entity"
)

// MovementInputRequest body para PUT /api/workflow/movement.
type MovementInputRequest struct {
	Direction string `json:"direction"`
	Quantity  int    `json:"quantity"`
	Note      string `json:"note,omitempty"`
}

// MovementResponse confirmación de movimiento devuelta por el servicio.
type MovementResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	Direction     string    `json:"direction"`
	Quantity      int       `json:"quantity"`
	PreviousStock int       `json:"previous_stock"`
	CurrentStock  int       `json:"current_stock"`
	Note          string    `json:"note,omitempty"`
	User          string    `json:"user,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToMovementResponse mapea la entidad a la salida HTTP.
func ToMovementResponse(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		Direction:     string(m.Direction),
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		CurrentStock:  m.CurrentStock,
		Note:          m.Note,
		User:          m.User,
		CreatedAt:     m.CreatedAt,
	}
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un producto en o bajo su mínimo.
type ReplenishmentSuggestionDTO struct {
	ProductID          string          `json:"product_id"`
	Barcode            string          `json:"barcode"`
	ProductName        string          `json:"product_name"`
	CurrentStock       int             `json:"current_stock"`
	MinimumStock       int             `json:"minimum_stock"`
	IdealStock         int             `json:"ideal_stock"`          // ceil(MinimumStock * 1.5)
	SuggestedOrderQty  int             `json:"suggested_order_qty"`  // IdealStock - CurrentStock
	UnitCost           decimal.Decimal `json:"unit_cost"`            // precio de costo (0 si no informado)
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * UnitCost
	GrossMarginPct     decimal.Decimal `json:"gross_margin_pct"`     // (venta - costo) / venta
	Priority           int             `json:"priority"`             // 1 = más urgente
}
