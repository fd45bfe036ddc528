package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-scanner/internal/domain/entity"
)

// CreateProductRequest entrada para dar de alta un producto.
type CreateProductRequest struct {
	Name         string           `json:"name"`
	TypeID       string           `json:"type_id"`
	ColorID      string           `json:"color_id"`
	InitialStock int              `json:"initial_stock"`
	MinimumStock int              `json:"minimum_stock"`
	CostPrice    *decimal.Decimal `json:"cost_price,omitempty"`
	SalePrice    *decimal.Decimal `json:"sale_price,omitempty"`
	Notes        string           `json:"notes,omitempty"`
}

// ToEntity convierte la entrada al payload de dominio.
func (r CreateProductRequest) ToEntity() entity.NewProduct {
	return entity.NewProduct{
		Name:         r.Name,
		TypeID:       r.TypeID,
		ColorID:      r.ColorID,
		InitialStock: r.InitialStock,
		MinimumStock: r.MinimumStock,
		CostPrice:    r.CostPrice,
		SalePrice:    r.SalePrice,
		Notes:        r.Notes,
	}
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string           `json:"id"`
	Barcode      string           `json:"barcode"`
	ProductCode  string           `json:"product_code,omitempty"`
	Name         string           `json:"name"`
	TypeName     string           `json:"type_name,omitempty"`
	ColorName    string           `json:"color_name,omitempty"`
	CurrentStock int              `json:"current_stock"`
	MinimumStock int              `json:"minimum_stock"`
	CostPrice    *decimal.Decimal `json:"cost_price,omitempty"`
	SalePrice    *decimal.Decimal `json:"sale_price,omitempty"`
	LowStock     bool             `json:"low_stock"`
	Active       bool             `json:"active"`
	CreatedAt    *time.Time       `json:"created_at,omitempty"`
}

// ProductListResponse listado del catálogo.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

// CreateProductResponse producto creado junto con el detalle de intentos.
type CreateProductResponse struct {
	Product        ProductResponse `json:"product"`
	Attempts       []AttemptDTO    `json:"attempts"`
	IdempotencyKey string          `json:"idempotency_key"`
}

// ToProductResponse mapea la entidad a la salida HTTP.
func ToProductResponse(p *entity.Product) ProductResponse {
	out := ProductResponse{
		ID:           p.ID,
		Barcode:      p.Barcode,
		ProductCode:  p.ProductCode,
		Name:         p.Name,
		TypeName:     p.Type.Name,
		ColorName:    p.Color.Name,
		CurrentStock: p.CurrentStock,
		MinimumStock: p.MinimumStock,
		CostPrice:    p.CostPrice,
		SalePrice:    p.SalePrice,
		LowStock:     p.IsLowStock(),
		Active:       p.Active,
	}
	if !p.CreatedAt.IsZero() {
		created := p.CreatedAt
		out.CreatedAt = &created
	}
	return out
}

// RefResponse tipo o color del catálogo auxiliar.
type RefResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

// RefListResponse listado de tipos o colores.
type RefListResponse struct {
	Items []RefResponse `json:"items"`
	Total int           `json:"total"`
}

// ToRefListResponse mapea referencias de dominio a la salida HTTP.
func ToRefListResponse(refs []entity.Ref) RefListResponse {
	items := make([]RefResponse, 0, len(refs))
	for _, r := range refs {
		items = append(items, RefResponse{ID: r.ID, Name: r.Name, Code: r.Code})
	}
	return RefListResponse{Items: items, Total: len(items)}
}
