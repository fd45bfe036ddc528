package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Ref referencia a un catálogo auxiliar (tipo o color del producto).
type Ref struct {
	ID   string
	Name string
	Code string // código de 2 dígitos usado en el código de barras
}

// Product snapshot de solo lectura de un producto del servicio remoto.
// Se obtiene en cada ejecución del flujo; nunca se cachea entre ejecuciones.
type Product struct {
	ID           string
	Barcode      string // único; formato PPPPTTCC generado por el servicio
	ProductCode  string
	Name         string
	Type         Ref
	Color        Ref
	CurrentStock int // objetivo >= 0, el servicio no lo garantiza
	MinimumStock int
	CostPrice    *decimal.Decimal
	SalePrice    *decimal.Decimal
	Notes        string
	Active       bool
	CreatedAt    time.Time
}

// IsLowStock indica si el stock actual está en o por debajo del mínimo.
func (p Product) IsLowStock() bool {
	return p.CurrentStock <= p.MinimumStock
}

// NewProduct datos para dar de alta un producto. El servicio genera el código de barras.
type NewProduct struct {
	Name         string
	TypeID       string
	ColorID      string
	InitialStock int
	MinimumStock int
	CostPrice    *decimal.Decimal
	SalePrice    *decimal.Decimal
	Notes        string
}

// Problems devuelve el primer campo inválido y su motivo; ("", "") si es válido.
func (n NewProduct) Problems() (field, reason string) {
	switch {
	case strings.TrimSpace(n.Name) == "":
		return "name", "es requerido"
	case len(n.Name) > 200:
		return "name", "supera 200 caracteres"
	case strings.TrimSpace(n.TypeID) == "":
		return "type_id", "es requerido"
	case strings.TrimSpace(n.ColorID) == "":
		return "color_id", "es requerido"
	case n.InitialStock < 0:
		return "initial_stock", "no puede ser negativo"
	case n.MinimumStock < 0:
		return "minimum_stock", "no puede ser negativo"
	case n.CostPrice != nil && n.CostPrice.IsNegative():
		return "cost_price", "no puede ser negativo"
	case n.SalePrice != nil && n.SalePrice.IsNegative():
		return "sale_price", "no puede ser negativo"
	case n.CostPrice != nil && n.SalePrice != nil && n.SalePrice.LessThan(*n.CostPrice):
		return "sale_price", "no puede ser menor que el precio de costo"
	}
	return "", ""
}
