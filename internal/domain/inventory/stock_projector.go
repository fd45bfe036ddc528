package inventory

import "github.com/jhoicas/Inventario-scanner/internal/domain/entity"

// Project calcula el stock esperado tras el movimiento (servicio de dominio, sin I/O).
// IN suma, OUT resta, ADJUST reemplaza. No recorta valores negativos.
// El resultado es solo informativo: nunca se envía al servidor.
func Project(p entity.Product, d entity.Direction, quantity int) int {
	switch d {
	case entity.DirectionIN:
		return p.CurrentStock + quantity
	case entity.DirectionOUT:
		return p.CurrentStock - quantity
	case entity.DirectionADJUST:
		return quantity
	}
	return p.CurrentStock
}

// StockPreview vista previa que el operador ve antes de confirmar.
type StockPreview struct {
	Current   int  `json:"current"`
	Minimum   int  `json:"minimum"`
	Projected int  `json:"projected"`
	Negative  bool `json:"negative"`  // el servidor decide si lo acepta
	LowStock  bool `json:"low_stock"` // proyectado <= mínimo
}

// Preview envuelve Project con las banderas que muestra la UI.
func Preview(p entity.Product, d entity.Direction, quantity int) StockPreview {
	projected := Project(p, d, quantity)
	return StockPreview{
		Current:   p.CurrentStock,
		Minimum:   p.MinimumStock,
		Projected: projected,
		Negative:  projected < 0,
		LowStock:  projected <= p.MinimumStock,
	}
}
