package entity

import "time"

// Direction tipo de movimiento de inventario.
type Direction string

const (
	DirectionIN     Direction = "IN"     // entrada
	DirectionOUT    Direction = "OUT"    // salida
	DirectionADJUST Direction = "ADJUST" // ajuste: reemplaza el stock
)

// Valid indica si d es uno de los tres tipos soportados.
func (d Direction) Valid() bool {
	switch d {
	case DirectionIN, DirectionOUT, DirectionADJUST:
		return true
	}
	return false
}

// MovementRequest solicitud de movimiento construida por el flujo.
// Quantity siempre es positiva antes de intentar el envío.
type MovementRequest struct {
	ProductID string
	Barcode   string
	Direction Direction
	Quantity  int
	Note      string
}

// Movement registro de confirmación devuelto por el servicio.
type Movement struct {
	ID            string
	ProductID     string
	Direction     Direction
	Quantity      int
	PreviousStock int
	CurrentStock  int
	Note          string
	User          string
	CreatedAt     time.Time
}
