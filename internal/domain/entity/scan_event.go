package entity

import "time"

// Symbology simbología reportada por el decodificador de la cámara.
type Symbology string

const (
	SymbologyCode128 Symbology = "code128"
	SymbologyQR      Symbology = "qr"
	SymbologyEAN13   Symbology = "ean13"
	SymbologyEAN8    Symbology = "ean8"
)

// Supported indica si la simbología está habilitada en la captura.
func (s Symbology) Supported() bool {
	switch s {
	case SymbologyCode128, SymbologyQR, SymbologyEAN13, SymbologyEAN8:
		return true
	}
	return false
}

// ScanEvent lectura cruda de un símbolo. Efímero: se consume una sola vez.
type ScanEvent struct {
	Code      string
	Symbology Symbology
	At        time.Time
}
