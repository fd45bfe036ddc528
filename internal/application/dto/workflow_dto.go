package dto

import "github.com/jhoicas/Inventario-scanner/internal/domain/inventory"

// ScanRequest lectura entregada por el colaborador de captura.
type ScanRequest struct {
	Code      string `json:"code"`
	Symbology string `json:"symbology"`
}

// LookupRequest búsqueda manual por código de barras.
type LookupRequest struct {
	Barcode string `json:"barcode"`
}

// WorkflowResponse estado del flujo de movimiento que renderiza la UI.
type WorkflowResponse struct {
	State      string                  `json:"state"`
	Barcode    string                  `json:"barcode,omitempty"`
	Product    *ProductResponse        `json:"product,omitempty"`
	Direction  string                  `json:"direction,omitempty"`
	Quantity   int                     `json:"quantity,omitempty"`
	Note       string                  `json:"note,omitempty"`
	Preview    *inventory.StockPreview `json:"preview,omitempty"`
	Movement   *MovementResponse       `json:"movement,omitempty"`
	Attempts   []AttemptDTO            `json:"attempts,omitempty"`
	Error      *ErrorResponse          `json:"error,omitempty"`
	Suppressed bool                    `json:"suppressed,omitempty"`
}
