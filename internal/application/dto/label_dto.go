package dto

// SelectionResponse selección actual para la pantalla de etiquetas.
type SelectionResponse struct {
	Selected    []string `json:"selected"`
	Count       int      `json:"count"`
	Total       int      `json:"total"`
	AllSelected bool     `json:"all_selected"`
}

// ExportedDocumentDTO documento generado por el servicio.
type ExportedDocumentDTO struct {
	ProductIDs  []string `json:"product_ids"`
	Filename    string   `json:"filename"`
	ContentType string   `json:"content_type"`
	Content     []byte   `json:"content"` // base64 en JSON
}

// ExportResponse resultado de una exportación en modo single.
// Si la secuencia se corta, Documents trae lo ya recibido y Error la causa.
type ExportResponse struct {
	Mode      string                `json:"mode"`
	Documents []ExportedDocumentDTO `json:"documents"`
	Error     *ErrorResponse        `json:"error,omitempty"`
}
