package repository

import "context"

// Document documento binario devuelto por el servicio (formato opaco).
type Document struct {
	Filename    string
	ContentType string
	Content     []byte
}

// LabelRepository genera etiquetas en el servicio remoto.
type LabelRepository interface {
	ExportBatch(ctx context.Context, productIDs []string) (*Document, error)
	Label(ctx context.Context, productID string) (*Document, error)
}
