package repository

import (
	"context"

	"github.com/jhoicas/Inventario-scanner/internal/domain/entity"
)

// CatalogRepository tablas auxiliares del servicio remoto (tipos y colores).
// Solo devuelve registros activos.
type CatalogRepository interface {
	ListTypes(ctx context.Context) ([]entity.Ref, error)
	ListColors(ctx context.Context) ([]entity.Ref, error)
}
