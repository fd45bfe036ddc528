package repository

import (
	"context"

	"github.com/jhoicas/Inventario-scanner/internal/domain/entity"
)

// ProductFilter filtros de GET /products.
type ProductFilter struct {
	Search       string
	TypeID       string
	ColorID      string
	LowStockOnly bool
}

// ProductRepository define el puerto hacia el catálogo remoto de productos (DIP).
// GetByBarcode devuelve domain.ErrNotFound si el servicio no conoce el código.
type ProductRepository interface {
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	Create(ctx context.Context, in entity.NewProduct) (*entity.Product, error)
}
