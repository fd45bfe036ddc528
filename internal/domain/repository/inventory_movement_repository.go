package repository

import (
	"context"

	"github.com/jhoicas/Inventario-scanner/internal/domain/entity"
)

// InventoryMovementRepository define el puerto hacia el registro remoto de movimientos.
type InventoryMovementRepository interface {
	Register(ctx context.Context, req entity.MovementRequest) (*entity.Movement, error)
	Recent(ctx context.Context, hours int) ([]*entity.Movement, error)
}
