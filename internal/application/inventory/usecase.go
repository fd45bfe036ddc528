package inventory

import (
	"context"
	"strings"

	"github.com/jhoicas/Inventario-scanner/internal/application/commit"
	"github.com/jhoicas/Inventario-scanner/internal/domain"
	"github.com/jhoicas/Inventario-scanner/internal/domain/entity"
	"github.com/jhoicas/Inventario-scanner/internal/domain/repository"
)

const (
	maxNoteLength      = 255
	defaultRecentHours = 24
	maxRecentHours     = 24 * 30
)

// MovementUseCase registra movimientos (IN/OUT/ADJUST) en el servicio remoto
// usando el protocolo de commit con reintentos acotados.
type MovementUseCase struct {
	repo     repository.InventoryMovementRepository
	protocol *commit.Protocol
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(repo repository.InventoryMovementRepository, protocol *commit.Protocol) *MovementUseCase {
	return &MovementUseCase{repo: repo, protocol: protocol}
}

// ValidateMovement valida localmente la solicitud. Un fallo aquí nunca llega a la red.
func ValidateMovement(req entity.MovementRequest) error {
	switch {
	case !req.Direction.Valid():
		return domain.NewValidationError("direction", "debe ser IN, OUT o ADJUST")
	case req.Quantity <= 0:
		return domain.NewValidationError("quantity", "debe ser un entero positivo")
	case strings.TrimSpace(req.ProductID) == "":
		return domain.NewValidationError("product_id", "es requerido")
	case strings.TrimSpace(req.Barcode) == "":
		return domain.NewValidationError("barcode", "es requerido")
	case len(req.Note) > maxNoteLength:
		return domain.NewValidationError("note", "supera 255 caracteres")
	}
	return nil
}

// Commit valida y envía el movimiento. Con éxito devuelve el registro del servidor;
// si se agotan los intentos devuelve la última causa observada.
func (uc *MovementUseCase) Commit(ctx context.Context, req entity.MovementRequest) (commit.Result[*entity.Movement], error) {
	if err := ValidateMovement(req); err != nil {
		return commit.Result[*entity.Movement]{}, err
	}
	op := "movimiento " + string(req.Direction)
	return commit.Submit(ctx, uc.protocol, op, func(ctx context.Context) (*entity.Movement, error) {
		return uc.repo.Register(ctx, req)
	})
}

// Recent movimientos de las últimas hours horas (24 por defecto, máximo 30 días).
func (uc *MovementUseCase) Recent(ctx context.Context, hours int) ([]*entity.Movement, error) {
	if hours <= 0 {
		hours = defaultRecentHours
	}
	if hours > maxRecentHours {
		hours = maxRecentHours
	}
	return uc.repo.Recent(ctx, hours)
}
