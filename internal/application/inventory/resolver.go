package inventory

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/width"

	"github.com/jhoicas/Inventario-scanner/internal/domain"
	"github.com/jhoicas/Inventario-scanner/internal/domain/entity"
	"github.com/jhoicas/Inventario-scanner/internal/domain/repository"
)

// ProductResolver traduce un código de barras a un producto del catálogo remoto.
// Hace exactamente una consulta por invocación; reintentar es decisión del llamador.
type ProductResolver struct {
	repo repository.ProductRepository
	log  zerolog.Logger
}

// NewProductResolver construye el resolver.
func NewProductResolver(repo repository.ProductRepository, log zerolog.Logger) *ProductResolver {
	return &ProductResolver{repo: repo, log: log.With().Str("component", "resolver").Logger()}
}

// NormalizeBarcode recorta espacios y convierte dígitos de ancho completo a ASCII
// (entrada manual desde teclados asiáticos o lectores en modo teclado).
func NormalizeBarcode(raw string) string {
	return strings.TrimSpace(width.Narrow.String(raw))
}

// Resolve devuelve el producto, domain.ErrNotFound si el servicio no conoce el código,
// o un *domain.TransportError ante cualquier fallo de red o respuesta inesperada.
// Un código vacío se rechaza antes de llamar al servicio.
func (r *ProductResolver) Resolve(ctx context.Context, barcode string) (*entity.Product, error) {
	code := NormalizeBarcode(barcode)
	if code == "" {
		return nil, domain.NewValidationError("barcode", "es requerido")
	}

	product, err := r.repo.GetByBarcode(ctx, code)
	switch {
	case err == nil && product == nil:
		err = domain.ErrNotFound
	case err != nil && !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrTransport):
		err = &domain.TransportError{Op: "resolver producto", Err: err}
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			r.log.Info().Str("barcode", code).Msg("código no encontrado")
		} else {
			r.log.Warn().Err(err).Str("barcode", code).Msg("fallo al resolver producto")
		}
		return nil, err
	}

	r.log.Debug().Str("barcode", code).Str("product_id", product.ID).Msg("producto resuelto")
	return product, nil
}
