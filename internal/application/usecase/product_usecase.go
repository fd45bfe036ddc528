package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/Inventario-scanner/internal/application/commit"
	"github.com/jhoicas/Inventario-scanner/internal/application/dto"
	"github.com/jhoicas/Inventario-scanner/internal/domain"
	"github.com/jhoicas/Inventario-scanner/internal/domain/entity"
	"github.com/jhoicas/Inventario-scanner/internal/domain/repository"
)

// ProductUseCase consulta y alta de productos en el catálogo remoto.
// El código de barras y el stock los administra el servicio.
type ProductUseCase struct {
	repo     repository.ProductRepository
	protocol *commit.Protocol
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, protocol *commit.Protocol) *ProductUseCase {
	return &ProductUseCase{repo: repo, protocol: protocol}
}

// Create valida la entrada y da de alta el producto con reintentos acotados.
// La validación local falla sin tocar la red.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.CreateProductResponse, error) {
	payload := in.ToEntity()
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Notes = strings.TrimSpace(payload.Notes)
	if field, reason := payload.Problems(); field != "" {
		return nil, domain.NewValidationError(field, reason)
	}

	res, err := commit.Submit(ctx, uc.protocol, "alta de producto", func(ctx context.Context) (*entity.Product, error) {
		return uc.repo.Create(ctx, payload)
	})
	if err != nil {
		return nil, err
	}
	return &dto.CreateProductResponse{
		Product:        dto.ToProductResponse(res.Value),
		Attempts:       dto.ToAttemptDTOs(res.Attempts),
		IdempotencyKey: res.IdempotencyKey,
	}, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.NewValidationError("id", "es requerido")
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.ToProductResponse(product)
	return &out, nil
}

// List lista el catálogo con los filtros dados.
func (uc *ProductUseCase) List(ctx context.Context, filter repository.ProductFilter) (*dto.ProductListResponse, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	products, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		if p == nil {
			continue
		}
		items = append(items, dto.ToProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}
