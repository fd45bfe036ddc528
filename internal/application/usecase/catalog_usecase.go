package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/Inventario-scanner/internal/application/dto"
	"github.com/jhoicas/Inventario-scanner/internal/domain/entity"
	"github.com/jhoicas/Inventario-scanner/internal/domain/repository"
)

// CatalogUseCase tipos y colores para el alta de productos (type_id, color_id).
type CatalogUseCase struct {
	repo repository.CatalogRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(repo repository.CatalogRepository) *CatalogUseCase {
	return &CatalogUseCase{repo: repo}
}

// Types lista los tipos activos ordenados por nombre.
func (uc *CatalogUseCase) Types(ctx context.Context) (dto.RefListResponse, error) {
	refs, err := uc.repo.ListTypes(ctx)
	if err != nil {
		return dto.RefListResponse{}, fmt.Errorf("catálogo: listar tipos: %w", err)
	}
	return dto.ToRefListResponse(sortedRefs(refs)), nil
}

// Colors lista los colores activos ordenados por nombre.
func (uc *CatalogUseCase) Colors(ctx context.Context) (dto.RefListResponse, error) {
	refs, err := uc.repo.ListColors(ctx)
	if err != nil {
		return dto.RefListResponse{}, fmt.Errorf("catálogo: listar colores: %w", err)
	}
	return dto.ToRefListResponse(sortedRefs(refs)), nil
}

// sortedRefs descarta registros sin id y ordena por nombre (sin distinguir mayúsculas).
func sortedRefs(refs []entity.Ref) []entity.Ref {
	out := make([]entity.Ref, 0, len(refs))
	for _, r := range refs {
		if strings.TrimSpace(r.ID) == "" {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}
