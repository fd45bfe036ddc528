package labels

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/Inventario-scanner/internal/application/dto"
	"github.com/jhoicas/Inventario-scanner/internal/domain/entity"
	"github.com/jhoicas/Inventario-scanner/internal/domain/repository"
)

// SheetRenderer genera localmente una hoja de etiquetas (vista previa).
type SheetRenderer interface {
	RenderLabels(ctx context.Context, products []*entity.Product) ([]byte, error)
}

// Service pantalla de etiquetas: catálogo cargado, selección, exportación y vista previa.
type Service struct {
	products repository.ProductRepository
	planner  *Planner
	exporter *Exporter
	renderer SheetRenderer

	mu      sync.RWMutex
	catalog map[string]*entity.Product
}

// NewService construye el servicio sobre la selección del planner.
func NewService(products repository.ProductRepository, planner *Planner, exporter *Exporter, renderer SheetRenderer) *Service {
	return &Service{
		products: products,
		planner:  planner,
		exporter: exporter,
		renderer: renderer,
		catalog:  map[string]*entity.Product{},
	}
}

// LoadCatalog recarga el catálogo y poda la selección a los ids vigentes.
func (s *Service) LoadCatalog(ctx context.Context, filter repository.ProductFilter) (dto.SelectionResponse, error) {
	list, err := s.products.List(ctx, filter)
	if err != nil {
		return dto.SelectionResponse{}, fmt.Errorf("etiquetas: cargar catálogo: %w", err)
	}
	catalog := make(map[string]*entity.Product, len(list))
	ids := make([]string, 0, len(list))
	for _, p := range list {
		if p == nil || p.ID == "" {
			continue
		}
		catalog[p.ID] = p
		ids = append(ids, p.ID)
	}
	s.mu.Lock()
	s.catalog = catalog
	s.mu.Unlock()
	s.planner.Selection().SetCatalog(ids)
	return s.View(), nil
}

// Toggle agrega o quita un producto de la selección.
func (s *Service) Toggle(id string) (dto.SelectionResponse, error) {
	if _, err := s.planner.Selection().Toggle(id); err != nil {
		return s.View(), err
	}
	return s.View(), nil
}

// SelectAll selecciona todo el catálogo cargado o, si ya estaba todo, limpia.
func (s *Service) SelectAll() dto.SelectionResponse {
	s.planner.Selection().SelectAll(s.catalogIDs())
	return s.View()
}

// Clear vacía la selección.
func (s *Service) Clear() dto.SelectionResponse {
	s.planner.Selection().Clear()
	return s.View()
}

// View selección actual.
func (s *Service) View() dto.SelectionResponse {
	sel := s.planner.Selection()
	ids := sel.IDs()
	return dto.SelectionResponse{
		Selected:    ids,
		Count:       len(ids),
		Total:       sel.CatalogLen(),
		AllSelected: sel.AllSelected(),
	}
}

// Export genera los documentos de la selección en el modo pedido.
func (s *Service) Export(ctx context.Context, mode Mode) (dto.ExportResponse, error) {
	docs, err := s.exporter.Export(ctx, mode)
	out := dto.ExportResponse{Mode: string(mode), Documents: make([]dto.ExportedDocumentDTO, 0, len(docs))}
	for _, d := range docs {
		out.Documents = append(out.Documents, dto.ExportedDocumentDTO{
			ProductIDs:  d.ProductIDs,
			Filename:    d.Filename,
			ContentType: d.ContentType,
			Content:     d.Content,
		})
	}
	return out, err
}

// Preview renderiza localmente la hoja de etiquetas de la selección.
func (s *Service) Preview(ctx context.Context) ([]byte, error) {
	ids := s.planner.Selection().IDs()
	if _, err := BuildExportPayload(ModeBatch, ids); err != nil {
		return nil, err
	}
	s.mu.RLock()
	products := make([]*entity.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.catalog[id]; ok {
			products = append(products, p)
		}
	}
	s.mu.RUnlock()
	return s.renderer.RenderLabels(ctx, products)
}

func (s *Service) catalogIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.catalog))
	for id := range s.catalog {
		ids = append(ids, id)
	}
	return ids
}
