// Package labels administra la selección múltiple de productos y la exportación
// de etiquetas (un documento por lote o uno por producto).
package labels

import (
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/Inventario-scanner/internal/domain"
)

// SelectionSet conjunto de IDs seleccionados, siempre subconjunto del catálogo cargado.
// Seguro para uso concurrente.
type SelectionSet struct {
	mu       sync.Mutex
	catalog  map[string]struct{}
	selected map[string]struct{}
}

// NewSelectionSet crea una selección vacía sin catálogo.
func NewSelectionSet() *SelectionSet {
	return &SelectionSet{
		catalog:  map[string]struct{}{},
		selected: map[string]struct{}{},
	}
}

// SetCatalog reemplaza el catálogo cargado y descarta los seleccionados que ya no existen.
func (s *SelectionSet) SetCatalog(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCatalogLocked(ids)
}

func (s *SelectionSet) setCatalogLocked(ids []string) {
	s.catalog = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			s.catalog[id] = struct{}{}
		}
	}
	for id := range s.selected {
		if _, ok := s.catalog[id]; !ok {
			delete(s.selected, id)
		}
	}
}

// Toggle agrega o quita id y devuelve si quedó seleccionado.
// Un id fuera del catálogo se rechaza.
func (s *SelectionSet) Toggle(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id = strings.TrimSpace(id)
	if _, ok := s.catalog[id]; !ok {
		return false, domain.NewValidationError("product_id", "no pertenece al catálogo cargado")
	}
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		return false, nil
	}
	s.selected[id] = struct{}{}
	return true, nil
}

// SelectAll selecciona todos los ids del catálogo recibido. Si la selección ya era
// igual a ese conjunto, la limpia (seleccionar todo / deseleccionar todo).
// allIDs pasa a ser el catálogo cargado.
func (s *SelectionSet) SelectAll(allIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCatalogLocked(allIDs)
	if s.allSelectedLocked() {
		s.selected = map[string]struct{}{}
		return
	}
	s.selected = make(map[string]struct{}, len(s.catalog))
	for id := range s.catalog {
		s.selected[id] = struct{}{}
	}
}

// Clear vacía la selección.
func (s *SelectionSet) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = map[string]struct{}{}
}

// IDs ids seleccionados en orden ascendente.
func (s *SelectionSet) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.selected))
	for id := range s.selected {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Len cantidad seleccionada.
func (s *SelectionSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.selected)
}

// CatalogLen tamaño del catálogo cargado.
func (s *SelectionSet) CatalogLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.catalog)
}

// AllSelected true si hay catálogo y todos sus ids están seleccionados.
func (s *SelectionSet) AllSelected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allSelectedLocked()
}

func (s *SelectionSet) allSelectedLocked() bool {
	return len(s.catalog) > 0 && len(s.selected) == len(s.catalog)
}
