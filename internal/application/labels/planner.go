package labels

import (
	"strings"

	"github.com/jhoicas/Inventario-scanner/internal/domain"
)

// Mode modo de exportación de etiquetas.
type Mode string

const (
	// ModeBatch un único documento con todos los seleccionados.
	ModeBatch Mode = "batch"
	// ModeSingle un documento por producto, enviados en secuencia.
	ModeSingle Mode = "single"
)

// ParseMode interpreta el modo recibido por query string. Vacío equivale a batch.
func ParseMode(raw string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ModeBatch:
		return ModeBatch, nil
	case ModeSingle:
		return ModeSingle, nil
	}
	return "", domain.NewValidationError("mode", "debe ser single o batch")
}

// ExportRequest payload de una llamada de generación de documento.
type ExportRequest struct {
	Mode       Mode
	ProductIDs []string
}

// BuildExportPayload arma los payloads para ids: uno solo en batch, uno por id en single.
// Una selección vacía se rechaza antes de construir nada.
func BuildExportPayload(mode Mode, ids []string) ([]ExportRequest, error) {
	if len(ids) == 0 {
		return nil, &domain.ValidationError{Field: "selection", Reason: domain.ErrEmptySelection.Error(), Err: domain.ErrEmptySelection}
	}
	switch mode {
	case ModeBatch:
		all := make([]string, len(ids))
		copy(all, ids)
		return []ExportRequest{{Mode: ModeBatch, ProductIDs: all}}, nil
	case ModeSingle:
		out := make([]ExportRequest, 0, len(ids))
		for _, id := range ids {
			out = append(out, ExportRequest{Mode: ModeSingle, ProductIDs: []string{id}})
		}
		return out, nil
	}
	return nil, domain.NewValidationError("mode", "debe ser single o batch")
}

// Planner construye payloads a partir de la selección actual.
type Planner struct {
	selection *SelectionSet
}

// NewPlanner construye el planner sobre una selección.
func NewPlanner(selection *SelectionSet) *Planner {
	return &Planner{selection: selection}
}

// Selection selección administrada.
func (p *Planner) Selection() *SelectionSet { return p.selection }

// BuildExportPayload payloads para la selección actual.
func (p *Planner) BuildExportPayload(mode Mode) ([]ExportRequest, error) {
	return BuildExportPayload(mode, p.selection.IDs())
}
