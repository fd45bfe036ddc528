package labels

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Inventario-scanner/internal/application/commit"
	"github.com/jhoicas/Inventario-scanner/internal/domain/repository"
)

// DefaultPause espera entre exportaciones individuales.
const DefaultPause = 500 * time.Millisecond

// ExportedDocument documento recibido junto con los productos que cubre.
type ExportedDocument struct {
	ProductIDs []string
	repository.Document
}

// Exporter ejecuta el plan de exportación contra el servicio remoto.
// No reintenta: un fallo corta la exportación y se devuelve lo ya recibido.
type Exporter struct {
	planner *Planner
	repo    repository.LabelRepository
	pause   time.Duration
	sleep   commit.Sleeper
	log     zerolog.Logger
}

// ExporterOption configura el Exporter.
type ExporterOption func(*Exporter)

// WithPauseSleeper reemplaza la espera entre documentos (tests).
func WithPauseSleeper(s commit.Sleeper) ExporterOption {
	return func(e *Exporter) { e.sleep = s }
}

// NewExporter construye el exportador. pause <= 0 usa DefaultPause.
func NewExporter(planner *Planner, repo repository.LabelRepository, pause time.Duration, log zerolog.Logger, opts ...ExporterOption) *Exporter {
	if pause <= 0 {
		pause = DefaultPause
	}
	e := &Exporter{
		planner: planner,
		repo:    repo,
		pause:   pause,
		sleep:   commit.SleepContext,
		log:     log.With().Str("component", "labels").Logger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export genera los documentos de la selección actual en el modo dado.
func (e *Exporter) Export(ctx context.Context, mode Mode) ([]ExportedDocument, error) {
	plan, err := e.planner.BuildExportPayload(mode)
	if err != nil {
		return nil, err
	}

	docs := make([]ExportedDocument, 0, len(plan))
	for i, req := range plan {
		if i > 0 {
			if err := e.sleep(ctx, e.pause); err != nil {
				return docs, fmt.Errorf("exportar etiquetas: %w", err)
			}
		}
		doc, err := e.exportOne(ctx, req)
		if err != nil {
			e.log.Error().Err(err).
				Str("mode", string(req.Mode)).
				Strs("product_ids", req.ProductIDs).
				Int("exported", len(docs)).
				Msg("fallo al exportar etiquetas")
			return docs, err
		}
		docs = append(docs, ExportedDocument{ProductIDs: req.ProductIDs, Document: *doc})
	}

	e.log.Info().Str("mode", string(mode)).Int("documents", len(docs)).Msg("etiquetas exportadas")
	return docs, nil
}

func (e *Exporter) exportOne(ctx context.Context, req ExportRequest) (*repository.Document, error) {
	if req.Mode == ModeSingle {
		doc, err := e.repo.Label(ctx, req.ProductIDs[0])
		if err != nil {
			return nil, fmt.Errorf("exportar etiqueta %s: %w", req.ProductIDs[0], err)
		}
		return doc, nil
	}
	doc, err := e.repo.ExportBatch(ctx, req.ProductIDs)
	if err != nil {
		return nil, fmt.Errorf("exportar lote de %d etiquetas: %w", len(req.ProductIDs), err)
	}
	return doc, nil
}
