package labels_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-scanner/internal/application/labels"
	"github.com/jhoicas/Inventario-scanner/internal/domain"
	"github.com/jhoicas/Inventario-scanner/internal/domain/entity"
	"github.com/jhoicas/Inventario-scanner/internal/domain/repository"
)

type catalogRepo struct{ products []*entity.Product }

func (c *catalogRepo) GetByBarcode(context.Context, string) (*entity.Product, error) {
	return nil, domain.ErrNotFound
}
func (c *catalogRepo) GetByID(context.Context, string) (*entity.Product, error) { return nil, nil }
func (c *catalogRepo) List(context.Context, repository.ProductFilter) ([]*entity.Product, error) {
	return c.products, nil
}
func (c *catalogRepo) Create(context.Context, entity.NewProduct) (*entity.Product, error) {
	return nil, nil
}

type recordingRenderer struct{ got []*entity.Product }

func (r *recordingRenderer) RenderLabels(_ context.Context, products []*entity.Product) ([]byte, error) {
	r.got = products
	return []byte("%PDF"), nil
}

func newService(products []*entity.Product) (*labels.Service, *recordingRenderer, *fakeLabelRepo) {
	planner := labels.NewPlanner(labels.NewSelectionSet())
	repo := &fakeLabelRepo{}
	exporter := labels.NewExporter(planner, repo, 0, zerolog.Nop(),
		labels.WithPauseSleeper(func(context.Context, time.Duration) error { return nil }))
	renderer := &recordingRenderer{}
	return labels.NewService(&catalogRepo{products: products}, planner, exporter, renderer), renderer, repo
}

func fiveProducts() []*entity.Product {
	out := make([]*entity.Product, 0, 5)
	for _, id := range catalog5 {
		out = append(out, &entity.Product{ID: id, Name: "P" + id, Barcode: "000" + id})
	}
	return out
}

func TestService_SelectAllOscila(t *testing.T) {
	svc, _, _ := newService(fiveProducts())
	view, err := svc.LoadCatalog(context.Background(), repository.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, 5, view.Total)

	view = svc.SelectAll()
	assert.Equal(t, 5, view.Count)
	assert.True(t, view.AllSelected)

	view = svc.SelectAll()
	assert.Equal(t, 0, view.Count)
}

func TestService_PreviewSoloSeleccionados(t *testing.T) {
	svc, renderer, _ := newService(fiveProducts())
	_, _ = svc.LoadCatalog(context.Background(), repository.ProductFilter{})
	_, err := svc.Toggle("3")
	require.NoError(t, err)

	out, err := svc.Preview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), out)
	require.Len(t, renderer.got, 1)
	assert.Equal(t, "3", renderer.got[0].ID)
}

func TestService_PreviewSinSeleccion(t *testing.T) {
	svc, renderer, _ := newService(fiveProducts())
	_, _ = svc.LoadCatalog(context.Background(), repository.ProductFilter{})

	_, err := svc.Preview(context.Background())
	assert.ErrorIs(t, err, domain.ErrEmptySelection)
	assert.Nil(t, renderer.got)
}

func TestService_ExportBatch(t *testing.T) {
	svc, _, repo := newService(fiveProducts())
	_, _ = svc.LoadCatalog(context.Background(), repository.ProductFilter{})
	svc.SelectAll()

	out, err := svc.Export(context.Background(), labels.ModeBatch)
	require.NoError(t, err)
	assert.Equal(t, "batch", out.Mode)
	require.Len(t, out.Documents, 1)
	assert.Equal(t, catalog5, repo.batches[0])
}
