package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-scanner/internal/application/inventory"
	"github.com/jhoicas/Inventario-scanner/internal/domain"
	"github.com/jhoicas/Inventario-scanner/internal/domain/entity"
)

func TestResolve_ProductoEncontrado(t *testing.T) {
	repo := &fakeProductRepo{byBarcode: map[string]*entity.Product{
		"7891234567890": {ID: "1", Barcode: "7891234567890", CurrentStock: 10, MinimumStock: 5},
	}}
	r := inventory.NewProductResolver(repo, zerolog.Nop())

	p, err := r.Resolve(context.Background(), " 7891234567890 ")
	require.NoError(t, err)
	assert.Equal(t, "1", p.ID)
	assert.Equal(t, []string{"7891234567890"}, repo.calls, "una sola consulta, código normalizado")
}

func TestResolve_CodigoVacio_NoLlamaAlServicio(t *testing.T) {
	repo := &fakeProductRepo{}
	r := inventory.NewProductResolver(repo, zerolog.Nop())

	for _, code := range []string{"", "   ", "\t"} {
		_, err := r.Resolve(context.Background(), code)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
	assert.Empty(t, repo.calls)
}

func TestResolve_NoEncontrado(t *testing.T) {
	repo := &fakeProductRepo{byBarcode: map[string]*entity.Product{}}
	r := inventory.NewProductResolver(repo, zerolog.Nop())

	_, err := r.Resolve(context.Background(), "00000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrTransport)
}

func TestResolve_FalloDeTransporte_SinReintento(t *testing.T) {
	repo := &fakeProductRepo{err: errors.New("connection reset")}
	r := inventory.NewProductResolver(repo, zerolog.Nop())

	_, err := r.Resolve(context.Background(), "00010101")
	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, repo.calls, 1)
}

func TestNormalizeBarcode_AnchoCompleto(t *testing.T) {
	assert.Equal(t, "7891234567890", inventory.NormalizeBarcode("７８９１２３４５６７８９０"))
	assert.Equal(t, "ABC-1", inventory.NormalizeBarcode("  ABC-1\n"))
}
