package inventory_test

import (
	"context"

	"github.com/jhoicas/Inventario-scanner/internal/domain"
	"github.com/jhoicas/Inventario-scanner/internal/domain/entity"
	"github.com/jhoicas/Inventario-scanner/internal/domain/repository"
)

type fakeProductRepo struct {
	byBarcode map[string]*entity.Product
	list      []*entity.Product
	err       error
	calls     []string
	filters   []repository.ProductFilter
}

func (f *fakeProductRepo) GetByBarcode(_ context.Context, barcode string) (*entity.Product, error) {
	f.calls = append(f.calls, barcode)
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.byBarcode[barcode]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) GetByID(context.Context, string) (*entity.Product, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	f.filters = append(f.filters, filter)
	return f.list, f.err
}

func (f *fakeProductRepo) Create(context.Context, entity.NewProduct) (*entity.Product, error) {
	return nil, f.err
}

type fakeMovementRepo struct {
	errs     []error // un error por intento; nil = éxito
	requests []entity.MovementRequest
	hours    []int
}

func (f *fakeMovementRepo) Register(_ context.Context, req entity.MovementRequest) (*entity.Movement, error) {
	f.requests = append(f.requests, req)
	n := len(f.requests)
	if n <= len(f.errs) && f.errs[n-1] != nil {
		return nil, f.errs[n-1]
	}
	return &entity.Movement{ID: "mov-1", ProductID: req.ProductID, Direction: req.Direction, Quantity: req.Quantity}, nil
}

func (f *fakeMovementRepo) Recent(_ context.Context, hours int) ([]*entity.Movement, error) {
	f.hours = append(f.hours, hours)
	return []*entity.Movement{{ID: "m1"}}, nil
}
