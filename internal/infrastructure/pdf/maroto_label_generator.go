// Package pdf genera la hoja de etiquetas local (vista previa antes de exportar).
//
// Layout de la página A4, dos etiquetas por fila:
//
//	┌──────────────────────────┬──────────────────────────┐
//	│  NOMBRE                  │  NOMBRE                  │
//	│  Tipo · Color   $ precio │  Tipo · Color   $ precio │
//	│  ||||||||||||||||||||||  │  ||||||||||||||||||||||  │
//	│  00120305                │  00130101                │
//	└──────────────────────────┴──────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Inventario-scanner/internal/domain/entity"
)

const labelsPerRow = 2

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoLabelGenerator implementa labels.SheetRenderer usando Maroto v2.
type MarotoLabelGenerator struct {
	title string
}

// NewMarotoLabelGenerator construye el generador. title va en los metadatos del PDF.
func NewMarotoLabelGenerator(title string) *MarotoLabelGenerator {
	if title == "" {
		title = "Etiquetas"
	}
	return &MarotoLabelGenerator{title: title}
}

// RenderLabels genera la hoja de etiquetas y devuelve sus bytes.
func (g *MarotoLabelGenerator) RenderLabels(_ context.Context, products []*entity.Product) ([]byte, error) {
	if len(products) == 0 {
		return nil, fmt.Errorf("pdf: no hay productos para etiquetar")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)
	for start := 0; start < len(products); start += labelsPerRow {
		end := start + labelsPerRow
		if end > len(products) {
			end = len(products)
		}
		m.AddRows(labelRow(products[start:end]))
		m.AddRows(line.NewRow(4, props.Line{Color: colorGray, Thickness: 0.2}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// labelRow una fila con hasta dos etiquetas; la celda vacía completa la grilla.
func labelRow(products []*entity.Product) core.Row {
	cols := make([]core.Col, 0, labelsPerRow)
	for _, p := range products {
		cols = append(cols, labelCol(p))
	}
	for len(cols) < labelsPerRow {
		cols = append(cols, col.New(12/labelsPerRow))
	}
	return row.New(48).Add(cols...)
}

func labelCol(p *entity.Product) core.Col {
	c := col.New(12 / labelsPerRow).Add(
		text.New(strings.ToUpper(p.Name), props.Text{
			Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 1, Left: 2, Right: 2,
		}),
		text.New(describe(p), props.Text{
			Size: 8, Color: colorGray, Top: 7, Left: 2,
		}),
		text.New(price(p), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 6, Right: 2,
		}),
	)
	if p.Barcode != "" {
		c.Add(
			code.NewBar(p.Barcode, props.Barcode{Percent: 90, Top: 13, Center: true}),
		)
	}
	return c
}

func describe(p *entity.Product) string {
	parts := make([]string, 0, 2)
	if p.Type.Name != "" {
		parts = append(parts, p.Type.Name)
	}
	if p.Color.Name != "" {
		parts = append(parts, p.Color.Name)
	}
	if len(parts) == 0 {
		return p.Barcode
	}
	return strings.Join(parts, " · ") + "  " + p.Barcode
}

func price(p *entity.Product) string {
	if p.SalePrice == nil {
		return ""
	}
	return "$ " + formatMoney(p.SalePrice.StringFixed(0))
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
