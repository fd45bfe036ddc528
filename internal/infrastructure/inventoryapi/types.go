package inventoryapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-scanner/internal/domain/entity"
)

// flexID identificador que el servicio puede enviar como número o como texto.
type flexID string

func (id *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id inválido %s: %w", string(b), err)
	}
	*id = flexID(n.String())
	return nil
}

// MarshalJSON envía ids numéricos como número para no romper servicios con ids enteros.
func (id flexID) MarshalJSON() ([]byte, error) {
	s := string(id)
	if s == "" {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return []byte(s), nil
	}
	return json.Marshal(s)
}

type refWire struct {
	ID   flexID `json:"id"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

func (r *refWire) toEntity(fallbackID flexID) entity.Ref {
	if r == nil {
		return entity.Ref{ID: string(fallbackID)}
	}
	return entity.Ref{ID: string(r.ID), Name: r.Name, Code: r.Code}
}

type productWire struct {
	ID           flexID           `json:"id"`
	Barcode      string           `json:"barcode"`
	ProductCode  string           `json:"product_code"`
	Name         string           `json:"name"`
	TypeID       flexID           `json:"type_id"`
	ColorID      flexID           `json:"color_id"`
	Type         *refWire         `json:"type"`
	Color        *refWire         `json:"color"`
	CurrentStock int              `json:"current_stock"`
	MinimumStock int              `json:"minimum_stock"`
	CostPrice    *decimal.Decimal `json:"cost_price"`
	SalePrice    *decimal.Decimal `json:"sale_price"`
	Notes        string           `json:"notes"`
	Active       *bool            `json:"active"`
	CreatedAt    *time.Time       `json:"created_at"`
}

func (w productWire) toEntity() *entity.Product {
	p := &entity.Product{
		ID:           string(w.ID),
		Barcode:      strings.TrimSpace(w.Barcode),
		ProductCode:  w.ProductCode,
		Name:         w.Name,
		Type:         w.Type.toEntity(w.TypeID),
		Color:        w.Color.toEntity(w.ColorID),
		CurrentStock: w.CurrentStock,
		MinimumStock: w.MinimumStock,
		CostPrice:    w.CostPrice,
		SalePrice:    w.SalePrice,
		Notes:        w.Notes,
		Active:       w.Active == nil || *w.Active,
	}
	if w.CreatedAt != nil {
		p.CreatedAt = *w.CreatedAt
	}
	return p
}

// productListWire acepta un arreglo plano o {"items": [...]}.
type productListWire []productWire

func (l *productListWire) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var wrapped struct {
			Items []productWire `json:"items"`
		}
		if err := json.Unmarshal(b, &wrapped); err != nil {
			return err
		}
		*l = wrapped.Items
		return nil
	}
	var items []productWire
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	*l = items
	return nil
}

// refListWire tipos o colores; acepta un arreglo plano o {"items": [...]}.
type refListWire []activeRefWire

type activeRefWire struct {
	refWire
	Active *bool `json:"active"`
}

func (l *refListWire) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var wrapped struct {
			Items []activeRefWire `json:"items"`
		}
		if err := json.Unmarshal(b, &wrapped); err != nil {
			return err
		}
		*l = wrapped.Items
		return nil
	}
	var items []activeRefWire
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	*l = items
	return nil
}

// activeRefs descarta los inactivos; sin campo active se asume activo.
func (l refListWire) activeRefs() []entity.Ref {
	refs := make([]entity.Ref, 0, len(l))
	for i := range l {
		if l[i].Active != nil && !*l[i].Active {
			continue
		}
		refs = append(refs, l[i].refWire.toEntity(""))
	}
	return refs
}

type newProductWire struct {
	Name         string           `json:"name"`
	TypeID       flexID           `json:"type_id"`
	ColorID      flexID           `json:"color_id"`
	InitialStock int              `json:"initial_stock"`
	MinimumStock int              `json:"minimum_stock"`
	CostPrice    *decimal.Decimal `json:"cost_price,omitempty"`
	SalePrice    *decimal.Decimal `json:"sale_price,omitempty"`
	Notes        string           `json:"notes,omitempty"`
}

func newProductWireFrom(in entity.NewProduct) newProductWire {
	return newProductWire{
		Name:         in.Name,
		TypeID:       flexID(in.TypeID),
		ColorID:      flexID(in.ColorID),
		InitialStock: in.InitialStock,
		MinimumStock: in.MinimumStock,
		CostPrice:    in.CostPrice,
		SalePrice:    in.SalePrice,
		Notes:        in.Notes,
	}
}

type movementRequestWire struct {
	ProductID flexID `json:"product_id"`
	Barcode   string `json:"barcode"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes,omitempty"`
}

type movementWire struct {
	ID            flexID     `json:"id"`
	ProductID     flexID     `json:"product_id"`
	Type          string     `json:"type"`
	Quantity      int        `json:"quantity"`
	PreviousStock int        `json:"previous_stock"`
	CurrentStock  int        `json:"current_stock"`
	Notes         string     `json:"notes"`
	User          string     `json:"user"`
	CreatedAt     *time.Time `json:"created_at"`
}

func (w movementWire) toEntity(fallback entity.Direction) *entity.Movement {
	dir := entity.Direction(strings.ToUpper(w.Type))
	if !dir.Valid() {
		dir = fallback
	}
	m := &entity.Movement{
		ID:            string(w.ID),
		ProductID:     string(w.ProductID),
		Direction:     dir,
		Quantity:      w.Quantity,
		PreviousStock: w.PreviousStock,
		CurrentStock:  w.CurrentStock,
		Note:          w.Notes,
		User:          w.User,
	}
	if w.CreatedAt != nil {
		m.CreatedAt = *w.CreatedAt
	}
	return m
}

type exportBatchWire struct {
	ProductIDs []flexID `json:"product_ids"`
}

type errorWire struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

// message extrae un texto legible del cuerpo de error; detail puede ser texto o lista.
func (e errorWire) message() string {
	if e.Message != "" {
		return e.Message
	}
	var s string
	if err := json.Unmarshal(e.Detail, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(e.Detail))
}
