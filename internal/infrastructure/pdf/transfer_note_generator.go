// Package pdf implementa la generación de la remisión de traslado: el
// documento que viaja con la mercancía de la tienda origen a la destino.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Remisión de traslado  │  N° Referencia + Fecha     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ORIGEN: tienda + dirección / Tel                           │
//	│  DESTINO: tienda + dirección / Tel                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Solicitado | Recibido              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: estado + firmas de entrega y recepción             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
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

	"github.com/jhoicas/licoreria-api/internal/application/stock"
	"github.com/jhoicas/licoreria-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ stock.TransferNoteGenerator = (*MarotoTransferNoteGenerator)(nil)

// MarotoTransferNoteGenerator implementa stock.TransferNoteGenerator usando Maroto v2.
type MarotoTransferNoteGenerator struct{}

// NewMarotoTransferNoteGenerator construye el generador.
func NewMarotoTransferNoteGenerator() *MarotoTransferNoteGenerator {
	return &MarotoTransferNoteGenerator{}
}

// GenerateTransferNote genera el PDF de la remisión y devuelve sus bytes.
func (g *MarotoTransferNoteGenerator) GenerateTransferNote(_ context.Context, data *stock.TransferNoteData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Remisión de Traslado "+data.Transfer.ReferenceNumber, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data.Transfer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(shopRow("TIENDA ORIGEN", data.SourceShop))
	m.AddRows(shopRow("TIENDA DESTINO", data.DestinationShop))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(data.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(statusRow(data.Transfer))
	m.AddRows(line.NewRow(3))
	m.AddRows(signatureRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y referencia + fecha (der).
func headerRow(transfer *entity.StockTransfer) core.Row {
	fecha := transfer.TransferDate.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New("REMISIÓN DE TRASLADO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Movimiento de mercancía entre tiendas", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(transfer.ReferenceNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 3,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 11, Color: colorGray,
			}),
		),
	)
}

// shopRow: datos de una tienda (origen o destino).
func shopRow(label string, shop *entity.Shop) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Dirección: %s   |   Tel: %s",
				shop.Name,
				nonEmpty(shop.Address, "—"),
				nonEmpty(shop.Phone, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de renglones.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Producto", 6, align.Left),
		h("Solicitado", 2, align.Right),
		h("Recibido", 2, align.Right),
	)
}

// tableLineRows: una fila por renglón del traslado.
func tableLineRows(lines []stock.TransferNoteLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		name := l.ProductName
		if l.VariantName != "" {
			name += " — " + l.VariantName
		}
		received := "—"
		if l.Received > 0 {
			received = strconv.FormatInt(l.Received, 10)
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				l.SKU,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(6).Add(text.New(
				name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				strconv.FormatInt(l.Requested, 10),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				received,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// statusRow: estado actual del traslado y notas.
func statusRow(transfer *entity.StockTransfer) core.Row {
	return row.New(12).Add(
		col.New(6).Add(
			text.New("Estado: "+statusLabel(transfer.Status), props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 2,
			}),
		),
		col.New(6).Add(
			text.New("Notas: "+nonEmpty(transfer.Notes, "—"), props.Text{
				Size: 8, Top: 2, Color: colorGray,
			}),
		),
	)
}

// signatureRow: espacios de firma para quien entrega y quien recibe.
func signatureRow() core.Row {
	sign := func(label string) core.Col {
		return col.New(6).Add(
			text.New("_________________________", props.Text{
				Size: 9, Align: align.Center, Top: 8,
			}),
			text.New(label, props.Text{
				Size: 8, Align: align.Center, Top: 14, Color: colorGray,
			}),
		)
	}
	return row.New(20).Add(
		sign("Entrega (tienda origen)"),
		sign("Recibe (tienda destino)"),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func statusLabel(status string) string {
	switch status {
	case entity.TransferPending:
		return "Pendiente"
	case entity.TransferInTransit:
		return "En tránsito"
	case entity.TransferCompleted:
		return "Completado"
	case entity.TransferCancelled:
		return "Cancelado"
	}
	return status
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
