// Package pdf genera el recibo de pagamento de una fatura de renovación.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la plataforma  │  N° Recibo + Fecha pago │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Razón social + CPF/CNPJ + email                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DETALLE: Plano contratado | Período | Valor                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL PAGO (Pix) + nuevo vencimiento                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	"github.com/conversahub/billing-api/internal/application/subscription"
	"github.com/conversahub/billing-api/internal/domain/entity"
	"github.com/conversahub/billing-api/pkg/brdoc"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ subscription.ReceiptPDFGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implementa ReceiptPDFGenerator usando Maroto v2.
type MarotoReceiptGenerator struct {
	appName string
}

// NewMarotoReceiptGenerator construye el generador con el nombre de la
// plataforma que encabeza el recibo.
func NewMarotoReceiptGenerator(appName string) *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{appName: appName}
}

// GenerateReceiptPDF genera el recibo y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(
	_ context.Context,
	invoice *entity.Invoice,
	company *entity.Company,
	plan *entity.Plan,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Recibo de pagamento #%d", invoice.ID), true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.appName, invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clienteRow(company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(detalleRow(invoice, plan))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(invoice, company))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: plataforma (izq) y número de recibo + fecha de pago (der).
func headerRow(appName string, invoice *entity.Invoice) core.Row {
	fecha := "—"
	if invoice.PaidAt != nil {
		fecha = invoice.PaidAt.Format("02/01/2006")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(appName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Recibo de pagamento", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("RECIBO #%d", invoice.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 3,
			}),
			text.New("Pago em: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 11, Color: colorGray,
			}),
		),
	)
}

// clienteRow: datos de la empresa pagadora.
func clienteRow(company *entity.Company) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("%s: %s   |   Email: %s",
				brdoc.Type(company.Document), company.Document, company.Email,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// detalleRow: plano contratado, descripción y valor de la factura.
func detalleRow(invoice *entity.Invoice, plan *entity.Plan) core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New("Descrição", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(invoice.Detail, props.Text{Size: 9, Top: 7}),
		),
		col.New(3).Add(
			text.New("Plano", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(plan.Name, props.Text{Size: 9, Top: 7}),
		),
		col.New(3).Add(
			text.New("Valor", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("R$ "+invoice.Value.StringFixed(2), props.Text{
				Size: 9, Align: align.Right, Top: 7,
			}),
		),
	)
}

// totalRow: total pago vía Pix y el vencimiento resultante.
func totalRow(invoice *entity.Invoice, company *entity.Company) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New("Forma de pagamento: Pix", props.Text{Size: 9, Top: 3, Color: colorGray}),
			text.New("Assinatura válida até "+company.DueDate.Format("02/01/2006"), props.Text{
				Size: 9, Top: 10, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("TOTAL PAGO", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 2,
			}),
			text.New("R$ "+invoice.Value.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 13, Align: align.Right,
				Color: colorPrimary, Top: 9,
			}),
		),
	)
}
