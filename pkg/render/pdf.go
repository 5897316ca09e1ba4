package render

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var mutedText = &props.Color{Red: 107, Green: 114, Blue: 128}

// PDFRenderer lays the receipt out as a single A4 page.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDF renderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render produces the PDF artifact for one receipt.
func (pr *PDFRenderer) Render(v ReceiptView, b BusinessView) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	pr.addHeader(m, v, b)
	pr.addCustomerInfo(m, v)
	pr.addPaymentDetails(m, v)
	if err := pr.addVisuals(m, v); err != nil {
		return nil, err
	}
	pr.addNotes(m, v)
	pr.addFooter(m, b)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func (pr *PDFRenderer) addHeader(m core.Maroto, v ReceiptView, b BusinessView) {
	m.AddRow(26,
		col.New(6).Add(
			text.New("RECEIPT", props.Text{
				Size:  20,
				Style: fontstyle.Bold,
				Align: align.Left,
			}),
			text.New(v.ReceiptNumber, props.Text{
				Size:  11,
				Top:   10,
				Align: align.Left,
				Color: mutedText,
			}),
		),
		col.New(6).Add(
			text.New(b.Name, props.Text{
				Size:  12,
				Style: fontstyle.Bold,
				Align: align.Right,
			}),
			text.New(b.Title, props.Text{
				Size:  9,
				Top:   6,
				Align: align.Right,
				Color: mutedText,
			}),
			text.New(b.Address, props.Text{
				Size:  9,
				Top:   11,
				Align: align.Right,
				Color: mutedText,
			}),
			text.New(b.Phone, props.Text{
				Size:  9,
				Top:   16,
				Align: align.Right,
				Color: mutedText,
			}),
		),
	)
	m.AddRow(6, line.NewCol(12))
}

func (pr *PDFRenderer) addCustomerInfo(m core.Maroto, v ReceiptView) {
	m.AddRow(10,
		col.New(12).Add(
			text.New("Customer Information", props.Text{
				Size:  12,
				Style: fontstyle.Bold,
				Align: align.Left,
			}),
		),
	)
	m.AddRow(14,
		labeledCol(6, "Customer Name", v.CustomerName),
		labeledCol(6, "Email", v.CustomerEmail),
	)
	m.AddRow(14,
		labeledCol(6, "Date", v.Date),
		labeledCol(6, "Phone", v.CustomerPhone),
	)
}

func (pr *PDFRenderer) addPaymentDetails(m core.Maroto, v ReceiptView) {
	m.AddRow(10,
		col.New(12).Add(
			text.New("Payment Details", props.Text{
				Size:  12,
				Style: fontstyle.Bold,
				Align: align.Left,
			}),
		),
	)
	m.AddRow(14,
		labeledCol(6, "Payment For", v.PaymentFor),
		labeledCol(6, "Payment Method", v.PaymentMethod),
	)
	m.AddRow(14,
		labeledCol(6, "Total Amount", v.TotalAmount),
		labeledCol(6, "Amount Paid", v.AmountPaid),
	)
	if v.HasRemaining {
		m.AddRow(14, labeledCol(12, "Remaining Balance", v.RemainingAmount))
	}
}

func (pr *PDFRenderer) addVisuals(m core.Maroto, v ReceiptView) error {
	chartPNG, err := ChartPNG(v.PaidFraction, 320)
	if err != nil {
		return err
	}

	m.AddRow(8,
		col.New(6).Add(text.New("Payment Progress", props.Text{
			Size:  10,
			Style: fontstyle.Bold,
			Align: align.Center,
		})),
		col.New(6).Add(text.New("Receipt QR Code", props.Text{
			Size:  10,
			Style: fontstyle.Bold,
			Align: align.Center,
		})),
	)
	m.AddRow(52,
		image.NewFromBytesCol(6, chartPNG, extension.Png, props.Rect{
			Center:  true,
			Percent: 90,
		}),
		code.NewQrCol(6, v.Verification, props.Rect{
			Center:  true,
			Percent: 90,
		}),
	)

	legend := fmt.Sprintf("Paid (%d%%)", v.PaidPercentage)
	if v.HasRemaining {
		legend = fmt.Sprintf("Paid (%d%%)   Remaining (%d%%)", v.PaidPercentage, v.RemainingPercentage)
	}
	m.AddRow(8,
		col.New(6).Add(text.New(legend, props.Text{
			Size:  9,
			Align: align.Center,
		})),
		col.New(6).Add(text.New("Scan to verify receipt", props.Text{
			Size:  8,
			Align: align.Center,
			Color: mutedText,
		})),
	)
	return nil
}

func (pr *PDFRenderer) addNotes(m core.Maroto, v ReceiptView) {
	if v.Notes == "" {
		return
	}
	m.AddRow(8,
		col.New(12).Add(text.New("Notes", props.Text{
			Size:  10,
			Style: fontstyle.Bold,
			Align: align.Left,
		})),
	)
	m.AddRow(14,
		col.New(12).Add(text.New(v.Notes, props.Text{
			Size:  9,
			Align: align.Left,
			Color: mutedText,
		})),
	)
}

func (pr *PDFRenderer) addFooter(m core.Maroto, b BusinessView) {
	m.AddRow(6, line.NewCol(12))
	m.AddRow(14,
		col.New(12).Add(
			text.New(b.Footer, props.Text{
				Size:  10,
				Align: align.Center,
			}),
			text.New("This receipt was generated by "+b.Name+"'s Receipt Generator", props.Text{
				Size:  7,
				Top:   7,
				Align: align.Center,
				Color: mutedText,
			}),
		),
	)
}

// labeledCol renders a muted label above its value. Empty values leave the
// cell blank rather than showing an orphaned label.
func labeledCol(span int, label, value string) core.Col {
	c := col.New(span)
	if value == "" {
		return c
	}
	return c.Add(
		text.New(label, props.Text{
			Size:  8,
			Align: align.Left,
			Color: mutedText,
		}),
		text.New(value, props.Text{
			Size:  10,
			Top:   4,
			Align: align.Left,
		}),
	)
}
