package render

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Canvas geometry for the PNG artifact.
const (
	imageWidth  = 900
	imageHeight = 1240
	marginX     = 60.0
)

const (
	inkColor   = "#111827"
	mutedColor = "#6b7280"
	ruleColor  = "#e5e7eb"
)

// ImageRenderer rasterizes a receipt into a PNG. fontPath may point at a TTF
// for proper typography; without one the renderer falls back to the built-in
// bitmap face.
type ImageRenderer struct {
	fontPath string
}

// NewImageRenderer creates a PNG renderer.
func NewImageRenderer(fontPath string) *ImageRenderer {
	return &ImageRenderer{fontPath: fontPath}
}

func (ir *ImageRenderer) face(points float64) font.Face {
	if ir.fontPath != "" {
		if face, err := gg.LoadFontFace(ir.fontPath, points); err == nil {
			return face
		}
	}
	return basicfont.Face7x13
}

// Render draws the full receipt: identity header, customer info, payment
// details, proportion chart, verification QR, notes and footer.
func (ir *ImageRenderer) Render(v ReceiptView, b BusinessView) ([]byte, error) {
	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetHexColor("#ffffff")
	dc.Clear()

	right := float64(imageWidth) - marginX

	// Header
	dc.SetFontFace(ir.face(34))
	dc.SetHexColor(inkColor)
	dc.DrawString("RECEIPT", marginX, 100)
	dc.SetFontFace(ir.face(18))
	dc.SetHexColor(mutedColor)
	dc.DrawString(v.ReceiptNumber, marginX, 130)

	dc.SetFontFace(ir.face(20))
	dc.SetHexColor(inkColor)
	dc.DrawStringAnchored(b.Name, right, 88, 1, 0)
	dc.SetFontFace(ir.face(15))
	dc.SetHexColor(mutedColor)
	dc.DrawStringAnchored(b.Title, right, 110, 1, 0)
	dc.DrawStringAnchored(b.Address, right, 130, 1, 0)
	dc.DrawStringAnchored(b.Phone, right, 150, 1, 0)

	y := 180.0
	ir.rule(dc, y)
	y += 50

	// Customer information
	y = ir.sectionTitle(dc, "Customer Information", y)
	colB := marginX + (right-marginX)/2

	y2 := ir.field(dc, "Customer Name", v.CustomerName, marginX, y)
	if v.CustomerEmail != "" {
		ir.field(dc, "Email", v.CustomerEmail, colB, y)
	}
	y = y2
	y2 = ir.field(dc, "Date", v.Date, marginX, y)
	if v.CustomerPhone != "" {
		ir.field(dc, "Phone", v.CustomerPhone, colB, y)
	}
	y = y2 + 14

	// Payment details
	y = ir.sectionTitle(dc, "Payment Details", y)
	y2 = ir.field(dc, "Payment For", v.PaymentFor, marginX, y)
	if v.PaymentMethod != "" {
		ir.field(dc, "Payment Method", v.PaymentMethod, colB, y)
	}
	y = y2
	y2 = ir.field(dc, "Total Amount", v.TotalAmount, marginX, y)
	ir.field(dc, "Amount Paid", v.AmountPaid, colB, y)
	y = y2
	if v.HasRemaining {
		y = ir.field(dc, "Remaining Balance", v.RemainingAmount, marginX, y)
	}
	y += 20

	// Proportion chart and QR code, side by side
	const chartSize = 240
	const qrSize = 200

	dc.SetFontFace(ir.face(15))
	dc.SetHexColor(inkColor)
	chartCx := marginX + chartSize/2
	dc.DrawStringAnchored("Payment Progress", chartCx, y, 0.5, 0)
	qrCx := right - qrSize/2
	dc.DrawStringAnchored("Receipt QR Code", qrCx, y, 0.5, 0)
	y += 16

	chart := Chart(v.PaidFraction, chartSize)
	dc.DrawImage(chart, int(marginX), int(y))

	qr, err := qrImage(v.Verification, qrSize)
	if err != nil {
		return nil, err
	}
	dc.DrawImage(qr, int(right)-qrSize, int(y)+(chartSize-qrSize)/2)

	legendY := y + chartSize + 26
	lx := marginX
	lx = ir.legendDot(dc, paidColor, "Paid", v.PaidPercentage, lx, legendY)
	if v.HasRemaining {
		ir.legendDot(dc, remainingColor, "Remaining", v.RemainingPercentage, lx, legendY)
	}
	dc.SetFontFace(ir.face(13))
	dc.SetHexColor(mutedColor)
	dc.DrawStringAnchored("Scan to verify receipt", qrCx, legendY, 0.5, 0)
	y = legendY + 44

	// Notes
	if v.Notes != "" {
		y = ir.sectionTitle(dc, "Notes", y)
		dc.SetFontFace(ir.face(15))
		dc.SetHexColor(mutedColor)
		dc.DrawStringWrapped(v.Notes, marginX, y, 0, 0, right-marginX, 1.5, gg.AlignLeft)
		y += 80
	}

	// Footer
	footerY := float64(imageHeight) - 110
	if y > footerY {
		footerY = y
	}
	ir.rule(dc, footerY)
	dc.SetFontFace(ir.face(15))
	dc.SetHexColor(inkColor)
	dc.DrawStringAnchored(b.Footer, imageWidth/2, footerY+36, 0.5, 0)
	dc.SetFontFace(ir.face(12))
	dc.SetHexColor(mutedColor)
	dc.DrawStringAnchored("This receipt was generated by "+b.Name+"'s Receipt Generator",
		imageWidth/2, footerY+60, 0.5, 0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (ir *ImageRenderer) rule(dc *gg.Context, y float64) {
	dc.SetHexColor(ruleColor)
	dc.SetLineWidth(1.5)
	dc.DrawLine(marginX, y, float64(imageWidth)-marginX, y)
	dc.Stroke()
}

func (ir *ImageRenderer) sectionTitle(dc *gg.Context, title string, y float64) float64 {
	dc.SetFontFace(ir.face(19))
	dc.SetHexColor(inkColor)
	dc.DrawString(title, marginX, y)
	return y + 34
}

// field draws a muted label with its value underneath and returns the next
// row's baseline.
func (ir *ImageRenderer) field(dc *gg.Context, label, value string, x, y float64) float64 {
	dc.SetFontFace(ir.face(13))
	dc.SetHexColor(mutedColor)
	dc.DrawString(label, x, y)
	dc.SetFontFace(ir.face(16))
	dc.SetHexColor(inkColor)
	dc.DrawString(value, x, y+22)
	return y + 58
}

func (ir *ImageRenderer) legendDot(dc *gg.Context, color, label string, pct int, x, y float64) float64 {
	dc.SetHexColor(color)
	dc.DrawCircle(x+6, y-5, 6)
	dc.Fill()
	dc.SetFontFace(ir.face(14))
	dc.SetHexColor(inkColor)
	text := fmt.Sprintf("%s (%d%%)", label, pct)
	dc.DrawString(text, x+18, y)
	w, _ := dc.MeasureString(text)
	return x + 18 + w + 30
}
