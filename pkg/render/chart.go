package render

import (
	"bytes"
	"image"
	"image/png"
	"math"

	"github.com/fogleman/gg"
)

// Chart segment colors, shared by every artifact.
const (
	paidColor      = "#4f46e5"
	remainingColor = "#e5e7eb"
)

// Chart draws the two-segment paid/remaining donut. The paid arc starts at
// twelve o'clock and sweeps clockwise; whatever it does not cover stays the
// remaining color, so the two segments always fill the full ring.
func Chart(paidFraction float64, size int) image.Image {
	if paidFraction < 0 {
		paidFraction = 0
	}
	if paidFraction > 1 {
		paidFraction = 1
	}

	dc := gg.NewContext(size, size)
	cx := float64(size) / 2
	cy := float64(size) / 2
	ring := float64(size) * 0.14
	radius := float64(size)*0.5 - ring

	dc.SetLineWidth(ring)

	dc.SetHexColor(remainingColor)
	dc.DrawArc(cx, cy, radius, 0, 2*math.Pi)
	dc.Stroke()

	if paidFraction > 0 {
		start := -math.Pi / 2
		dc.SetHexColor(paidColor)
		dc.DrawArc(cx, cy, radius, start, start+2*math.Pi*paidFraction)
		dc.Stroke()
	}

	return dc.Image()
}

// ChartPNG renders the donut chart as PNG bytes for PDF embedding.
func ChartPNG(paidFraction float64, size int) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, Chart(paidFraction, size)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
