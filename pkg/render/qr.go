package render

import (
	"image"

	qrcode "github.com/skip2/go-qrcode"
)

// QRPNG encodes payload into a QR code PNG of size x size pixels.
func QRPNG(payload string, size int) ([]byte, error) {
	return qrcode.Encode(payload, qrcode.Medium, size)
}

// qrImage returns the QR code as an image for composition into a larger
// render.
func qrImage(payload string, size int) (image.Image, error) {
	q, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	return q.Image(size), nil
}
