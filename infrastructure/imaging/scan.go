package imaging

import (
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	zxingqr "github.com/makiuchi-d/gozxing/qrcode"
)

// Scanner decodes QR symbols with gozxing
type Scanner struct{}

// NewScanner creates a new scanner
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan decodes the QR symbol in img. Detection runs first; rendered images with a
// thin quiet zone fall back to pure-barcode sampling.
func (s *Scanner) Scan(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("creating bitmap: %w", err)
	}

	reader := zxingqr.NewQRCodeReader()

	result, err := reader.Decode(bmp, map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	})
	if err == nil {
		return result.GetText(), nil
	}

	result, pureErr := reader.Decode(bmp, map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_PURE_BARCODE: true,
	})
	if pureErr == nil {
		return result.GetText(), nil
	}

	return "", fmt.Errorf("no QR code found in image: %w", err)
}
