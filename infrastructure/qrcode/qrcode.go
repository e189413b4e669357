package qrcode

import (
	"github.com/prasetyowira/qrlogo/constant"
	"github.com/prasetyowira/qrlogo/domain/composer"
	"github.com/prasetyowira/qrlogo/infrastructure/logger"
	"github.com/skip2/go-qrcode"
)

// Encoder produces QR symbols at the highest recovery level (~30% damage tolerated).
// The smallest version that holds the content is chosen by go-qrcode.
type Encoder struct {
	level qrcode.RecoveryLevel
}

// NewEncoder creates a new level H encoder
func NewEncoder() *Encoder {
	return &Encoder{
		level: qrcode.Highest,
	}
}

// Encode builds the module matrix for text, without the library's fixed quiet zone
func (e *Encoder) Encode(text string) (*composer.Symbol, error) {
	q, err := qrcode.New(text, e.level)
	if err != nil {
		logger.Debug("go-qrcode rejected content", logger.LoggerInfo{
			ContextFunction: constant.CtxEncode,
			Data: map[string]interface{}{
				constant.DataTextLength: len(text),
			},
		})
		return nil, err
	}

	// The border is drawn by the composer in module units.
	q.DisableBorder = true

	// Bitmap runs the encoder; it must only be called once per QRCode.
	bitmap := q.Bitmap()

	return &composer.Symbol{
		Bitmap:  bitmap,
		Version: q.VersionNumber,
	}, nil
}
