package imaging

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/prasetyowira/qrlogo/constant"
	"github.com/prasetyowira/qrlogo/infrastructure/logger"
)

// PNGWriter writes whole PNG files atomically: the image is encoded into a temporary
// file next to the destination which is then renamed over it.
type PNGWriter struct {
	// Mode is applied to the written file, 0644 when zero
	Mode os.FileMode
}

// NewPNGWriter creates a new writer
func NewPNGWriter() *PNGWriter {
	return &PNGWriter{Mode: 0o644}
}

// WritePNG encodes img to path, replacing any existing file
func (w *PNGWriter) WritePNG(path string, img image.Image) (err error) {
	mode := w.Mode
	if mode == 0 {
		mode = 0o644
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".qrlogo-*.png")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
			logger.Error("Failed to write PNG", logger.LoggerInfo{
				ContextFunction: constant.CtxWritePNG,
				Error: &logger.CustomError{
					Code:    constant.ErrCodeWritePNG,
					Message: err.Error(),
					Type:    constant.ErrTypeResource,
				},
				Data: map[string]interface{}{
					constant.DataDest: path,
				},
			})
		}
	}()

	if err = png.Encode(tmp, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err = os.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}

	return nil
}
