package imaging

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strconv"

	"github.com/fogleman/gg"
	"github.com/nfnt/resize"
	"github.com/prasetyowira/qrlogo/constant"
	"github.com/prasetyowira/qrlogo/infrastructure/cache"
	"github.com/prasetyowira/qrlogo/infrastructure/logger"
)

// LogoLoader decodes logo files and scales them with a Lanczos filter.
// Scaled logos are cached by path, modification time, file size and edge, so an
// edited file is read again.
type LogoLoader struct {
	cache *cache.NamespaceLRU[image.Image]
}

// NewLogoLoader creates a new loader; lru may be nil
func NewLogoLoader(lru *cache.NamespaceLRU[image.Image]) *LogoLoader {
	return &LogoLoader{cache: lru}
}

// Load reads the image at path and returns it resized to edge x edge
func (l *LogoLoader) Load(ctx context.Context, path string, edge int) (image.Image, error) {
	if edge <= 0 {
		return nil, fmt.Errorf("invalid logo edge %d", edge)
	}

	info, err := os.Stat(path)
	if err != nil {
		logger.CtxWarn(ctx, "Logo file not accessible", logger.LoggerInfo{
			ContextFunction: constant.CtxLoadLogo,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeLogoStat,
				Message: err.Error(),
				Type:    constant.ErrTypeResource,
			},
			Data: map[string]interface{}{
				constant.DataLogoPath: path,
			},
		})
		return nil, fmt.Errorf("open logo: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("open logo: %s is a directory", path)
	}

	key := path + "|" + strconv.FormatInt(info.ModTime().UnixNano(), 10) +
		"|" + strconv.FormatInt(info.Size(), 10) + "|" + strconv.Itoa(edge)

	if l.cache != nil {
		if img, ok := l.cache.Get(constant.LogoNamespace, key); ok {
			logger.CtxDebug(ctx, "Logo served from cache", logger.LoggerInfo{
				ContextFunction: constant.CtxLoadLogo,
				Data: map[string]interface{}{
					constant.DataLogoPath: path,
					constant.DataLogoEdge: edge,
					constant.DataCacheHit: true,
				},
			})
			return img, nil
		}
	}

	// gg.LoadImage closes the file once the pixels are decoded.
	src, err := gg.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("decode logo %s: %w", path, err)
	}

	scaled := resize.Resize(uint(edge), uint(edge), src, resize.Lanczos3)

	if l.cache != nil {
		l.cache.Set(constant.LogoNamespace, key, scaled)
	}

	logger.CtxDebug(ctx, "Logo loaded", logger.LoggerInfo{
		ContextFunction: constant.CtxLoadLogo,
		Data: map[string]interface{}{
			constant.DataLogoPath: path,
			constant.DataLogoEdge: edge,
			constant.DataCacheHit: false,
			constant.DataWidth:    src.Bounds().Dx(),
			constant.DataHeight:   src.Bounds().Dy(),
		},
	})

	return scaled, nil
}
