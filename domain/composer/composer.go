package composer

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"math"
	"path/filepath"
	"strings"

	"github.com/prasetyowira/qrlogo/constant"
	"github.com/prasetyowira/qrlogo/infrastructure/logger"
)

// Encoder turns text into a QR symbol at the highest error correction level,
// picking the smallest version that fits.
type Encoder interface {
	Encode(text string) (*Symbol, error)
}

// LogoLoader reads the logo at path and returns it resized to edge x edge pixels
type LogoLoader interface {
	Load(ctx context.Context, path string, edge int) (image.Image, error)
}

// ImageWriter persists an image as a PNG file, replacing any existing file
type ImageWriter interface {
	WritePNG(path string, img image.Image) error
}

// Scanner decodes a QR symbol from a raster image
type Scanner interface {
	Scan(img image.Image) (string, error)
}

// Options tune the composer
type Options struct {
	// MaxImageEdge bounds the output width in pixels; zero disables the check
	MaxImageEdge int
}

// Composer generates, saves and verifies QR images
type Composer struct {
	encoder Encoder
	logos   LogoLoader
	writer  ImageWriter
	scanner Scanner
	opts    Options
}

// New creates a new composer
func New(encoder Encoder, logos LogoLoader, writer ImageWriter, scanner Scanner, opts Options) *Composer {
	logger.Debug("Creating composer", logger.LoggerInfo{
		ContextFunction: constant.CtxDomain,
		Data: map[string]interface{}{
			constant.DataService: "composer",
		},
	})

	return &Composer{
		encoder: encoder,
		logos:   logos,
		writer:  writer,
		scanner: scanner,
		opts:    opts,
	}
}

// Generate encodes the request text, renders it and overlays the logo if one is set.
// On failure no image is returned.
func (c *Composer) Generate(ctx context.Context, req GenerationRequest) (*ComposedImage, error) {
	text := strings.TrimSpace(req.Text)

	logger.CtxDebug(ctx, "Generating QR code", logger.LoggerInfo{
		ContextFunction: constant.CtxGenerate,
		Data: map[string]interface{}{
			constant.DataTextLength: len(text),
			constant.DataModuleSize: req.ModuleSize,
			constant.DataBorder:     req.Border,
			constant.DataLogoPath:   req.LogoPath,
		},
	})

	if text == "" {
		return nil, c.fail(ctx, constant.CtxGenerate, constant.ErrCodeEmptyText, newError(KindValidation, "generate", ErrEmptyText))
	}
	if req.ModuleSize <= 0 {
		return nil, c.fail(ctx, constant.CtxGenerate, constant.ErrCodeInvalidSize,
			newError(KindValidation, "generate", fmt.Errorf("%w: %d", ErrInvalidSize, req.ModuleSize)))
	}
	if req.Border < 0 {
		return nil, c.fail(ctx, constant.CtxGenerate, constant.ErrCodeInvalidBorder,
			newError(KindValidation, "generate", fmt.Errorf("%w: %d", ErrInvalidBorder, req.Border)))
	}

	symbol, err := c.encoder.Encode(text)
	if err != nil {
		return nil, c.fail(ctx, constant.CtxGenerate, constant.ErrCodeEncode, newError(KindCapacity, "encode", err))
	}

	edge, err := OutputEdge(symbol.Size(), req.Border, req.ModuleSize)
	if err == nil && c.opts.MaxImageEdge > 0 && edge > c.opts.MaxImageEdge {
		err = fmt.Errorf("%w: %dpx > %dpx", ErrImageTooLarge, edge, c.opts.MaxImageEdge)
	}
	if err != nil {
		return nil, c.fail(ctx, constant.CtxGenerate, constant.ErrCodeImageTooLarge, newError(KindValidation, "generate", err))
	}

	img := render(symbol, req.ModuleSize, req.Border, edge, req.Fill, req.Background)

	out := &ComposedImage{
		Image:      img,
		Version:    symbol.Version,
		Modules:    symbol.Size(),
		ModuleSize: req.ModuleSize,
		Border:     req.Border,
	}

	if req.LogoPath != "" {
		rect := LogoRect(img.Bounds())
		if rect.Empty() {
			return nil, c.fail(ctx, constant.CtxGenerate, constant.ErrCodeLogoEmpty, newError(KindValidation, "overlay logo", ErrLogoTooSmall))
		}

		logo, err := c.logos.Load(ctx, req.LogoPath, rect.Dx())
		if err != nil {
			return nil, c.fail(ctx, constant.CtxGenerate, constant.ErrCodeLogoLoad, newError(KindResource, "load logo", err))
		}

		Overlay(img, logo, rect)
		out.HasLogo = true
		out.LogoRect = rect
	}

	logger.CtxInfo(ctx, constant.MsgGenerated, logger.LoggerInfo{
		ContextFunction: constant.CtxGenerate,
		Data: map[string]interface{}{
			constant.DataVersion:  out.Version,
			constant.DataModules:  out.Modules,
			constant.DataWidth:    out.Width(),
			constant.DataHeight:   out.Height(),
			constant.DataLogoEdge: out.LogoRect.Dx(),
		},
	})

	return out, nil
}

// Save writes img to path as PNG. A path without extension gets ".png".
func (c *Composer) Save(ctx context.Context, img *ComposedImage, path string) (string, error) {
	if img == nil || img.Image == nil {
		return "", c.fail(ctx, constant.CtxSave, constant.ErrCodeNothingToSave, newError(KindValidation, "save", ErrNothingToSave))
	}

	path = strings.TrimSpace(path)
	if path == "" {
		return "", c.fail(ctx, constant.CtxSave, constant.ErrCodeEmptyPath, newError(KindValidation, "save", ErrEmptyPath))
	}
	if filepath.Ext(path) == "" {
		path += constant.DefaultExtension
	}

	if err := c.writer.WritePNG(path, img.Image); err != nil {
		return "", c.fail(ctx, constant.CtxSave, constant.ErrCodeWritePNG, newError(KindResource, "save", err))
	}

	logger.CtxInfo(ctx, constant.MsgSaved, logger.LoggerInfo{
		ContextFunction: constant.CtxSave,
		Data: map[string]interface{}{
			constant.DataDest:  path,
			constant.DataWidth: img.Width(),
		},
	})

	return path, nil
}

// Verify decodes img back to text
func (c *Composer) Verify(ctx context.Context, img *ComposedImage) (string, error) {
	if img == nil || img.Image == nil {
		return "", c.fail(ctx, constant.CtxVerify, constant.ErrCodeNothingToSave, newError(KindValidation, "verify", ErrNothingToSave))
	}

	text, err := c.scanner.Scan(img.Image)
	if err != nil {
		return "", c.fail(ctx, constant.CtxVerify, constant.ErrCodeScan, newError(KindResource, "verify", err))
	}

	return text, nil
}

func (c *Composer) fail(ctx context.Context, fn, code string, err *Error) error {
	log := logger.CtxError
	if err.Kind == KindValidation {
		log = logger.CtxWarn
	}

	log(ctx, "Composer operation failed", logger.LoggerInfo{
		ContextFunction: fn,
		Error: &logger.CustomError{
			Code:    code,
			Message: err.Error(),
			Type:    err.Kind.String(),
		},
	})

	return err
}

// OutputEdge returns the pixel edge of a symbol of modules x modules drawn with
// border quiet-zone modules per side. Edges above constant.MaxRasterEdge fail
// with ErrImageTooLarge; the bound is checked before multiplying so huge inputs
// cannot wrap around.
func OutputEdge(modules, border, moduleSize int) (int, error) {
	if modules < 1 || moduleSize < 1 || border < 0 {
		return 0, fmt.Errorf("%w: %d modules, module size %d, border %d", ErrInvalidSize, modules, moduleSize, border)
	}
	if border > (constant.MaxRasterEdge-modules)/2 {
		return 0, fmt.Errorf("%w: border of %d modules", ErrImageTooLarge, border)
	}
	span := modules + 2*border
	if moduleSize > constant.MaxRasterEdge/span {
		return 0, fmt.Errorf("%w: module size %dpx for %d modules", ErrImageTooLarge, moduleSize, span)
	}
	return span * moduleSize, nil
}

// render paints the symbol with border quiet-zone modules on each side onto an
// edge x edge raster; edge comes from OutputEdge
func render(symbol *Symbol, moduleSize, border, edge int, fill, background Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, edge, edge))

	draw.Draw(img, img.Bounds(), image.NewUniform(background.NRGBA()), image.Point{}, draw.Src)

	ink := image.NewUniform(fill.NRGBA())
	for y, row := range symbol.Bitmap {
		for x, dark := range row {
			if !dark {
				continue
			}
			px := (x + border) * moduleSize
			py := (y + border) * moduleSize
			draw.Draw(img, image.Rect(px, py, px+moduleSize, py+moduleSize), ink, image.Point{}, draw.Src)
		}
	}

	return img
}

// LogoRect returns the centered square covering LogoScale of the image width
func LogoRect(bounds image.Rectangle) image.Rectangle {
	w, h := bounds.Dx(), bounds.Dy()
	edge := int(math.Round(float64(w) * constant.LogoScale))

	x := bounds.Min.X + (w-edge)/2
	y := bounds.Min.Y + (h-edge)/2
	return image.Rect(x, y, x+edge, y+edge)
}

// Overlay composites logo onto dst inside rect. The logo alpha channel acts as the mask.
func Overlay(dst draw.Image, logo image.Image, rect image.Rectangle) {
	draw.Draw(dst, rect, logo, logo.Bounds().Min, draw.Over)
}
