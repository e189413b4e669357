package composer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strconv"
	"strings"

	"github.com/prasetyowira/qrlogo/constant"
)

// Color is an 8-bit per channel, non-premultiplied color
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

var (
	// Black is the default fill color
	Black = Color{R: 0, G: 0, B: 0, A: 255}
	// White is the default background color
	White = Color{R: 255, G: 255, B: 255, A: 255}
)

var namedColors = map[string]Color{
	"black": Black,
	"white": White,
}

// ParseColor parses "#rgb", "#rrggbb", "#rrggbbaa" or one of the names black and white.
// The leading '#' is optional.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}

	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}) + "ff"
	case 6:
		hex += "ff"
	case 8:
	default:
		return Color{}, fmt.Errorf("%w %q", ErrInvalidColor, s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w %q", ErrInvalidColor, s)
	}

	return Color{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// Hex formats the color as #rrggbb, or #rrggbbaa when it is not opaque
func (c Color) Hex() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// NRGBA converts to the standard library color type
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// GenerationRequest holds the parameters of a single generation
type GenerationRequest struct {
	Text       string
	ModuleSize int
	Border     int
	Fill       Color
	Background Color
	LogoPath   string
}

// DefaultRequest returns a request for text with every other field at its default
func DefaultRequest(text string) GenerationRequest {
	return GenerationRequest{
		Text:       text,
		ModuleSize: constant.DefaultModuleSize,
		Border:     constant.DefaultBorder,
		Fill:       Black,
		Background: White,
	}
}

// ParseDimensions converts raw module size and border input into integers.
func ParseDimensions(size, border string) (int, int, error) {
	s, err := strconv.Atoi(strings.TrimSpace(size))
	if err != nil || s <= 0 {
		return 0, 0, newError(KindValidation, "parse size", fmt.Errorf("%w: %q", ErrInvalidSize, size))
	}

	b, err := strconv.Atoi(strings.TrimSpace(border))
	if err != nil || b < 0 {
		return 0, 0, newError(KindValidation, "parse border", fmt.Errorf("%w: %q", ErrInvalidBorder, border))
	}

	return s, b, nil
}

// Symbol is an encoded QR symbol without quiet zone
type Symbol struct {
	// Bitmap is indexed [y][x], true for dark modules
	Bitmap  [][]bool
	Version int
}

// Size returns the number of modules per side
func (s *Symbol) Size() int {
	return len(s.Bitmap)
}

// ComposedImage is the result of a successful generation
type ComposedImage struct {
	Image      *image.RGBA
	Version    int
	Modules    int
	ModuleSize int
	Border     int
	HasLogo    bool
	LogoRect   image.Rectangle
}

// Width returns the image width in pixels
func (ci *ComposedImage) Width() int {
	return ci.Image.Bounds().Dx()
}

// Height returns the image height in pixels
func (ci *ComposedImage) Height() int {
	return ci.Image.Bounds().Dy()
}

// PNG encodes the image for display surfaces
func (ci *ComposedImage) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, ci.Image); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
