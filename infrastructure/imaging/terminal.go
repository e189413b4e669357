package imaging

import (
	"image"
	"image/color"
	"io"
	"strings"
)

// WriteTerminal prints img with half-block characters, one character cell per two
// modules. Each module is sampled at its center, so logo pixels show up as well.
func WriteTerminal(w io.Writer, img image.Image, moduleSize int) error {
	if moduleSize < 1 {
		moduleSize = 1
	}

	b := img.Bounds()
	cols := b.Dx() / moduleSize
	rows := b.Dy() / moduleSize

	dark := func(mx, my int) bool {
		if my >= rows {
			return false
		}
		x := b.Min.X + mx*moduleSize + moduleSize/2
		y := b.Min.Y + my*moduleSize + moduleSize/2
		return isDark(img.At(x, y))
	}

	var sb strings.Builder
	for my := 0; my < rows; my += 2 {
		for mx := 0; mx < cols; mx++ {
			top, bottom := dark(mx, my), dark(mx, my+1)
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteRune(' ')
			}
		}
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// isDark composites c over white and thresholds its luminance
func isDark(c color.Color) bool {
	r, g, b, a := c.RGBA()
	white := 0xffff - a
	r, g, b = r+white, g+white, b+white
	y := (19595*r + 38470*g + 7471*b + 1<<15) >> 24
	return y < 128
}
