package imaging

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prasetyowira/qrlogo/infrastructure/cache"
	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func writeTestPNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestLogoLoader_LoadResizes(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "logo.png")
	writeTestPNG(t, path, solid(64, 32, color.RGBA{R: 255, A: 255}))
	loader := NewLogoLoader(nil)

	// Act
	img, err := loader.Load(context.Background(), path, 20)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 20, img.Bounds().Dx())
	assert.Equal(t, 20, img.Bounds().Dy())
	r, g, b, a := img.At(img.Bounds().Min.X+10, img.Bounds().Min.Y+10).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0), g)
	assert.Equal(t, uint32(0), b)
	assert.Equal(t, uint32(0xffff), a)
}

func TestLogoLoader_CachesByEdge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	writeTestPNG(t, path, solid(16, 16, color.White))
	lru := cache.NewNamespaceLRU[image.Image](8)
	loader := NewLogoLoader(lru)
	ctx := context.Background()

	first, err := loader.Load(ctx, path, 10)
	require.NoError(t, err)
	second, err := loader.Load(ctx, path, 10)
	require.NoError(t, err)
	_, err = loader.Load(ctx, path, 12)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 2, lru.Len())
}

func TestLogoLoader_ReloadsModifiedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	writeTestPNG(t, path, solid(8, 8, color.White))
	loader := NewLogoLoader(cache.NewNamespaceLRU[image.Image](8))
	ctx := context.Background()

	_, err := loader.Load(ctx, path, 8)
	require.NoError(t, err)

	writeTestPNG(t, path, solid(8, 8, color.Black))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	img, err := loader.Load(ctx, path, 8)
	require.NoError(t, err)
	r, _, _, _ := img.At(4, 4).RGBA()
	assert.Equal(t, uint32(0), r)
}

func TestLogoLoader_Errors(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "corrupt.png")
	require.NoError(t, os.WriteFile(corrupt, []byte("not an image"), 0o644))

	tests := []struct {
		name string
		path string
		edge int
	}{
		{"missing file", filepath.Join(dir, "missing.png"), 10},
		{"corrupt file", corrupt, 10},
		{"directory", dir, 10},
		{"zero edge", corrupt, 0},
	}

	loader := NewLogoLoader(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := loader.Load(context.Background(), tt.path, tt.edge)
			assert.Error(t, err)
			assert.Nil(t, img)
		})
	}
}

func TestPNGWriter_RoundTrip(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "out.png")
	src := solid(30, 30, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	src.Set(3, 4, color.RGBA{R: 200, G: 100, B: 0, A: 255})

	// Act
	err := NewPNGWriter().WritePNG(path, src)

	// Assert
	require.NoError(t, err)
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	got, err := png.Decode(f)
	require.NoError(t, err)
	for y := 0; y < 30; y++ {
		for x := 0; x < 30; x++ {
			assert.Equal(t, color.RGBAModel.Convert(src.At(x, y)), color.RGBAModel.Convert(got.At(x, y)))
		}
	}
}

func TestPNGWriter_OverwritesAndLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, NewPNGWriter().WritePNG(path, solid(5, 5, color.Black)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestPNGWriter_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "out.png")

	err := NewPNGWriter().WritePNG(path, solid(5, 5, color.Black))

	assert.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestScanner_Scan(t *testing.T) {
	// Arrange
	q, err := qrcode.New("https://example.com", qrcode.Highest)
	require.NoError(t, err)
	img := q.Image(256)

	// Act
	text, err := NewScanner().Scan(img)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", text)
}

func TestScanner_NoCode(t *testing.T) {
	text, err := NewScanner().Scan(solid(100, 100, color.White))

	assert.Error(t, err)
	assert.Empty(t, text)
}

func TestWriteTerminal(t *testing.T) {
	// 4x3 modules of 2px, dark at (0,0) (1,1) (2,0) (2,1) (0,2)
	img := solid(8, 6, color.White)
	draw.Draw(img, image.Rect(0, 0, 2, 2), image.NewUniform(color.Black), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(2, 2, 4, 4), image.NewUniform(color.Black), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(4, 0, 6, 4), image.NewUniform(color.Black), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, 4, 2, 6), image.NewUniform(color.Black), image.Point{}, draw.Src)

	var buf bytes.Buffer
	err := WriteTerminal(&buf, img, 2)

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "▀▄█ ", lines[0])
	assert.Equal(t, "▀   ", lines[1])
}

func TestIsDark_TransparentIsLight(t *testing.T) {
	assert.False(t, isDark(color.NRGBA{A: 0}))
	assert.True(t, isDark(color.NRGBA{A: 255}))
	assert.False(t, isDark(color.White))
}
