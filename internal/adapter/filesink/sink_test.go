package filesink

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// squareFigure draws a white canvas with a filled square.
type squareFigure struct {
	size   int
	square image.Rectangle
	err    error
}

func (f squareFigure) WritePNG(w io.Writer) error {
	if f.err != nil {
		return f.err
	}
	img := image.NewRGBA(image.Rect(0, 0, f.size, f.size))
	for y := 0; y < f.size; y++ {
		for x := 0; x < f.size; x++ {
			img.Set(x, y, color.White)
			if (image.Point{X: x, Y: y}).In(f.square) {
				img.Set(x, y, color.RGBA{R: 255, A: 255})
			}
		}
	}
	return png.Encode(w, img)
}

func TestSave_WritesCroppedImage(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	sink := New(dir, 300, &out, slog.Default())

	fig := squareFigure{size: 400, square: image.Rect(150, 160, 250, 240)}
	require.NoError(t, sink.Save(fig, "weather_data.png"))

	data, err := os.ReadFile(filepath.Join(dir, "weather_data.png"))
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	pad := int(300 * padInches)
	assert.Equal(t, 100+2*pad, cfg.Width)
	assert.Equal(t, 80+2*pad, cfg.Height)

	assert.Equal(t,
		"\n✅ 'weather_data.png' has been saved successfully in the current directory.\n",
		out.String())
}

func TestSave_RecordsDPI(t *testing.T) {
	dir := t.TempDir()
	sink := New(dir, 300, io.Discard, slog.Default())

	require.NoError(t, sink.Save(squareFigure{size: 64, square: image.Rect(10, 10, 20, 20)}, "chart.png"))

	data, err := os.ReadFile(filepath.Join(dir, "chart.png"))
	require.NoError(t, err)

	i := bytes.Index(data, []byte("pHYs"))
	require.Positive(t, i, "pHYs chunk missing")
	ppm := binary.BigEndian.Uint32(data[i+4 : i+8])
	assert.Equal(t, uint32(11811), ppm) // 300 dpi
	assert.Equal(t, byte(1), data[i+12])

	_, err = png.Decode(bytes.NewReader(data))
	require.NoError(t, err, "annotated png must still decode")
}

func TestSave_RenderError(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	sink := New(dir, 300, &out, slog.Default())

	err := sink.Save(squareFigure{err: errors.New("boom")}, "chart.png")
	require.Error(t, err)
	assert.Empty(t, out.String())

	_, statErr := os.Stat(filepath.Join(dir, "chart.png"))
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestSave_MissingDirectory(t *testing.T) {
	sink := New(filepath.Join(t.TempDir(), "nope"), 300, io.Discard, slog.Default())

	err := sink.Save(squareFigure{size: 8, square: image.Rect(1, 1, 2, 2)}, "chart.png")
	require.Error(t, err)
}

func TestContentBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.Set(x, y, color.White)
		}
	}

	assert.True(t, contentBounds(img).Empty(), "blank image has no content")

	img.Set(3, 4, color.Black)
	img.Set(6, 7, color.Black)
	assert.Equal(t, image.Rect(3, 4, 7, 8), contentBounds(img))
}

func TestTightCrop_ClampsToBounds(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, squareFigure{size: 20, square: image.Rect(0, 0, 5, 5)}.WritePNG(&buf))

	// Content touches the top-left corner so the corner is not background;
	// the whole image is content and padding must not grow past it.
	out, err := tightCrop(buf.Bytes(), 50)
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.LessOrEqual(t, cfg.Width, 20)
	assert.LessOrEqual(t, cfg.Height, 20)
}

func TestWithDPI_RejectsNonPNG(t *testing.T) {
	_, err := withDPI([]byte("definitely not a png, but long enough to pass length"), 300)
	require.Error(t, err)
}
