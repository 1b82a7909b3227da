package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidPNG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcess_SmallImageKeepsSize(t *testing.T) {
	out, err := Process(solidPNG(t, 40, 20, color.RGBA{R: 0xff, A: 0xff}))
	require.NoError(t, err)

	assert.Equal(t, 40, out.Width)
	assert.Equal(t, 20, out.Height)
	assert.Equal(t, "#ff0000", out.AccentColor)
	assert.True(t, strings.HasPrefix(out.BlurPlaceholder, "data:image/webp;base64,"))
	assert.True(t, bytes.HasPrefix(out.WebP, []byte("RIFF")))
}

func TestProcess_WideImageIsCapped(t *testing.T) {
	out, err := Process(solidPNG(t, 3200, 100, color.RGBA{G: 0x80, B: 0x40, A: 0xff}))
	require.NoError(t, err)

	assert.Equal(t, maxWidth, out.Width)
	assert.Equal(t, 50, out.Height)
	assert.Equal(t, "#008040", out.AccentColor)
}

func TestProcess_RejectsGarbage(t *testing.T) {
	_, err := Process([]byte("not an image"))
	assert.Error(t, err)
}
