package storage

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	maxWidth        = 1600
	placeholderSize = 16
	photoQuality    = 80
	blurQuality     = 30
)

// Processed is an uploaded image re-encoded as WebP together with what the
// page needs to paint before it loads.
type Processed struct {
	WebP            []byte
	Width           int
	Height          int
	AccentColor     string
	BlurPlaceholder string
}

// Process decodes a JPEG, PNG or WebP upload, caps its width, re-encodes it
// as WebP and derives a blur placeholder and average accent color.
func Process(src []byte) (*Processed, error) {
	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("decode image: empty bounds")
	}

	out := img
	if b.Dx() > maxWidth {
		out = scale(img, maxWidth, draw.CatmullRom)
	}

	var photo bytes.Buffer
	if err := webp.Encode(&photo, out, &webp.Options{Quality: photoQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}

	tiny := scale(img, placeholderSize, draw.ApproxBiLinear)
	var blur bytes.Buffer
	if err := webp.Encode(&blur, tiny, &webp.Options{Quality: blurQuality}); err != nil {
		return nil, fmt.Errorf("encode placeholder: %w", err)
	}

	ob := out.Bounds()
	return &Processed{
		WebP:            photo.Bytes(),
		Width:           ob.Dx(),
		Height:          ob.Dy(),
		AccentColor:     averageColor(img),
		BlurPlaceholder: "data:image/webp;base64," + base64.StdEncoding.EncodeToString(blur.Bytes()),
	}, nil
}

// scale resizes img to width, keeping the aspect ratio.
func scale(img image.Image, width int, s draw.Scaler) image.Image {
	b := img.Bounds()
	height := max(1, b.Dy()*width/b.Dx())
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	s.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// averageColor samples at most ~64x64 points and returns "#rrggbb".
func averageColor(img image.Image) string {
	b := img.Bounds()
	stepX := max(1, b.Dx()/64)
	stepY := max(1, b.Dy()/64)

	var r, g, bl, n uint64
	for y := b.Min.Y; y < b.Max.Y; y += stepY {
		for x := b.Min.X; x < b.Max.X; x += stepX {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			r += uint64(cr >> 8)
			g += uint64(cg >> 8)
			bl += uint64(cb >> 8)
			n++
		}
	}
	return fmt.Sprintf("#%02x%02x%02x", r/n, g/n, bl/n)
}
