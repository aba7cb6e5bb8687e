package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	MaxUploadBytes = 5 << 20
	ContentType    = "image/webp"
)

var ErrNotImage = errors.New("file is not a supported image")

// Options controls how an uploaded photo is normalised.
type Options struct {
	MaxWidth  int
	MaxHeight int
	Quality   float32
}

var (
	ProfilePhoto = Options{MaxWidth: 512, MaxHeight: 512, Quality: 80}
	CoverPhoto   = Options{MaxWidth: 1600, MaxHeight: 900, Quality: 80}
)

// ToWebP decodes a JPEG, PNG, GIF or WebP image, shrinks it to fit the
// bounds in opts keeping its aspect ratio, and re-encodes it as WebP.
func ToWebP(r io.Reader, opts Options) ([]byte, error) {
	src, _, err := image.Decode(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}

	img := fit(src, opts.MaxWidth, opts.MaxHeight)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: opts.Quality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

func fit(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxW <= 0 || maxH <= 0 || (w <= maxW && h <= maxH) {
		return src
	}

	scale := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	nw := max(1, int(float64(w)*scale))
	nh := max(1, int(float64(h)*scale))

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
