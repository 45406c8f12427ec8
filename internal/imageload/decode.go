package imageload

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	lru "github.com/hashicorp/golang-lru/v2"
	_ "golang.org/x/image/webp"
)

const (
	previewWidth = 32
	previewBlur  = 2.0
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

// Formats remembers, for the whole session, which MIME types failed to decode
// so later images of the same type fail fast.
type Formats struct {
	known *lru.Cache[string, bool]
}

func NewFormats() *Formats {
	c, _ := lru.New[string, bool](64)
	return &Formats{known: c}
}

// Supported reports whether mime is decodable. Unknown types are assumed fine.
func (f *Formats) Supported(mime string) bool {
	ok, seen := f.known.Get(mime)
	return !seen || ok
}

func (f *Formats) mark(mime string, ok bool) {
	f.known.Add(mime, ok)
}

// Decode turns fetched bytes into an image, recording unsupported formats
func (f *Formats) Decode(data []byte, mime string) (image.Image, error) {
	if !f.Supported(mime) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, mime)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if errors.Is(err, image.ErrFormat) {
		f.mark(mime, false)
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, mime)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("invalid image dimensions: %dx%d", b.Dx(), b.Dy())
	}
	f.mark(mime, true)
	return img, nil
}

// Soften shrinks and blurs a preview so it reads as a placeholder
func Soften(img image.Image) image.Image {
	small := imaging.Resize(img, previewWidth, 0, imaging.Box)
	return imaging.Blur(small, previewBlur)
}
