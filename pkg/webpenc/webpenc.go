// Package webpenc implements a reusable JPEG/PNG to WebP re-encoding engine.
package webpenc

import (
	"bufio"
	"errors"
	"image"
	_ "image/jpeg" // register the JPEG decoder
	_ "image/png"  // register the PNG decoder
	"io"

	"github.com/gen2brain/webp"
)

// DefaultQuality is used when no custom quality was set via options.
const DefaultQuality = 80

// defaultMethod is the default quality/speed trade-off level of the underlying encoder
// (0 = fast, 6 = slower but better).
const defaultMethod = 4

// Encoder re-encodes decodable images into the WebP format. It is stateless and safe for
// concurrent use.
type Encoder struct {
	quality  int
	lossless bool
	method   int
	exact    bool
}

// Result describes a single performed conversion.
type Result struct {
	Format        string // source image format name (`jpeg` or `png`)
	Width, Height int    // source image dimensions
	BytesWritten  int64  // WebP-encoded data size
}

// NewEncoder creates new WebP encoder instance. Options can be used for fine encoder tuning.
func NewEncoder(options ...EncoderOption) *Encoder {
	e := &Encoder{
		quality: DefaultQuality,
		method:  defaultMethod,
	}

	for i := 0; i < len(options); i++ {
		options[i](e)
	}

	return e
}

// Quality returns the effective encoding quality.
func (e *Encoder) Quality() int { return e.quality }

// Lossless reports whether the lossless encoding mode is enabled.
func (e *Encoder) Lossless() bool { return e.lossless }

// Convert reads an image from the passed source, decodes it (JPEG and PNG formats are supported)
// and writes it WebP-encoded into the passed destination. Additional information about the
// processed image will be returned too.
func (e *Encoder) Convert(src io.Reader, dest io.Writer) (*Result, error) {
	var buf = bufio.NewReader(src)

	if _, err := buf.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptySource
		}

		return nil, errors.New(errorsPrefix + " source reading failed: " + err.Error())
	}

	img, format, err := image.Decode(buf)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, ErrUnsupportedFormat
		}

		return nil, errors.New(errorsPrefix + " image decoding failed: " + err.Error())
	}

	var counter = writeCounter{to: dest}

	if err = webp.Encode(&counter, img, webp.Options{
		Quality:  e.quality,
		Lossless: e.lossless,
		Method:   e.method,
		Exact:    e.exact,
	}); err != nil {
		return nil, errors.New(errorsPrefix + " webp encoding failed: " + err.Error())
	}

	var bounds = img.Bounds()

	return &Result{
		Format:       format,
		Width:        bounds.Dx(),
		Height:       bounds.Dy(),
		BytesWritten: counter.written,
	}, nil
}

// writeCounter counts the bytes written through it.
type writeCounter struct {
	to      io.Writer
	written int64
}

func (c *writeCounter) Write(p []byte) (n int, err error) {
	n, err = c.to.Write(p)
	c.written += int64(n)

	return
}
