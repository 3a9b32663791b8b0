package ggrender

import (
	"image"

	// Register the decoders the backend supports out of the box. Extra
	// formats can be added by the host through WithImageDecoder.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageDecoder turns an encoded image stream into pixels. The default
// decoder understands PNG, JPEG, GIF, BMP, TIFF and WebP.
type ImageDecoder func(r io.Reader) (image.Image, error)

func defaultDecoder(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	return img, err
}
