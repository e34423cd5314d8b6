package web

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
)

// Thumbnail scales img to fit within w x h and encodes it as JPEG.
// Images already inside the bounds are encoded at their own size.
func Thumbnail(img image.Image, w, h, quality int) ([]byte, error) {
	b := img.Bounds()
	if b.Dx() > w || b.Dy() > h {
		img = imaging.Fit(img, w, h, imaging.Linear)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
