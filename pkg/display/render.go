package display

import (
	"errors"
	"image"

	"gocv.io/x/gocv"

	"github.com/teslashibe/go-ymaze/pkg/session"
)

// ErrFrameType is returned when a view's frame has no OpenCV matrix.
var ErrFrameType = errors.New("display: frame is not backed by a gocv.Mat")

type matFrame interface {
	Mat() gocv.Mat
}

// Render draws v onto a copy of its frame. The caller closes the result.
// Polygons go first so boxes and captions stay visible on top.
func Render(v session.View) (gocv.Mat, error) {
	mf, ok := v.Frame.(matFrame)
	if !ok {
		return gocv.NewMat(), ErrFrameType
	}
	canvas := mf.Mat().Clone()
	Draw(&canvas, v.Overlay)
	return canvas, nil
}

// Draw paints o directly onto img.
func Draw(img *gocv.Mat, o session.Overlay) {
	for _, p := range o.Polygons {
		if len(p.Points) < 3 {
			continue
		}
		pv := gocv.NewPointsVectorFromPoints([][]image.Point{p.Points})
		gocv.FillPoly(img, pv, StyleFor(p.Role).Color)
		pv.Close()
	}
	for _, r := range o.Rects {
		gocv.Rectangle(img, r.Box, StyleFor(r.Role).Color, rectThickness(r))
	}
	for _, c := range o.Circles {
		gocv.Circle(img, c.Center, c.Radius, StyleFor(c.Role).Color, circleThickness(c))
	}
	for _, t := range o.Texts {
		s := StyleFor(t.Role)
		gocv.PutText(img, t.Text, t.Pos, gocv.FontHersheyComplex, FontScale, s.Color, s.Thickness)
	}
}
