// Package maze holds the Y-maze geometry: the calibration triangle, the
// zone classifier and the per-run zone tally. Everything here is pure and
// safe to call from tests without OpenCV.
package maze

import "image"

// Point is a 2D position in frame pixel coordinates.
type Point struct {
	X float64
	Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// PointFrom converts an integer image point.
func PointFrom(p image.Point) Point {
	return Point{X: float64(p.X), Y: float64(p.Y)}
}

// Image rounds the point down to integer pixel coordinates.
func (p Point) Image() image.Point {
	return image.Pt(int(p.X), int(p.Y))
}

// Triangle is the maze-arm reference triangle marked during calibration.
// Its interior, boundary included, is the maze center.
type Triangle [3]Point

// Centroid returns the arithmetic mean of the three vertices.
func (t Triangle) Centroid() Point {
	return Point{
		X: (t[0].X + t[1].X + t[2].X) / 3,
		Y: (t[0].Y + t[1].Y + t[2].Y) / 3,
	}
}

// Contains reports whether p lies inside t or on one of its edges.
// A triangle whose vertices all coincide contains every point.
func (t Triangle) Contains(p Point) bool {
	d1 := sign(p, t[0], t[1])
	d2 := sign(p, t[1], t[2])
	d3 := sign(p, t[2], t[0])

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0

	return !(hasNeg && hasPos)
}

// Image returns the vertices as integer points, in order.
func (t Triangle) Image() []image.Point {
	return []image.Point{t[0].Image(), t[1].Image(), t[2].Image()}
}

// sign is twice the signed area of (p1, p2, p3). Its sign tells which side
// of the directed edge p2→p3 the point p1 falls on.
func sign(p1, p2, p3 Point) float64 {
	return (p1.X-p3.X)*(p2.Y-p3.Y) - (p2.X-p3.X)*(p1.Y-p3.Y)
}

// BoxCenter returns the geometric center of an axis-aligned box.
func BoxCenter(r image.Rectangle) Point {
	return Point{
		X: float64(r.Min.X+r.Max.X) / 2,
		Y: float64(r.Min.Y+r.Max.Y) / 2,
	}
}
