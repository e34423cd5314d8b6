package maze

import (
	"image"
	"math"
	"testing"
)

const eps = 0.00001

var arena = Triangle{Pt(100, 100), Pt(200, 100), Pt(150, 200)}

func TestTriangle_Centroid(t *testing.T) {
	c := arena.Centroid()
	if math.Abs(c.X-150) > eps {
		t.Errorf("Centroid X: got %v, want 150", c.X)
	}
	if math.Abs(c.Y-133.33333) > eps {
		t.Errorf("Centroid Y: got %v, want 133.33333", c.Y)
	}
}

func TestTriangle_Contains(t *testing.T) {
	tests := []struct {
		name   string
		p      Point
		expect bool
	}{
		{"interior", Pt(150, 150), true},
		{"vertex", Pt(100, 100), true},
		{"on top edge", Pt(150, 100), true},
		{"on slanted edge", Pt(125, 150), true},
		{"just above top edge", Pt(150, 99.5), false},
		{"far below", Pt(150, 300), false},
		{"left of triangle", Pt(90, 120), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := arena.Contains(tc.p); got != tc.expect {
				t.Errorf("Contains(%v): got %v, want %v", tc.p, got, tc.expect)
			}
		})
	}
}

func TestTriangle_ContainsIgnoresWinding(t *testing.T) {
	reversed := Triangle{arena[2], arena[1], arena[0]}
	for _, p := range []Point{Pt(150, 150), Pt(150, 100), Pt(10, 10), Pt(300, 300)} {
		if arena.Contains(p) != reversed.Contains(p) {
			t.Errorf("winding changed result for %v", p)
		}
	}
}

func TestTriangle_CollapsedContainsEverything(t *testing.T) {
	var zero Triangle
	if !zero.Contains(Pt(640, 480)) {
		t.Error("collapsed triangle should contain every point")
	}
}

func TestBoxCenter(t *testing.T) {
	tests := []struct {
		name   string
		box    image.Rectangle
		expect Point
	}{
		{"even box", image.Rect(100, 100, 200, 200), Pt(150, 150)},
		{"odd width", image.Rect(0, 0, 3, 4), Pt(1.5, 2)},
		{"offset box", image.Rect(40, 10, 60, 90), Pt(50, 50)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := BoxCenter(tc.box)
			if math.Abs(got.X-tc.expect.X) > eps || math.Abs(got.Y-tc.expect.Y) > eps {
				t.Errorf("BoxCenter: got %v, want %v", got, tc.expect)
			}
		})
	}
}

func TestPoint_Image(t *testing.T) {
	if got := Pt(12.9, 7.2).Image(); got != image.Pt(12, 7) {
		t.Errorf("Image: got %v, want (12,7)", got)
	}
	if got := PointFrom(image.Pt(3, 4)); got != Pt(3, 4) {
		t.Errorf("PointFrom: got %v, want (3,4)", got)
	}
}
